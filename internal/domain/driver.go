package domain

import "time"

// DriverLocation is a driver's last reported position. One record exists per
// driver; location reports replace it in place.
type DriverLocation struct {
	DriverID  string
	Lat       float64
	Lng       float64
	District  string
	City      string
	UpdatedAt time.Time
}

// DriverProfile holds the enrichment data served by the user service for a
// driver. Profile availability is best-effort: a missing profile degrades the
// match response but never fails it.
type DriverProfile struct {
	FullName       string
	Phone          string
	VehicleType    string
	VehicleBrand   string
	VehicleModel   string
	LicensePlate   string
	ApprovalStatus string
	IsOnline       bool
}
