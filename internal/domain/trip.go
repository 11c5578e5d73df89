package domain

import "time"

// TripStatus represents the current status of a trip.
//
// Statuses are normalized to a single lowercase enum. Allowed transitions
// form the graph
//
//	requested -> matched -> accepted -> completed
//
// with cancelled reachable from any non-terminal state. completed and
// cancelled are terminal.
type TripStatus string

const (
	TripStatusRequested TripStatus = "requested"
	TripStatusMatched   TripStatus = "matched"
	TripStatusAccepted  TripStatus = "accepted"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Trip represents a trip record in the system.
type Trip struct {
	ID                  string
	CustomerID          string
	PickupDistrict      string
	PickupCity          string
	DestinationDistrict string
	DestinationCity     string
	DriverID            string // empty until matched/accepted
	Status              TripStatus
	Bill                int64 // set only when the trip completes
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
