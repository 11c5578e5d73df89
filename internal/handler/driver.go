package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uitgo/internal/service"
)

// DriverHandler handles the driver-service HTTP surface: location reports,
// matching requests, and trip completion.
type DriverHandler struct {
	driverService   *service.DriverService
	matchingService *service.MatchingService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, matchingService *service.MatchingService) *DriverHandler {
	return &DriverHandler{
		driverService:   driverService,
		matchingService: matchingService,
	}
}

// ChargeRequest is the body of a driver location report.
type ChargeRequest struct {
	DriverID  string   `json:"driver_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	District  string   `json:"district"`
	City      string   `json:"city"`
}

// DriverLocationResponse describes a stored driver location.
type DriverLocationResponse struct {
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	District  string  `json:"district"`
	City      string  `json:"city"`
	UpdatedAt string  `json:"updated_at"`
}

// Charge handles POST /charge: upserts the reporting driver's location.
func (h *DriverHandler) Charge(c *gin.Context) {
	var req ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	if req.DriverID == "" || req.Latitude == nil || req.Longitude == nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	loc, err := h.driverService.UpsertLocation(c.Request.Context(), service.UpsertLocationRequest{
		DriverID: req.DriverID,
		Lat:      *req.Latitude,
		Lng:      *req.Longitude,
		District: req.District,
		City:     req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver location updated",
		"driver": DriverLocationResponse{
			DriverID:  loc.DriverID,
			Latitude:  loc.Lat,
			Longitude: loc.Lng,
			District:  loc.District,
			City:      loc.City,
			UpdatedAt: loc.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		},
	})
}

// FindDriverRequest is the body of a matching request.
type FindDriverRequest struct {
	CustomerID     string   `json:"customer_id"`
	PickupLat      *float64 `json:"pickup_lat"`
	PickupLng      *float64 `json:"pickup_lng"`
	PickupDistrict string   `json:"pickup_district"`
	PickupCity     string   `json:"pickup_city"`
	DestinationLat *float64 `json:"destination_lat"`
	DestinationLng *float64 `json:"destination_lng"`
}

// MatchedDriverResponse is the driver block of a successful match. Profile
// fields are present only when the user service answered in time.
type MatchedDriverResponse struct {
	DriverID       string  `json:"driver_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	District       string  `json:"district"`
	City           string  `json:"city"`
	FullName       string  `json:"full_name,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	VehicleType    string  `json:"vehicle_type,omitempty"`
	VehicleBrand   string  `json:"vehicle_brand,omitempty"`
	VehicleModel   string  `json:"vehicle_model,omitempty"`
	LicensePlate   string  `json:"license_plate,omitempty"`
	ApprovalStatus string  `json:"approval_status,omitempty"`
	IsOnline       *bool   `json:"is_online,omitempty"`
}

// FindDriver handles POST /find-driver: nearest-driver matching plus fare
// estimation.
func (h *DriverHandler) FindDriver(c *gin.Context) {
	var req FindDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	if req.CustomerID == "" || req.PickupLat == nil || req.PickupLng == nil || req.DestinationLat == nil || req.DestinationLng == nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	result, err := h.matchingService.Match(c.Request.Context(), service.MatchRequest{
		CustomerID:     req.CustomerID,
		PickupLat:      *req.PickupLat,
		PickupLng:      *req.PickupLng,
		PickupDistrict: req.PickupDistrict,
		PickupCity:     req.PickupCity,
		DestinationLat: *req.DestinationLat,
		DestinationLng: *req.DestinationLng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	driver := MatchedDriverResponse{
		DriverID:  result.Driver.DriverID,
		Latitude:  result.Driver.Lat,
		Longitude: result.Driver.Lng,
		District:  result.Driver.District,
		City:      result.Driver.City,
	}
	if p := result.Profile; p != nil {
		driver.FullName = p.FullName
		driver.Phone = p.Phone
		driver.VehicleType = p.VehicleType
		driver.VehicleBrand = p.VehicleBrand
		driver.VehicleModel = p.VehicleModel
		driver.LicensePlate = p.LicensePlate
		driver.ApprovalStatus = p.ApprovalStatus
		driver.IsOnline = &p.IsOnline
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Driver found successfully",
		"driver":        driver,
		"distance_km":   result.DistanceKm,
		"fare_estimate": result.FareEstimate,
	})
}

// CompleteTripRequest is the body of a trip completion request.
type CompleteTripRequest struct {
	TripID               string   `json:"trip_id"`
	PickupLatitude       *float64 `json:"pickup_latitude"`
	PickupLongitude      *float64 `json:"pickup_longitude"`
	DestinationLatitude  *float64 `json:"destination_latitude"`
	DestinationLongitude *float64 `json:"destination_longitude"`
}

// CompleteTrip handles PATCH /complete-trip: computes distance and bill, then
// records them on the trip service.
func (h *DriverHandler) CompleteTrip(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	if req.TripID == "" || req.PickupLatitude == nil || req.PickupLongitude == nil || req.DestinationLatitude == nil || req.DestinationLongitude == nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	result, err := h.matchingService.CompleteTrip(c.Request.Context(), service.CompleteTripRequest{
		TripID:               req.TripID,
		PickupLatitude:       *req.PickupLatitude,
		PickupLongitude:      *req.PickupLongitude,
		DestinationLatitude:  *req.DestinationLatitude,
		DestinationLongitude: *req.DestinationLongitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Trip completed & billed successfully",
		"bill":        result.Bill,
		"distance_km": result.DistanceKm,
		"trip":        result.Trip,
	})
}

// UpdateStatusRequest is the internal body pushed by the user service when a
// driver toggles availability.
type UpdateStatusRequest struct {
	IsOnline  *bool    `json:"is_online"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	District  string   `json:"district"`
	City      string   `json:"city"`
}

// UpdateStatus handles PUT /api/drivers/:driver_id/status (internal auth).
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	driverID := c.Param("driver_id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	if req.IsOnline == nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	loc, err := h.driverService.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		DriverID: driverID,
		IsOnline: *req.IsOnline,
		Lat:      req.Latitude,
		Lng:      req.Longitude,
		District: req.District,
		City:     req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if loc == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Driver status updated to offline",
			"driver_id": driverID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver status updated successfully",
		"driver": DriverLocationResponse{
			DriverID:  loc.DriverID,
			Latitude:  loc.Lat,
			Longitude: loc.Lng,
			District:  loc.District,
			City:      loc.City,
			UpdatedAt: loc.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		},
	})
}
