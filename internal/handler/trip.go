package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uitgo/internal/domain"
	"uitgo/internal/service"
)

// TripHandler handles the trip-service HTTP surface.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripResponse is the trip document returned by every mutation.
type TripResponse struct {
	TripID              string `json:"trip_id"`
	CustomerID          string `json:"customer_id"`
	DriverID            string `json:"driver_id,omitempty"`
	PickupDistrict      string `json:"pickup_district"`
	PickupCity          string `json:"pickup_city"`
	DestinationDistrict string `json:"destination_district"`
	DestinationCity     string `json:"destination_city"`
	Status              string `json:"status"`
	Bill                int64  `json:"bill,omitempty"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:              trip.ID,
		CustomerID:          trip.CustomerID,
		DriverID:            trip.DriverID,
		PickupDistrict:      trip.PickupDistrict,
		PickupCity:          trip.PickupCity,
		DestinationDistrict: trip.DestinationDistrict,
		DestinationCity:     trip.DestinationCity,
		Status:              string(trip.Status),
		Bill:                trip.Bill,
	}
}

// AddTripRequest is the body for creating a trip.
type AddTripRequest struct {
	CustomerID          string `json:"customer_id"`
	PickupDistrict      string `json:"pickup_district"`
	PickupCity          string `json:"pickup_city"`
	DestinationDistrict string `json:"destination_district"`
	DestinationCity     string `json:"destination_city"`
}

// AddTrip handles POST /add_trip_data.
func (h *TripHandler) AddTrip(c *gin.Context) {
	var req AddTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), service.CreateTripRequest{
		CustomerID:          req.CustomerID,
		PickupDistrict:      req.PickupDistrict,
		PickupCity:          req.PickupCity,
		DestinationDistrict: req.DestinationDistrict,
		DestinationCity:     req.DestinationCity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Trip data added successfully",
		"trip_id": trip.ID,
		"trip":    toTripResponse(trip),
	})
}

// TripIDRequest carries a bare trip id.
type TripIDRequest struct {
	TripID string `json:"trip_id"`
}

// CancelTrip handles PATCH /cancel_trip.
func (h *TripHandler) CancelTrip(c *gin.Context) {
	var req TripIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.Cancel(c.Request.Context(), req.TripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Trip canceled successfully",
		"trip":    toTripResponse(trip),
	})
}

// TripDriverRequest carries a trip id and driver id pair.
type TripDriverRequest struct {
	TripID   string `json:"trip_id"`
	DriverID string `json:"driver_id"`
}

// UpdateDriver handles PATCH /update_driver: the system assigns a driver and
// the trip moves to matched.
func (h *TripHandler) UpdateDriver(c *gin.Context) {
	var req TripDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.AssignDriver(c.Request.Context(), req.TripID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver updated successfully",
		"trip":    toTripResponse(trip),
	})
}

// AssignDriver handles PATCH /assign-driver: the driver confirms the trip and
// it moves to accepted.
func (h *TripHandler) AssignDriver(c *gin.Context) {
	var req TripDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.AcceptDriver(c.Request.Context(), req.TripID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Driver assigned and trip accepted",
		"trip":    toTripResponse(trip),
	})
}

// DriverIDRequest carries a bare driver id.
type DriverIDRequest struct {
	DriverID string `json:"driver_id"`
}

// GetTripData handles POST /getTripData: the trip currently matched to a
// driver.
func (h *TripHandler) GetTripData(c *gin.Context) {
	var req DriverIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.MatchedTripForDriver(c.Request.Context(), req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"message":              "Matched trip data retrieved successfully",
		"trip_id":              trip.ID,
		"customer_id":          trip.CustomerID,
		"pickup_district":      trip.PickupDistrict,
		"pickup_city":          trip.PickupCity,
		"destination_district": trip.DestinationDistrict,
		"destination_city":     trip.DestinationCity,
	})
}

// TripStatusForDriver handles GET /trips/driver?driver_id=&trip_id=.
func (h *TripHandler) TripStatusForDriver(c *gin.Context) {
	driverID := c.Query("driver_id")
	tripID := c.Query("trip_id")

	status, err := h.tripService.StatusForDriver(c.Request.Context(), tripID, driverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status_trip": string(status),
	})
}

// CompleteTripUpdateRequest is the body recorded by the driver service once a
// trip is billed.
type CompleteTripUpdateRequest struct {
	TripID string `json:"trip_id"`
	Bill   int64  `json:"bill"`
}

// CompleteTrip handles PATCH /update/completeTrip.
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	var req CompleteTripUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingFields)
		return
	}

	trip, err := h.tripService.Complete(c.Request.Context(), req.TripID, req.Bill)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Trip completed successfully",
		"trip":    toTripResponse(trip),
	})
}
