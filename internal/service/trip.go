package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"uitgo/internal/domain"
	"uitgo/internal/repository"
)

// TripService owns the trip state machine. Every mutation goes through the
// repository's conditional transitions; actors are validated against the user
// service before a transition is attempted, and a failed validation never
// mutates state.
type TripService struct {
	tripRepo repository.TripRepository
	users    IdentityClient
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo repository.TripRepository, users IdentityClient) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		users:    users,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	CustomerID          string
	PickupDistrict      string
	PickupCity          string
	DestinationDistrict string
	DestinationCity     string
}

// Create validates the customer against the user service and persists a new
// trip in the requested state. Customer validation is blocking: an unknown or
// unreachable customer fails the creation.
func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.PickupDistrict == "" || req.PickupCity == "" || req.DestinationDistrict == "" || req.DestinationCity == "" {
		return nil, ErrMissingFields
	}

	if !s.users.ValidateCustomer(ctx, req.CustomerID) {
		return nil, ErrCustomerNotRecognized
	}

	trip := &domain.Trip{
		ID:                  uuid.New().String(),
		CustomerID:          req.CustomerID,
		PickupDistrict:      req.PickupDistrict,
		PickupCity:          req.PickupCity,
		DestinationDistrict: req.DestinationDistrict,
		DestinationCity:     req.DestinationCity,
		Status:              domain.TripStatusRequested,
		CreatedAt:           time.Now(),
	}
	trip.UpdatedAt = trip.CreatedAt

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// AssignDriver validates the driver and moves the trip to matched. The
// system assigns the driver here; the driver has not confirmed yet.
func (s *TripService) AssignDriver(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if !s.users.ValidateDriver(ctx, driverID) {
		return nil, ErrDriverNotRecognized
	}

	return s.tripRepo.SetDriverMatched(ctx, tripID, driverID)
}

// AcceptDriver moves the trip to accepted, confirming the driver. Re-setting
// the same driver id is allowed.
func (s *TripService) AcceptDriver(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	return s.tripRepo.SetDriverAccepted(ctx, tripID, driverID)
}

// Cancel moves a non-terminal trip to cancelled.
func (s *TripService) Cancel(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	return s.tripRepo.Cancel(ctx, tripID)
}

// Complete records the bill and moves the trip to completed. The bill is set
// if and only if the transition succeeds.
func (s *TripService) Complete(ctx context.Context, tripID string, bill int64) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if bill <= 0 {
		return nil, ErrInvalidBill
	}

	return s.tripRepo.Complete(ctx, tripID, bill)
}

// MatchedTripForDriver returns the trip currently matched to the driver.
func (s *TripService) MatchedTripForDriver(ctx context.Context, driverID string) (*domain.Trip, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	return s.tripRepo.GetMatchedByDriverID(ctx, driverID)
}

// StatusForDriver returns the status of a trip that belongs to the driver.
func (s *TripService) StatusForDriver(ctx context.Context, tripID, driverID string) (domain.TripStatus, error) {
	if tripID == "" || driverID == "" {
		return "", ErrMissingFields
	}

	trip, err := s.tripRepo.GetByIDAndDriverID(ctx, tripID, driverID)
	if err != nil {
		return "", err
	}

	return trip.Status, nil
}
