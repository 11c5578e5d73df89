package repository

import (
	"context"

	"uitgo/internal/domain"
)

// TripRepository defines the persistence operations for trips.
//
// Transition methods apply conditional updates keyed by trip id: a trip in a
// terminal state (completed/cancelled) is never mutated and the call reports
// ErrNotFound, indistinguishable from a missing trip. Within non-terminal
// states the last writer wins; there is no compare-and-swap on the prior
// status.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// SetDriverMatched sets the driver and moves the trip to matched.
	SetDriverMatched(ctx context.Context, tripID, driverID string) (*domain.Trip, error)

	// SetDriverAccepted sets the driver and moves the trip to accepted.
	// Re-setting the same driver is allowed.
	SetDriverAccepted(ctx context.Context, tripID, driverID string) (*domain.Trip, error)

	// Cancel moves a non-terminal trip to cancelled.
	Cancel(ctx context.Context, tripID string) (*domain.Trip, error)

	// Complete records the bill and moves the trip to completed.
	Complete(ctx context.Context, tripID string, bill int64) (*domain.Trip, error)

	// GetMatchedByDriverID retrieves the trip currently matched to a driver.
	GetMatchedByDriverID(ctx context.Context, driverID string) (*domain.Trip, error)

	// GetByIDAndDriverID retrieves a trip only if it belongs to the driver.
	GetByIDAndDriverID(ctx context.Context, tripID, driverID string) (*domain.Trip, error)
}
