package service

import (
	"context"

	"uitgo/internal/client"
	"uitgo/internal/domain"
)

// IdentityClient is the read-only contract against the user service.
// Implementations must degrade to false/nil on any failure.
type IdentityClient interface {
	ValidateCustomer(ctx context.Context, customerID string) bool
	ValidateDriver(ctx context.Context, driverID string) bool
	GetDriverProfile(ctx context.Context, driverID string) *domain.DriverProfile
}

// TripCompleter records a computed bill against the trip service.
type TripCompleter interface {
	CompleteTrip(ctx context.Context, tripID string, bill int64) (*client.CompletedTrip, error)
}

// Ensure the HTTP clients satisfy the contracts.
var (
	_ IdentityClient = (*client.UserClient)(nil)
	_ TripCompleter  = (*client.TripClient)(nil)
)
