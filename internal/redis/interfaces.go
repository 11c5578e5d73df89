package redis

import (
	"context"

	"uitgo/internal/domain"
)

// LocationStoreInterface defines the interface for driver location
// operations.
type LocationStoreInterface interface {
	Upsert(ctx context.Context, loc domain.DriverLocation) error
	FindNearest(ctx context.Context, lat, lng float64, district, city string, radiusM float64) (*NearbyDriver, error)
	Remove(ctx context.Context, driverID string) error
}

// Ensure concrete types implement interfaces.
var _ LocationStoreInterface = (*LocationStore)(nil)
