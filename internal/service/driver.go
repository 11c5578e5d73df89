package service

import (
	"context"
	"time"

	"uitgo/internal/domain"
	"uitgo/internal/geo"
	"uitgo/internal/redis"
)

// DriverService handles driver location reports.
type DriverService struct {
	locationStore redis.LocationStoreInterface
}

// NewDriverService creates a new DriverService.
func NewDriverService(locationStore redis.LocationStoreInterface) *DriverService {
	return &DriverService{locationStore: locationStore}
}

// UpsertLocationRequest contains the parameters of a driver location report.
type UpsertLocationRequest struct {
	DriverID string
	Lat      float64
	Lng      float64
	District string
	City     string
}

// UpsertLocation creates or replaces the driver's location record.
// Re-reporting identical data is idempotent apart from the updated_at
// timestamp.
func (s *DriverService) UpsertLocation(ctx context.Context, req UpsertLocationRequest) (*domain.DriverLocation, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !geo.ValidLatitude(req.Lat) || !geo.ValidLongitude(req.Lng) {
		return nil, ErrInvalidLocation
	}

	loc := domain.DriverLocation{
		DriverID:  req.DriverID,
		Lat:       req.Lat,
		Lng:       req.Lng,
		District:  req.District,
		City:      req.City,
		UpdatedAt: time.Now(),
	}

	if err := s.locationStore.Upsert(ctx, loc); err != nil {
		return nil, err
	}

	return &loc, nil
}

// UpdateStatusRequest is the internal status report pushed by the user
// service when a driver toggles availability.
type UpdateStatusRequest struct {
	DriverID string
	IsOnline bool
	Lat      *float64
	Lng      *float64
	District string
	City     string
}

// UpdateStatus applies an online/offline report. Going online requires
// coordinates and upserts the location; going offline is acknowledged
// without erasing the record.
func (s *DriverService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.DriverLocation, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	if !req.IsOnline {
		return nil, nil
	}

	if req.Lat == nil || req.Lng == nil {
		return nil, ErrMissingFields
	}

	return s.UpsertLocation(ctx, UpsertLocationRequest{
		DriverID: req.DriverID,
		Lat:      *req.Lat,
		Lng:      *req.Lng,
		District: req.District,
		City:     req.City,
	})
}
