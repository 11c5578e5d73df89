package service

import (
	"context"
	"errors"
	"log"
	"math"

	"uitgo/internal/client"
	"uitgo/internal/domain"
	"uitgo/internal/geo"
	"uitgo/internal/redis"
	"uitgo/internal/repository"
)

// matchRadiusM caps how far from the pickup point a driver may be matched.
const matchRadiusM = 10000.0

// MatchingService finds the nearest eligible driver for a pickup request and
// prices the trip. It holds no per-request state.
type MatchingService struct {
	locationStore redis.LocationStoreInterface
	users         IdentityClient
	trips         TripCompleter
}

// NewMatchingService creates a new MatchingService.
func NewMatchingService(locationStore redis.LocationStoreInterface, users IdentityClient, trips TripCompleter) *MatchingService {
	return &MatchingService{
		locationStore: locationStore,
		users:         users,
		trips:         trips,
	}
}

// MatchRequest contains the parameters for finding a driver.
type MatchRequest struct {
	CustomerID          string
	PickupLat           float64
	PickupLng           float64
	PickupDistrict      string
	PickupCity          string
	DestinationLat      float64
	DestinationLng      float64
}

// MatchResult contains the matched driver and the priced estimate. Profile is
// nil when the user service could not be reached; the match stands
// regardless.
type MatchResult struct {
	Driver       domain.DriverLocation
	Profile      *domain.DriverProfile
	DistanceKm   float64
	FareEstimate int64
}

// Match finds the nearest eligible driver within the pickup district/city and
// computes the fare estimate for the pickup-to-destination leg.
func (s *MatchingService) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !geo.ValidLatitude(req.PickupLat) || !geo.ValidLongitude(req.PickupLng) {
		return nil, ErrInvalidPickupLocation
	}
	if !geo.ValidLatitude(req.DestinationLat) || !geo.ValidLongitude(req.DestinationLng) {
		return nil, ErrInvalidDestinationLocation
	}

	nearby, err := s.locationStore.FindNearest(ctx, req.PickupLat, req.PickupLng, req.PickupDistrict, req.PickupCity, matchRadiusM)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoDriverAvailable
		}
		return nil, err
	}

	// Fare is estimated on the pickup-to-destination leg, not the driver's
	// approach.
	distanceKm := geo.Distance(req.PickupLat, req.PickupLng, req.DestinationLat, req.DestinationLng)
	fare, err := geo.Fare(distanceKm)
	if err != nil {
		return nil, err
	}

	result := &MatchResult{
		Driver:       nearby.DriverLocation,
		DistanceKm:   math.Round(distanceKm*100) / 100,
		FareEstimate: fare,
	}

	// Best-effort enrichment: a missing profile degrades the response but
	// never fails the match.
	if profile := s.users.GetDriverProfile(ctx, nearby.DriverID); profile != nil {
		result.Profile = profile
	} else {
		log.Printf("user service unavailable, returning location only for driver %s", nearby.DriverID)
	}

	return result, nil
}

// CompleteTripRequest contains the coordinates needed to bill a finished
// trip.
type CompleteTripRequest struct {
	TripID               string
	PickupLatitude       float64
	PickupLongitude      float64
	DestinationLatitude  float64
	DestinationLongitude float64
}

// CompleteTripResult holds the computed bill and the trip document recorded
// by the trip service.
type CompleteTripResult struct {
	Bill       int64
	DistanceKm float64
	Trip       *client.CompletedTrip
}

// CompleteTrip computes the final distance and bill for a trip and records
// them on the trip service.
func (s *MatchingService) CompleteTrip(ctx context.Context, req CompleteTripRequest) (*CompleteTripResult, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if !geo.ValidLatitude(req.PickupLatitude) || !geo.ValidLongitude(req.PickupLongitude) {
		return nil, ErrInvalidPickupLocation
	}
	if !geo.ValidLatitude(req.DestinationLatitude) || !geo.ValidLongitude(req.DestinationLongitude) {
		return nil, ErrInvalidDestinationLocation
	}

	distanceKm := geo.Distance(req.PickupLatitude, req.PickupLongitude, req.DestinationLatitude, req.DestinationLongitude)
	bill, err := geo.Fare(distanceKm)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.CompleteTrip(ctx, req.TripID, bill)
	if err != nil {
		return nil, err
	}

	return &CompleteTripResult{
		Bill:       bill,
		DistanceKm: distanceKm,
		Trip:       trip,
	}, nil
}
