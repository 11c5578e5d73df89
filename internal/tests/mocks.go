package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"uitgo/internal/client"
	"uitgo/internal/domain"
	"uitgo/internal/geo"
	"uitgo/internal/redis"
	"uitgo/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is an in-memory implementation of
// redis.LocationStoreInterface with the same district/city scoping, radius
// cap, and tie-break semantics as the Redis-backed store.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]domain.DriverLocation

	UpsertError      error
	FindNearestError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make(map[string]domain.DriverLocation),
	}
}

func (m *MockLocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if loc.UpdatedAt.IsZero() {
		loc.UpdatedAt = time.Now()
	}
	m.locations[loc.DriverID] = loc
	return nil
}

func (m *MockLocationStore) FindNearest(ctx context.Context, lat, lng float64, district, city string, radiusM float64) (*redis.NearbyDriver, error) {
	if m.FindNearestError != nil {
		return nil, m.FindNearestError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var best *redis.NearbyDriver
	for _, loc := range m.locations {
		if loc.District != district || loc.City != city {
			continue
		}
		distKm := geo.Distance(lat, lng, loc.Lat, loc.Lng)
		if distKm*1000 > radiusM {
			continue
		}
		candidate := &redis.NearbyDriver{DriverLocation: loc, DistanceKm: distKm}
		if best == nil ||
			candidate.DistanceKm < best.DistanceKm ||
			(candidate.DistanceKm == best.DistanceKm && candidate.DriverID < best.DriverID) {
			best = candidate
		}
	}

	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (m *MockLocationStore) Remove(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, driverID)
	return nil
}

// Count returns the number of stored records, for test assertions.
func (m *MockLocationStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.locations)
}

// Get returns the stored record for a driver, for test assertions.
func (m *MockLocationStore) Get(driverID string) (domain.DriverLocation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[driverID]
	return loc, ok
}

// ──────────────────────────────────────────────
// MOCK IDENTITY CLIENT
// ──────────────────────────────────────────────

// MockIdentityClient is a mock implementation of service.IdentityClient.
type MockIdentityClient struct {
	mu        sync.RWMutex
	customers map[string]bool
	profiles  map[string]*domain.DriverProfile

	// Unavailable simulates the user service being unreachable: every call
	// degrades to false/nil.
	Unavailable bool

	ValidateCustomerCallCount int32
	ProfileCallCount          int32
}

// NewMockIdentityClient creates a new mock identity client.
func NewMockIdentityClient() *MockIdentityClient {
	return &MockIdentityClient{
		customers: make(map[string]bool),
		profiles:  make(map[string]*domain.DriverProfile),
	}
}

// AddCustomer registers a known customer id.
func (m *MockIdentityClient) AddCustomer(customerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customerID] = true
}

// AddDriverProfile registers a known driver with a profile.
func (m *MockIdentityClient) AddDriverProfile(driverID string, profile *domain.DriverProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[driverID] = profile
}

func (m *MockIdentityClient) ValidateCustomer(ctx context.Context, customerID string) bool {
	atomic.AddInt32(&m.ValidateCustomerCallCount, 1)
	if m.Unavailable {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.customers[customerID]
}

func (m *MockIdentityClient) ValidateDriver(ctx context.Context, driverID string) bool {
	return m.GetDriverProfile(ctx, driverID) != nil
}

func (m *MockIdentityClient) GetDriverProfile(ctx context.Context, driverID string) *domain.DriverProfile {
	atomic.AddInt32(&m.ProfileCallCount, 1)
	if m.Unavailable {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[driverID]
}

// ──────────────────────────────────────────────
// MOCK TRIP COMPLETER
// ──────────────────────────────────────────────

// MockTripCompleter is a mock implementation of service.TripCompleter.
type MockTripCompleter struct {
	mu sync.Mutex

	CompleteError error

	LastTripID string
	LastBill   int64
	CallCount  int32
}

// NewMockTripCompleter creates a new mock trip completer.
func NewMockTripCompleter() *MockTripCompleter {
	return &MockTripCompleter{}
}

func (m *MockTripCompleter) CompleteTrip(ctx context.Context, tripID string, bill int64) (*client.CompletedTrip, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.CompleteError != nil {
		return nil, m.CompleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastTripID = tripID
	m.LastBill = bill
	return &client.CompletedTrip{
		TripID: tripID,
		Status: string(domain.TripStatusCompleted),
		Bill:   bill,
	}, nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is an in-memory implementation of
// repository.TripRepository with the same terminal-state guard semantics as
// the PostgreSQL one.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	CreateError error

	CreateCallCount int32
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip seeds a trip.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

// GetTrip returns a stored trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

// mutate applies fn to a non-terminal trip. Terminal or missing trips report
// ErrNotFound without mutation, matching the conditional UPDATE guard.
func (m *MockTripRepository) mutate(id string, fn func(*domain.Trip)) (*domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok || trip.Status.IsTerminal() {
		return nil, repository.ErrNotFound
	}
	fn(trip)
	trip.UpdatedAt = time.Now()
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) SetDriverMatched(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	return m.mutate(tripID, func(t *domain.Trip) {
		t.DriverID = driverID
		t.Status = domain.TripStatusMatched
	})
}

func (m *MockTripRepository) SetDriverAccepted(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	return m.mutate(tripID, func(t *domain.Trip) {
		t.DriverID = driverID
		t.Status = domain.TripStatusAccepted
	})
}

func (m *MockTripRepository) Cancel(ctx context.Context, tripID string) (*domain.Trip, error) {
	return m.mutate(tripID, func(t *domain.Trip) {
		t.Status = domain.TripStatusCancelled
	})
}

func (m *MockTripRepository) Complete(ctx context.Context, tripID string, bill int64) (*domain.Trip, error) {
	return m.mutate(tripID, func(t *domain.Trip) {
		t.Bill = bill
		t.Status = domain.TripStatusCompleted
	})
}

func (m *MockTripRepository) GetMatchedByDriverID(ctx context.Context, driverID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, trip := range m.trips {
		if trip.DriverID == driverID && trip.Status == domain.TripStatusMatched {
			copy := *trip
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTripRepository) GetByIDAndDriverID(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[tripID]
	if !ok || trip.DriverID != driverID {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

// Interface assertions.
var (
	_ redis.LocationStoreInterface = (*MockLocationStore)(nil)
	_ repository.TripRepository    = (*MockTripRepository)(nil)
)
