package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"uitgo/internal/service"
)

func newDriverFixture() (*service.DriverService, *MockLocationStore) {
	store := NewMockLocationStore()
	return service.NewDriverService(store), store
}

func TestUpsertLocation_CreatesRecord(t *testing.T) {
	svc, store := newDriverFixture()

	loc, err := svc.UpsertLocation(context.Background(), service.UpsertLocationRequest{
		DriverID: "driver-1",
		Lat:      10.7769,
		Lng:      106.7010,
		District: "D1",
		City:     "Ho Chi Minh",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 record, got %d", store.Count())
	}
}

func TestUpsertLocation_SecondReportReplacesFirst(t *testing.T) {
	svc, store := newDriverFixture()

	first := service.UpsertLocationRequest{
		DriverID: "driver-1",
		Lat:      10.7769,
		Lng:      106.7010,
		District: "D1",
		City:     "Ho Chi Minh",
	}
	if _, err := svc.UpsertLocation(context.Background(), first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	time.Sleep(time.Millisecond)

	second := first
	second.Lat = 10.8000
	second.District = "D3"
	if _, err := svc.UpsertLocation(context.Background(), second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if store.Count() != 1 {
		t.Fatalf("expected exactly 1 record after re-report, got %d", store.Count())
	}
	stored, ok := store.Get("driver-1")
	if !ok {
		t.Fatal("driver record missing")
	}
	if stored.Lat != 10.8000 || stored.District != "D3" {
		t.Errorf("expected latest report to win, got %+v", stored)
	}

	// The driver moved district; D1 searches must no longer find them.
	if _, err := store.FindNearest(context.Background(), 10.7769, 106.7010, "D1", "Ho Chi Minh", 10000); err == nil {
		t.Error("expected no driver in the old district")
	}
	if _, err := store.FindNearest(context.Background(), 10.8000, 106.7010, "D3", "Ho Chi Minh", 10000); err != nil {
		t.Errorf("expected driver in the new district, got %v", err)
	}
}

func TestUpsertLocation_RejectsInvalidInput(t *testing.T) {
	svc, store := newDriverFixture()

	tests := []struct {
		name string
		req  service.UpsertLocationRequest
		want error
	}{
		{
			name: "missing driver id",
			req:  service.UpsertLocationRequest{Lat: 10, Lng: 106},
			want: service.ErrInvalidDriverID,
		},
		{
			name: "latitude out of range",
			req:  service.UpsertLocationRequest{DriverID: "d", Lat: 95, Lng: 106},
			want: service.ErrInvalidLocation,
		},
		{
			name: "longitude out of range",
			req:  service.UpsertLocationRequest{DriverID: "d", Lat: 10, Lng: -200},
			want: service.ErrInvalidLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpsertLocation(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if store.Count() != 0 {
		t.Errorf("invalid reports must not be stored, got %d records", store.Count())
	}
}

func TestUpdateStatus_OfflineIsAcknowledgedWithoutErasing(t *testing.T) {
	svc, store := newDriverFixture()

	if _, err := svc.UpsertLocation(context.Background(), service.UpsertLocationRequest{
		DriverID: "driver-1", Lat: 10.7769, Lng: 106.7010, District: "D1", City: "Ho Chi Minh",
	}); err != nil {
		t.Fatalf("seed upsert failed: %v", err)
	}

	loc, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		DriverID: "driver-1",
		IsOnline: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != nil {
		t.Errorf("offline report should return no location, got %+v", loc)
	}
	if store.Count() != 1 {
		t.Error("offline report must not erase the stored record")
	}
}

func TestUpdateStatus_OnlineRequiresCoordinates(t *testing.T) {
	svc, _ := newDriverFixture()

	_, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		DriverID: "driver-1",
		IsOnline: true,
	})
	if !errors.Is(err, service.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func TestUpdateStatus_OnlineUpsertsLocation(t *testing.T) {
	svc, store := newDriverFixture()

	lat, lng := 10.7769, 106.7010
	loc, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		DriverID: "driver-1",
		IsOnline: true,
		Lat:      &lat,
		Lng:      &lng,
		District: "D1",
		City:     "Ho Chi Minh",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Lat != lat || loc.District != "D1" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 record, got %d", store.Count())
	}
}
