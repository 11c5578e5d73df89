package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteTrip_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/update/completeTrip" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			TripID string `json:"trip_id"`
			Bill   int64  `json:"bill"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if req.TripID != "trip-1" || req.Bill != 48000 {
			t.Errorf("unexpected body: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "trip": {"trip_id": "trip-1", "status": "completed", "bill": 48000}}`))
	}))
	defer server.Close()

	c := NewTripClient(server.URL)

	trip, err := c.CompleteTrip(context.Background(), "trip-1", 48000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Status != "completed" || trip.Bill != 48000 {
		t.Errorf("unexpected trip: %+v", trip)
	}
}

func TestCompleteTrip_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewTripClient(server.URL)

	_, err := c.CompleteTrip(context.Background(), "missing", 48000)
	if !errors.Is(err, ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestCompleteTrip_ServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewTripClient(server.URL)

	if _, err := c.CompleteTrip(context.Background(), "trip-1", 48000); err == nil {
		t.Error("expected an error on 500")
	}
}
