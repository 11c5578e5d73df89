package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"uitgo/internal/domain"
	"uitgo/internal/handler"
	"uitgo/internal/service"
)

type httpFixture struct {
	tripRouter   *gin.Engine
	driverRouter *gin.Engine
	store        *MockLocationStore
	users        *MockIdentityClient
	repo         *MockTripRepository
}

func newHTTPFixture() *httpFixture {
	gin.SetMode(gin.TestMode)

	store := NewMockLocationStore()
	users := NewMockIdentityClient()
	repo := NewMockTripRepository()
	trips := NewMockTripCompleter()

	tripHandler := handler.NewTripHandler(service.NewTripService(repo, users))
	tripRouter := gin.New()
	tripRouter.POST("/add_trip_data", tripHandler.AddTrip)
	tripRouter.PATCH("/cancel_trip", tripHandler.CancelTrip)
	tripRouter.PATCH("/update_driver", tripHandler.UpdateDriver)
	tripRouter.PATCH("/assign-driver", tripHandler.AssignDriver)
	tripRouter.POST("/getTripData", tripHandler.GetTripData)
	tripRouter.GET("/trips/driver", tripHandler.TripStatusForDriver)
	tripRouter.PATCH("/update/completeTrip", tripHandler.CompleteTrip)

	driverHandler := handler.NewDriverHandler(
		service.NewDriverService(store),
		service.NewMatchingService(store, users, trips),
	)
	driverRouter := gin.New()
	driverRouter.POST("/charge", driverHandler.Charge)
	driverRouter.POST("/find-driver", driverHandler.FindDriver)

	return &httpFixture{
		tripRouter:   tripRouter,
		driverRouter: driverRouter,
		store:        store,
		users:        users,
		repo:         repo,
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorEnvelope {
	t.Helper()
	var env handler.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode error envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func TestHTTP_AddTripCreated(t *testing.T) {
	f := newHTTPFixture()
	f.users.AddCustomer("customer-1")

	w := doJSON(t, f.tripRouter, http.MethodPost, "/add_trip_data", `{
		"customer_id": "customer-1",
		"pickup_district": "D1",
		"pickup_city": "Ho Chi Minh",
		"destination_district": "D5",
		"destination_city": "Ho Chi Minh"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                 `json:"success"`
		TripID  string               `json:"trip_id"`
		Trip    handler.TripResponse `json:"trip"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !resp.Success || resp.TripID == "" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if resp.Trip.Status != "requested" {
		t.Errorf("expected status requested, got %q", resp.Trip.Status)
	}
}

func TestHTTP_AddTripUnknownCustomerIs400(t *testing.T) {
	f := newHTTPFixture()

	w := doJSON(t, f.tripRouter, http.MethodPost, "/add_trip_data", `{
		"customer_id": "ghost",
		"pickup_district": "D1",
		"pickup_city": "Ho Chi Minh",
		"destination_district": "D5",
		"destination_city": "Ho Chi Minh"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "INVALID_CUSTOMER" {
		t.Errorf("expected INVALID_CUSTOMER, got %q", env.Error.Code)
	}
}

func TestHTTP_AddTripMissingFieldsIs400(t *testing.T) {
	f := newHTTPFixture()
	f.users.AddCustomer("customer-1")

	w := doJSON(t, f.tripRouter, http.MethodPost, "/add_trip_data", `{"customer_id": "customer-1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %q", env.Error.Code)
	}
}

func TestHTTP_CancelUnknownTripIs404(t *testing.T) {
	f := newHTTPFixture()

	w := doJSON(t, f.tripRouter, http.MethodPatch, "/cancel_trip", `{"trip_id": "missing"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %q", env.Error.Code)
	}
}

func TestHTTP_CompleteCancelledTripIs404(t *testing.T) {
	f := newHTTPFixture()
	f.repo.AddTrip(&domain.Trip{
		ID:         "trip-1",
		CustomerID: "customer-1",
		Status:     domain.TripStatusCancelled,
	})

	w := doJSON(t, f.tripRouter, http.MethodPatch, "/update/completeTrip", `{"trip_id": "trip-1", "bill": 48000}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for terminal trip, got %d", w.Code)
	}
	if trip := f.repo.GetTrip("trip-1"); trip.Status != domain.TripStatusCancelled || trip.Bill != 0 {
		t.Errorf("terminal trip mutated: %+v", trip)
	}
}

func TestHTTP_TripStatusForDriver(t *testing.T) {
	f := newHTTPFixture()
	f.repo.AddTrip(&domain.Trip{
		ID:         "trip-1",
		CustomerID: "customer-1",
		DriverID:   "driver-1",
		Status:     domain.TripStatusMatched,
	})

	w := doJSON(t, f.tripRouter, http.MethodGet, "/trips/driver?driver_id=driver-1&trip_id=trip-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		StatusTrip string `json:"status_trip"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.StatusTrip != "matched" {
		t.Errorf("expected matched, got %q", resp.StatusTrip)
	}
}

func TestHTTP_ChargeUpsertsLocation(t *testing.T) {
	f := newHTTPFixture()

	w := doJSON(t, f.driverRouter, http.MethodPost, "/charge", `{
		"driver_id": "driver-1",
		"latitude": 10.7769,
		"longitude": 106.7010,
		"district": "D1",
		"city": "Ho Chi Minh"
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if f.store.Count() != 1 {
		t.Errorf("expected 1 stored location, got %d", f.store.Count())
	}
}

func TestHTTP_ChargeMissingCoordinatesIs400(t *testing.T) {
	f := newHTTPFixture()

	w := doJSON(t, f.driverRouter, http.MethodPost, "/charge", `{"driver_id": "driver-1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHTTP_FindDriverNoDriverIs404(t *testing.T) {
	f := newHTTPFixture()

	w := doJSON(t, f.driverRouter, http.MethodPost, "/find-driver", `{
		"customer_id": "customer-1",
		"pickup_lat": 10.7769,
		"pickup_lng": 106.7010,
		"pickup_district": "D1",
		"pickup_city": "Ho Chi Minh",
		"destination_lat": 10.8231,
		"destination_lng": 106.6297
	}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %q", env.Error.Code)
	}
}

func TestHTTP_FindDriverMatchesAndPrices(t *testing.T) {
	f := newHTTPFixture()
	seedDriver(t, f.store, "driver-1", 10.7770, 106.7011, "D1", "Ho Chi Minh")
	f.users.AddDriverProfile("driver-1", &domain.DriverProfile{
		FullName:    "Nguyen Van A",
		VehicleType: "motorbike",
		IsOnline:    true,
	})

	w := doJSON(t, f.driverRouter, http.MethodPost, "/find-driver", `{
		"customer_id": "customer-1",
		"pickup_lat": 10.7769,
		"pickup_lng": 106.7010,
		"pickup_district": "D1",
		"pickup_city": "Ho Chi Minh",
		"destination_lat": 10.8231,
		"destination_lng": 106.6297
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success      bool                          `json:"success"`
		Driver       handler.MatchedDriverResponse `json:"driver"`
		DistanceKm   float64                       `json:"distance_km"`
		FareEstimate int64                         `json:"fare_estimate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Driver.DriverID != "driver-1" || resp.Driver.FullName != "Nguyen Van A" {
		t.Errorf("unexpected driver block: %+v", resp.Driver)
	}
	if resp.DistanceKm <= 0 {
		t.Errorf("expected positive distance, got %v", resp.DistanceKm)
	}
	if resp.FareEstimate < 20000 || resp.FareEstimate%1000 != 0 {
		t.Errorf("unexpected fare estimate %d", resp.FareEstimate)
	}
}
