package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"uitgo/internal/domain"
	"uitgo/internal/repository"
)

var tripRows = []string{
	"id", "customer_id", "pickup_district", "pickup_city",
	"destination_district", "destination_city", "driver_id", "status",
	"bill", "created_at", "updated_at",
}

func tripRow(mock sqlmock.Sqlmock, trip *domain.Trip) *sqlmock.Rows {
	return mock.NewRows(tripRows).AddRow(
		trip.ID, trip.CustomerID, trip.PickupDistrict, trip.PickupCity,
		trip.DestinationDistrict, trip.DestinationCity, trip.DriverID,
		string(trip.Status), trip.Bill, trip.CreatedAt, trip.UpdatedAt,
	)
}

func TestTripRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	trip := &domain.Trip{
		ID:                  "0f8fad5b-d9cb-469f-a165-70867728950e",
		CustomerID:          "customer-1",
		PickupDistrict:      "D1",
		PickupCity:          "Hanoi",
		DestinationDistrict: "D5",
		DestinationCity:     "Hanoi",
		Status:              domain.TripStatusRequested,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	mock.ExpectExec("INSERT INTO trips").
		WithArgs(trip.ID, trip.CustomerID, trip.PickupDistrict, trip.PickupCity,
			trip.DestinationDistrict, trip.DestinationCity, string(trip.Status), trip.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTripRepository(db)
	if err := repo.Create(context.Background(), trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_CancelGuardsTerminalStates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	// A completed or cancelled trip matches no row; the update must report
	// not-found without issuing any further statement.
	mock.ExpectQuery("UPDATE trips").
		WithArgs("trip-terminal").
		WillReturnRows(mock.NewRows(tripRows))

	repo := NewTripRepository(db)
	_, err = repo.Cancel(context.Background(), "trip-terminal")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_CompleteSetsBillAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	completed := &domain.Trip{
		ID:                  "trip-1",
		CustomerID:          "customer-1",
		PickupDistrict:      "D1",
		PickupCity:          "Hanoi",
		DestinationDistrict: "D5",
		DestinationCity:     "Hanoi",
		DriverID:            "driver-1",
		Status:              domain.TripStatusCompleted,
		Bill:                48000,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	mock.ExpectQuery("UPDATE trips").
		WithArgs("trip-1", int64(48000)).
		WillReturnRows(tripRow(mock, completed))

	repo := NewTripRepository(db)
	trip, err := repo.Complete(context.Background(), "trip-1", 48000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("expected status completed, got %s", trip.Status)
	}
	if trip.Bill != 48000 {
		t.Errorf("expected bill 48000, got %d", trip.Bill)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_SetDriverMatched(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	matched := &domain.Trip{
		ID:                  "trip-1",
		CustomerID:          "customer-1",
		PickupDistrict:      "D1",
		PickupCity:          "Hanoi",
		DestinationDistrict: "D5",
		DestinationCity:     "Hanoi",
		DriverID:            "driver-9",
		Status:              domain.TripStatusMatched,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	mock.ExpectQuery("UPDATE trips").
		WithArgs("trip-1", "driver-9").
		WillReturnRows(tripRow(mock, matched))

	repo := NewTripRepository(db)
	trip, err := repo.SetDriverMatched(context.Background(), "trip-1", "driver-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.DriverID != "driver-9" || trip.Status != domain.TripStatusMatched {
		t.Errorf("unexpected trip: %+v", trip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTripRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM trips WHERE id").
		WithArgs("missing").
		WillReturnRows(mock.NewRows(tripRows))

	repo := NewTripRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
