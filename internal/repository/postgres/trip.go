package postgres

import (
	"context"
	"database/sql"
	"errors"

	"uitgo/internal/domain"
	"uitgo/internal/repository"
)

// tripColumns is the column list shared by every trip SELECT/RETURNING.
const tripColumns = `id, customer_id, pickup_district, pickup_city, destination_district, destination_city, COALESCE(driver_id, ''), status, COALESCE(bill, 0), created_at, updated_at`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
//
// Transitions are single conditional UPDATE statements guarded by
// status NOT IN ('completed', 'cancelled'); zero rows affected maps to
// repository.ErrNotFound. That guard is the only concurrency control: two
// concurrent transitions on a non-terminal trip both succeed and the second
// overwrites the first.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, customer_id, pickup_district, pickup_city, destination_district, destination_city, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.CustomerID,
		trip.PickupDistrict,
		trip.PickupCity,
		trip.DestinationDistrict,
		trip.DestinationCity,
		trip.Status,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// SetDriverMatched sets the driver and moves the trip to matched.
func (r *TripRepository) SetDriverMatched(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	query := `
		UPDATE trips
		SET driver_id = $2, status = 'matched', updated_at = now()
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
		RETURNING ` + tripColumns

	return r.scanOne(r.q.QueryRowContext(ctx, query, tripID, driverID))
}

// SetDriverAccepted sets the driver and moves the trip to accepted.
func (r *TripRepository) SetDriverAccepted(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	query := `
		UPDATE trips
		SET driver_id = $2, status = 'accepted', updated_at = now()
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
		RETURNING ` + tripColumns

	return r.scanOne(r.q.QueryRowContext(ctx, query, tripID, driverID))
}

// Cancel moves a non-terminal trip to cancelled.
func (r *TripRepository) Cancel(ctx context.Context, tripID string) (*domain.Trip, error) {
	query := `
		UPDATE trips
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
		RETURNING ` + tripColumns

	return r.scanOne(r.q.QueryRowContext(ctx, query, tripID))
}

// Complete records the bill and moves the trip to completed.
func (r *TripRepository) Complete(ctx context.Context, tripID string, bill int64) (*domain.Trip, error) {
	query := `
		UPDATE trips
		SET bill = $2, status = 'completed', updated_at = now()
		WHERE id = $1 AND status NOT IN ('completed', 'cancelled')
		RETURNING ` + tripColumns

	return r.scanOne(r.q.QueryRowContext(ctx, query, tripID, bill))
}

// GetMatchedByDriverID retrieves the trip currently matched to a driver.
func (r *TripRepository) GetMatchedByDriverID(ctx context.Context, driverID string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE driver_id = $1 AND status = 'matched' ORDER BY created_at DESC LIMIT 1`

	return r.scanOne(r.q.QueryRowContext(ctx, query, driverID))
}

// GetByIDAndDriverID retrieves a trip only if it belongs to the driver.
func (r *TripRepository) GetByIDAndDriverID(ctx context.Context, tripID, driverID string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND driver_id = $2`

	return r.scanOne(r.q.QueryRowContext(ctx, query, tripID, driverID))
}

func (r *TripRepository) scanOne(row *sql.Row) (*domain.Trip, error) {
	var trip domain.Trip
	err := row.Scan(
		&trip.ID,
		&trip.CustomerID,
		&trip.PickupDistrict,
		&trip.PickupCity,
		&trip.DestinationDistrict,
		&trip.DestinationCity,
		&trip.DriverID,
		&trip.Status,
		&trip.Bill,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}
