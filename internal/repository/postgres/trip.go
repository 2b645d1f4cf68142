package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/repository"
)

const tripColumns = `id, pickup_time, dropoff_time, trip_distance, fare_amount, tip_amount, total_amount,
		payment_type, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
//
// Timestamps are stored without a zone. They are read back as wall-clock
// times in loc so pickup dates and hours match what was imported.
type TripRepository struct {
	db  *sql.DB
	q   Querier
	loc *time.Location
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB, loc *time.Location) *TripRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &TripRepository{db: db, q: db, loc: loc}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx, loc *time.Location) *TripRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &TripRepository{q: tx, loc: loc}
}

// GetAll retrieves every trip, ordered by pickup time.
func (r *TripRepository) GetAll(ctx context.Context) ([]domain.TripRecord, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY pickup_time, id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.TripRecord{}
	for rows.Next() {
		trip, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.TripRecord, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := r.scan(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

// CreateBatch persists trips in a single transaction.
func (r *TripRepository) CreateBatch(ctx context.Context, trips []domain.TripRecord) (int, error) {
	if len(trips) == 0 {
		return 0, nil
	}

	// Already inside a transaction.
	if r.db == nil {
		return r.insertAll(ctx, trips)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stored, err := NewTripRepositoryWithTx(tx, r.loc).insertAll(ctx, trips)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return stored, nil
}

// Count returns the number of stored trips.
func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *TripRepository) insertAll(ctx context.Context, trips []domain.TripRecord) (int, error) {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (COALESCE(NULLIF($1, 0), nextval('trips_id_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`

	stored := 0
	for _, trip := range trips {
		var dropoff sql.NullTime
		if !trip.DropoffTime.IsZero() {
			dropoff = sql.NullTime{Time: wallClock(trip.DropoffTime), Valid: true}
		}

		result, err := r.q.ExecContext(ctx, query,
			trip.ID,
			wallClock(trip.PickupTime),
			dropoff,
			trip.TripDistance,
			trip.FareAmount,
			trip.TipAmount,
			trip.TotalAmount,
			string(trip.PaymentType),
			trip.PickupLat,
			trip.PickupLng,
			trip.DropoffLat,
			trip.DropoffLng,
		)
		if err != nil {
			return stored, fmt.Errorf("insert trip %d: %w", trip.ID, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return stored, err
		}
		stored += int(n)
	}

	// Explicit IDs bypass the sequence; move it past them.
	if _, err := r.q.ExecContext(ctx,
		`SELECT setval('trips_id_seq', (SELECT COALESCE(MAX(id), 0) + 1 FROM trips), false)`,
	); err != nil {
		return stored, err
	}

	return stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *TripRepository) scan(row rowScanner) (domain.TripRecord, error) {
	var trip domain.TripRecord
	var pickup time.Time
	var dropoff sql.NullTime
	var payment string

	if err := row.Scan(
		&trip.ID,
		&pickup,
		&dropoff,
		&trip.TripDistance,
		&trip.FareAmount,
		&trip.TipAmount,
		&trip.TotalAmount,
		&payment,
		&trip.PickupLat,
		&trip.PickupLng,
		&trip.DropoffLat,
		&trip.DropoffLng,
	); err != nil {
		return domain.TripRecord{}, err
	}

	trip.PickupTime = inLocation(pickup, r.loc)
	if dropoff.Valid {
		trip.DropoffTime = inLocation(dropoff.Time, r.loc)
	}
	trip.PaymentType = domain.PaymentType(payment)

	return trip, nil
}

// wallClock drops the zone so the TIMESTAMP column keeps the local reading.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
