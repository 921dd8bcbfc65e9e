package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripdeck/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips owned by the given user, in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Update shallow-merges the patch into an existing trip and returns the
	// updated record. Set fields replace stored values wholesale; the Days
	// sequence in particular is replaced, never deep-merged.
	// Returns domain.ErrNotFound if no trip with that ID exists, without
	// creating a new record.
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip by ID. Trips are never deleted through the API;
	// this exists only for the compensating cleanup when cart fan-out fails
	// mid-batch during generation.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
// The days sequence is stored as a JSONB column: it is an opaque ordered
// structure to the store, replaced wholesale on update.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	days, err := json.Marshal(trip.Days)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: marshal days: %w", err)
	}

	const q = `
		INSERT INTO trips (user_id, title, origin, destination, start_date, end_date, theme, budget, days)
		VALUES (@user_id, @title, @origin, @destination, @start_date, @end_date, @theme, @budget, @days)
		RETURNING id, user_id, title, origin, destination, start_date, end_date, theme, budget, days, created_at`

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"title":       trip.Title,
		"origin":      trip.Origin,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"theme":       trip.Theme,
		"budget":      trip.Budget,
		"days":        days,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, user_id, title, origin, destination, start_date, end_date, theme, budget, days, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT id, user_id, title, origin, destination, start_date, end_date, theme, budget, days, created_at
		FROM trips
		WHERE user_id = @user_id
		ORDER BY seq`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	// nil args stay NULL, so COALESCE keeps the stored value: field-level
	// replace with a single round trip.
	const q = `
		UPDATE trips
		SET title       = COALESCE(@title, title),
		    origin      = COALESCE(@origin, origin),
		    destination = COALESCE(@destination, destination),
		    start_date  = COALESCE(@start_date, start_date),
		    end_date    = COALESCE(@end_date, end_date),
		    theme       = COALESCE(@theme, theme),
		    budget      = COALESCE(@budget, budget),
		    days        = COALESCE(@days, days)
		WHERE id = @id
		RETURNING id, user_id, title, origin, destination, start_date, end_date, theme, budget, days, created_at`

	var days any
	if patch.Days != nil {
		b, err := json.Marshal(*patch.Days)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: marshal days: %w", err)
		}
		days = b
	}

	args := pgx.NamedArgs{
		"id":          id,
		"title":       patch.Title,
		"origin":      patch.Origin,
		"destination": patch.Destination,
		"start_date":  patch.StartDate,
		"end_date":    patch.EndDate,
		"theme":       patch.Theme,
		"budget":      patch.Budget,
		"days":        days,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip, decoding the JSONB
// days column.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t    domain.Trip
		days []byte
	)

	err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.Origin, &t.Destination,
		&t.StartDate, &t.EndDate, &t.Theme, &t.Budget, &days, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if len(days) > 0 {
		if err := json.Unmarshal(days, &t.Days); err != nil {
			return domain.Trip{}, fmt.Errorf("decode days: %w", err)
		}
	}

	return t, nil
}
