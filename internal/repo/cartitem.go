package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripdeck/backend/internal/domain"
)

// CartItemRepo defines the persistence operations for CartItems.
type CartItemRepo interface {
	// Create inserts a new cart item and returns the persisted record.
	// Optional fields (TripID, Provider, DayNumber) stay nil when absent;
	// the Included default is applied by the service before the insert.
	Create(ctx context.Context, item domain.CartItem) (domain.CartItem, error)

	// GetByID retrieves a single cart item by its UUID primary key.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.CartItem, error)

	// ListByTrip returns all items whose trip id matches, in insertion order.
	// Items belonging to other trips, or to no trip, are never returned.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error)

	// Update shallow-merges the patch into an existing item and returns the
	// updated record. Returns domain.ErrNotFound for an unknown id.
	Update(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error)

	// Delete removes an item by ID. Returns domain.ErrNotFound if the item
	// does not exist, so a second delete of the same id reports failure.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByTrip removes every item attached to the given trip and returns
	// how many were removed. Used by generation compensation and by cart
	// reconciliation after a modification action rewrites the itinerary.
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int, error)
}

// pgCartItemRepo is the Postgres implementation of CartItemRepo.
type pgCartItemRepo struct {
	db db
}

// NewCartItemRepo constructs a CartItemRepo backed by the provided db connection.
func NewCartItemRepo(db db) CartItemRepo {
	return &pgCartItemRepo{db: db}
}

func (r *pgCartItemRepo) Create(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	const q = `
		INSERT INTO cart_items (trip_id, kind, title, details, provider, price, included, day_number)
		VALUES (@trip_id, @kind, @title, @details, @provider, @price, @included, @day_number)
		RETURNING id, trip_id, kind, title, details, provider, price, included, day_number`

	args := pgx.NamedArgs{
		"trip_id":    item.TripID, // nil becomes NULL
		"kind":       item.Kind,
		"title":      item.Title,
		"details":    item.Details,
		"provider":   item.Provider,
		"price":      item.Price,
		"included":   item.Included,
		"day_number": item.DayNumber,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("repo.CartItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCartItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CartItem, error) {
	const q = `
		SELECT id, trip_id, kind, title, details, provider, price, included, day_number
		FROM cart_items
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("repo.CartItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCartItemRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error) {
	const q = `
		SELECT id, trip_id, kind, title, details, provider, price, included, day_number
		FROM cart_items
		WHERE trip_id = @trip_id
		ORDER BY seq`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CartItemRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CartItemRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CartItemRepo.ListByTrip: rows: %w", err)
	}

	return items, nil
}

func (r *pgCartItemRepo) Update(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error) {
	const q = `
		UPDATE cart_items
		SET kind       = COALESCE(@kind, kind),
		    title      = COALESCE(@title, title),
		    details    = COALESCE(@details, details),
		    provider   = COALESCE(@provider, provider),
		    price      = COALESCE(@price, price),
		    included   = COALESCE(@included, included),
		    day_number = COALESCE(@day_number, day_number)
		WHERE id = @id
		RETURNING id, trip_id, kind, title, details, provider, price, included, day_number`

	args := pgx.NamedArgs{
		"id":         id,
		"kind":       patch.Kind,
		"title":      patch.Title,
		"details":    patch.Details,
		"provider":   patch.Provider,
		"price":      patch.Price,
		"included":   patch.Included,
		"day_number": patch.DayNumber,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("repo.CartItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCartItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM cart_items WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CartItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CartItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgCartItemRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int, error) {
	const q = `DELETE FROM cart_items WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.CartItemRepo.DeleteByTrip: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// scanCartItem maps a single database row into a domain.CartItem.
func scanCartItem(s scanner) (domain.CartItem, error) {
	var it domain.CartItem
	err := s.Scan(&it.ID, &it.TripID, &it.Kind, &it.Title, &it.Details,
		&it.Provider, &it.Price, &it.Included, &it.DayNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CartItem{}, domain.ErrNotFound
		}
		return domain.CartItem{}, err
	}
	return it, nil
}
