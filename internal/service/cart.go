package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/repo"
)

// CartService implements cart-item operations. It holds the trip repo as
// well because creating or listing items is scoped to an existing trip.
type CartService struct {
	trips repo.TripRepo
	carts repo.CartItemRepo
}

// NewCartService constructs a CartService backed by the provided repos.
func NewCartService(trips repo.TripRepo, carts repo.CartItemRepo) *CartService {
	return &CartService{trips: trips, carts: carts}
}

// Create validates the item, verifies the parent trip exists, applies the
// Included default, then persists.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *CartService) Create(ctx context.Context, tripID uuid.UUID, item domain.CartItem, includedSet bool) (domain.CartItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return domain.CartItem{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if item.Price < 0 {
		return domain.CartItem{}, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.CartItem{}, fmt.Errorf("service.CartService.Create: %w", err)
	}

	item.TripID = &tripID
	if !includedSet {
		// Included defaults to true when omitted on creation.
		item.Included = true
	}

	created, err := s.carts.Create(ctx, item)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("service.CartService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns all items attached to the trip, insertion order.
// Returns domain.ErrNotFound when the trip itself is unknown.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CartService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.CartService.ListByTrip: %w", err)
	}

	items, err := s.carts.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CartService.ListByTrip: %w", err)
	}
	if items == nil {
		return []domain.CartItem{}, nil
	}
	return items, nil
}

// Update shallow-merges the patch into an existing item.
// Returns domain.ErrNotFound for an unknown id and domain.ErrValidation for
// a negative price.
func (s *CartService) Update(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return domain.CartItem{}, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}

	updated, err := s.carts.Update(ctx, id, patch)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("service.CartService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an item by ID. Deleting the same id twice returns success
// then domain.ErrNotFound, which the handler maps to the boolean-success
// contract.
func (s *CartService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.carts.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CartService.Delete: %w", err)
	}
	return nil
}

// Total sums the prices of the trip's included items only. Toggling an
// item's Included flag moves its price in or out of the total.
func (s *CartService) Total(ctx context.Context, tripID uuid.UUID) (int, error) {
	items, err := s.ListByTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}

	included := lo.Filter(items, func(it domain.CartItem, _ int) bool { return it.Included })
	return lo.SumBy(included, func(it domain.CartItem) int { return it.Price }), nil
}
