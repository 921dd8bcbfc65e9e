package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripdeck/backend/internal/domain"
)

// The in-memory implementations below are the default backing: state lives
// for the process lifetime only and every operation is atomic at single-key
// granularity. Each repo guards its maps with its own mutex; a multi-step
// operation (create trip, then N cart items) is not atomic across calls and
// is compensated at the service layer instead.
//
// Listing order is insertion order, kept in a separate slice because Go maps
// do not iterate deterministically.

// memUserRepo is the in-memory implementation of UserRepo.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

// NewMemoryUserRepo constructs an empty in-memory UserRepo.
func NewMemoryUserRepo() UserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrConflict)
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Linear scan is acceptable at this system's scale.
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", domain.ErrNotFound)
}

// memTripRepo is the in-memory implementation of TripRepo.
type memTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]domain.Trip
	order []uuid.UUID
}

// NewMemoryTripRepo constructs an empty in-memory TripRepo.
func NewMemoryTripRepo() TripRepo {
	return &memTripRepo{trips: make(map[uuid.UUID]domain.Trip)}
}

func (r *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip.ID = uuid.New()
	trip.CreatedAt = time.Now().UTC()
	r.trips[trip.ID] = trip
	r.order = append(r.order, trip.ID)
	return trip, nil
}

func (r *memTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}
	return t, nil
}

func (r *memTripRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var trips []domain.Trip
	for _, id := range r.order {
		if t, ok := r.trips[id]; ok && t.UserID == userID {
			trips = append(trips, t)
		}
	}
	return trips, nil
}

func (r *memTripRepo) Update(_ context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	t = patch.Apply(t)
	r.trips[id] = t
	return t, nil
}

func (r *memTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.trips, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// memCartItemRepo is the in-memory implementation of CartItemRepo.
type memCartItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]domain.CartItem
	order []uuid.UUID
}

// NewMemoryCartItemRepo constructs an empty in-memory CartItemRepo.
func NewMemoryCartItemRepo() CartItemRepo {
	return &memCartItemRepo{items: make(map[uuid.UUID]domain.CartItem)}
}

func (r *memCartItemRepo) Create(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.New()
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *memCartItemRepo) GetByID(_ context.Context, id uuid.UUID) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("repo.CartItemRepo.GetByID: %w", domain.ErrNotFound)
	}
	return it, nil
}

func (r *memCartItemRepo) ListByTrip(_ context.Context, tripID uuid.UUID) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []domain.CartItem
	for _, id := range r.order {
		if it, ok := r.items[id]; ok && it.TripID != nil && *it.TripID == tripID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *memCartItemRepo) Update(_ context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return domain.CartItem{}, fmt.Errorf("repo.CartItemRepo.Update: %w", domain.ErrNotFound)
	}
	it = patch.Apply(it)
	r.items[id] = it
	return it, nil
}

func (r *memCartItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("repo.CartItemRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memCartItemRepo) DeleteByTrip(_ context.Context, tripID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	kept := r.order[:0]
	for _, id := range r.order {
		it := r.items[id]
		if it.TripID != nil && *it.TripID == tripID {
			delete(r.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed, nil
}
