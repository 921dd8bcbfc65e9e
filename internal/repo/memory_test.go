package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/repo"
)

// ---- user repo tests ----

// TestMemoryUserRepo_CreateAndGet verifies the round trip by ID and by
// username, and that Create assigns the identity fields.
func TestMemoryUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := repo.NewMemoryUserRepo()

	created, err := users.Create(ctx, domain.User{Username: "asha", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := users.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

// TestMemoryUserRepo_DuplicateUsername verifies that a second account with
// the same username is rejected with ErrConflict.
func TestMemoryUserRepo_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	users := repo.NewMemoryUserRepo()

	_, err := users.Create(ctx, domain.User{Username: "asha", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = users.Create(ctx, domain.User{Username: "asha", PasswordHash: "h2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// TestMemoryUserRepo_GetMissing verifies ErrNotFound on both lookups.
func TestMemoryUserRepo_GetMissing(t *testing.T) {
	ctx := context.Background()
	users := repo.NewMemoryUserRepo()

	_, err := users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- trip repo tests ----

// TestMemoryTripRepo_ListByUser_InsertionOrder verifies that listing returns
// only the user's trips, oldest first.
func TestMemoryTripRepo_ListByUser_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	trips := repo.NewMemoryTripRepo()

	userID := uuid.New()
	otherID := uuid.New()

	first, err := trips.Create(ctx, domain.Trip{UserID: userID, Title: "Goa"})
	require.NoError(t, err)
	_, err = trips.Create(ctx, domain.Trip{UserID: otherID, Title: "Leh"})
	require.NoError(t, err)
	second, err := trips.Create(ctx, domain.Trip{UserID: userID, Title: "Varkala"})
	require.NoError(t, err)

	got, err := trips.ListByUser(ctx, userID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID},
		lo.Map(got, func(tr domain.Trip, _ int) uuid.UUID { return tr.ID }))
}

// TestMemoryTripRepo_Update_ShallowMerge verifies that a patch replaces only
// the set fields and that Days is replaced whole.
func TestMemoryTripRepo_Update_ShallowMerge(t *testing.T) {
	ctx := context.Background()
	trips := repo.NewMemoryTripRepo()

	created, err := trips.Create(ctx, domain.Trip{
		Title: "Goa", Theme: "Beach & Chill", Budget: 50000,
		Days: []domain.TripDay{{Day: 1, Theme: "Arrival"}},
	})
	require.NoError(t, err)

	newTitle := "Goa, rebooked"
	newDays := []domain.TripDay{{Day: 1, Theme: "Arrival"}, {Day: 2, Theme: "Beaches"}}
	updated, err := trips.Update(ctx, created.ID, domain.TripPatch{Title: &newTitle, Days: &newDays})
	require.NoError(t, err)

	assert.Equal(t, "Goa, rebooked", updated.Title)
	assert.Len(t, updated.Days, 2)
	// Untouched fields survive.
	assert.Equal(t, "Beach & Chill", updated.Theme)
	assert.Equal(t, 50000, updated.Budget)
}

// TestMemoryTripRepo_Update_Missing verifies that updating an unknown trip
// returns ErrNotFound and does not create anything.
func TestMemoryTripRepo_Update_Missing(t *testing.T) {
	ctx := context.Background()
	trips := repo.NewMemoryTripRepo()

	title := "ghost"
	id := uuid.New()
	_, err := trips.Update(ctx, id, domain.TripPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = trips.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestMemoryTripRepo_Delete verifies removal and not-found on repeat.
func TestMemoryTripRepo_Delete(t *testing.T) {
	ctx := context.Background()
	trips := repo.NewMemoryTripRepo()

	created, err := trips.Create(ctx, domain.Trip{Title: "Goa"})
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, created.ID))
	assert.ErrorIs(t, trips.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = trips.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- cart item repo tests ----

// TestMemoryCartItemRepo_ListByTrip_Scoping verifies that listing filters to
// the given trip, skips orphaned items, and keeps insertion order.
func TestMemoryCartItemRepo_ListByTrip_Scoping(t *testing.T) {
	ctx := context.Background()
	items := repo.NewMemoryCartItemRepo()

	tripID := uuid.New()
	otherTripID := uuid.New()

	a, err := items.Create(ctx, domain.CartItem{TripID: &tripID, Kind: "flight", Title: "BOM-GOI", Price: 8000, Included: true})
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.CartItem{TripID: &otherTripID, Kind: "hotel", Title: "Elsewhere", Price: 1, Included: true})
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.CartItem{TripID: nil, Kind: "activity", Title: "Orphan", Price: 1, Included: true})
	require.NoError(t, err)
	b, err := items.Create(ctx, domain.CartItem{TripID: &tripID, Kind: "hotel", Title: "Resort", Price: 30000, Included: true})
	require.NoError(t, err)

	got, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

// TestMemoryCartItemRepo_Update_IncludedToggle verifies the most common
// patch, flipping Included off, leaves the rest of the item alone.
func TestMemoryCartItemRepo_Update_IncludedToggle(t *testing.T) {
	ctx := context.Background()
	items := repo.NewMemoryCartItemRepo()

	tripID := uuid.New()
	created, err := items.Create(ctx, domain.CartItem{TripID: &tripID, Kind: "activity", Title: "Parasailing", Price: 2500, Included: true})
	require.NoError(t, err)

	off := false
	updated, err := items.Update(ctx, created.ID, domain.CartItemPatch{Included: &off})
	require.NoError(t, err)

	assert.False(t, updated.Included)
	assert.Equal(t, "Parasailing", updated.Title)
	assert.Equal(t, 2500, updated.Price)
}

// TestMemoryCartItemRepo_Delete verifies removal and not-found on repeat.
func TestMemoryCartItemRepo_Delete(t *testing.T) {
	ctx := context.Background()
	items := repo.NewMemoryCartItemRepo()

	tripID := uuid.New()
	created, err := items.Create(ctx, domain.CartItem{TripID: &tripID, Title: "Parasailing", Price: 2500})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, created.ID))
	assert.ErrorIs(t, items.Delete(ctx, created.ID), domain.ErrNotFound)
}

// TestMemoryCartItemRepo_DeleteByTrip verifies bulk removal scoped to one
// trip: the other trip's items and orphans survive.
func TestMemoryCartItemRepo_DeleteByTrip(t *testing.T) {
	ctx := context.Background()
	items := repo.NewMemoryCartItemRepo()

	tripID := uuid.New()
	otherTripID := uuid.New()

	_, err := items.Create(ctx, domain.CartItem{TripID: &tripID, Title: "A", Price: 1})
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.CartItem{TripID: &tripID, Title: "B", Price: 1})
	require.NoError(t, err)
	survivor, err := items.Create(ctx, domain.CartItem{TripID: &otherTripID, Title: "C", Price: 1})
	require.NoError(t, err)

	removed, err := items.DeleteByTrip(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	gone, err := items.ListByTrip(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := items.ListByTrip(ctx, otherTripID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, survivor.ID, kept[0].ID)

	// A second bulk delete is a no-op, not an error.
	removed, err = items.DeleteByTrip(ctx, tripID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
