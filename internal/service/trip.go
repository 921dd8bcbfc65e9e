package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/tripdeck/backend/internal/ai"
	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/repo"
)

// vibesTTL bounds how long suggested vibes for a destination are served from
// cache. Vibes are generic enough that a long window is harmless.
const vibesTTL = 30 * time.Minute

// GenerateRequest carries the validated intake for trip generation.
type GenerateRequest struct {
	UserID    uuid.UUID
	From      string
	To        string
	StartDate string
	EndDate   string
	Theme     string
	Budget    int
}

// GenerateResult pairs the persisted trip with the raw plan the provider
// returned, matching the {trip, plan} response contract.
type GenerateResult struct {
	Trip domain.Trip     `json:"trip"`
	Plan domain.TripPlan `json:"plan"`
}

// TripService implements itinerary generation and trip reads.
type TripService struct {
	users   repo.UserRepo
	trips   repo.TripRepo
	carts   repo.CartItemRepo
	gateway Gateway
	cache   *gocache.Cache
}

// NewTripService constructs a TripService backed by the provided repos and gateway.
func NewTripService(users repo.UserRepo, trips repo.TripRepo, carts repo.CartItemRepo, gateway Gateway) *TripService {
	return &TripService{
		users:   users,
		trips:   trips,
		carts:   carts,
		gateway: gateway,
		cache:   gocache.New(vibesTTL, 2*vibesTTL),
	}
}

// SuggestVibes returns theme suggestions for a destination, cached per
// destination. Never fails: the gateway falls back to a built-in list.
func (s *TripService) SuggestVibes(ctx context.Context, destination string) ([]string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}

	key := strings.ToLower(destination)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]string), nil
	}

	vibes := s.gateway.SuggestVibes(ctx, destination)
	s.cache.Set(key, vibes, gocache.DefaultExpiration)
	return vibes, nil
}

// Generate validates the intake, asks the gateway for an itinerary, persists
// the trip, and fans out one cart item per recommendation per day.
//
// The trip+cart batch is not atomic; when a cart insert fails mid-loop the
// partial state is compensated away (items then trip deleted) and the error
// surfaces, so a retry regenerates from scratch instead of leaving a trip
// with fewer items than recommendations.
func (s *TripService) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return GenerateResult{}, err
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return GenerateResult{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	plan, err := s.gateway.GenerateItinerary(ctx, ai.ItineraryRequest{
		Origin:      req.From,
		Destination: req.To,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Theme:       req.Theme,
		Budget:      req.Budget,
	})
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	trip, err := s.trips.Create(ctx, domain.Trip{
		UserID:      req.UserID,
		Title:       plan.Title,
		Origin:      req.From,
		Destination: req.To,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Theme:       req.Theme,
		Budget:      req.Budget,
		Days:        plan.Days,
	})
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	if err := createCartItems(ctx, s.carts, trip.ID, plan.Days, nil); err != nil {
		// Compensate: remove the partial batch and the trip itself.
		if _, cerr := s.carts.DeleteByTrip(ctx, trip.ID); cerr == nil {
			_ = s.trips.Delete(ctx, trip.ID)
		}
		return GenerateResult{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	return GenerateResult{Trip: trip, Plan: plan}, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListByUser returns all trips owned by the given user, insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// createCartItems inserts one cart item per recommendation per day,
// defaulting Included to true. Shared with the assistant's cart
// reconciliation, which passes the (kind|title) keys the user had excluded
// so their choices survive a rewrite; nil means everything starts included.
func createCartItems(ctx context.Context, carts repo.CartItemRepo, tripID uuid.UUID, days []domain.TripDay, excluded map[string]bool) error {
	items := lo.FlatMap(days, func(d domain.TripDay, _ int) []domain.CartItem {
		day := d.Day
		return lo.Map(d.Recommendations, func(r domain.Recommendation, _ int) domain.CartItem {
			item := domain.CartItem{
				TripID:    &tripID,
				Kind:      r.Kind,
				Title:     r.Title,
				Details:   r.Details,
				Price:     r.Price,
				Included:  !excluded[r.Kind+"|"+r.Title],
				DayNumber: &day,
			}
			if r.Provider != "" {
				provider := r.Provider
				item.Provider = &provider
			}
			return item
		})
	})

	for _, item := range items {
		if _, err := carts.Create(ctx, item); err != nil {
			return fmt.Errorf("create cart item %q: %w", item.Title, err)
		}
	}
	return nil
}

// validateGenerateRequest enforces the intake contract: all text fields
// non-empty and the budget inside [MinBudget, MaxBudget]. Dates are strings
// by contract and are not validated as calendar dates.
func validateGenerateRequest(req GenerateRequest) error {
	for field, v := range map[string]string{
		"from":      req.From,
		"to":        req.To,
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
		"theme":     req.Theme,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
		}
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if req.Budget < domain.MinBudget || req.Budget > domain.MaxBudget {
		return fmt.Errorf("%w: budget must be between %d and %d", domain.ErrValidation, domain.MinBudget, domain.MaxBudget)
	}
	return nil
}
