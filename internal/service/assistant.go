package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/repo"
)

// optimizeTTL bounds how long a trip's budget analysis is served from cache.
// The entry is dropped early whenever a modification rewrites the trip.
const optimizeTTL = 5 * time.Minute

// pendingAction is a detected modification waiting for the user's explicit
// confirmation. One per trip; a new detection replaces the old one
// (last write wins, the accepted race boundary of this design).
type pendingAction struct {
	Action  string
	Params  map[string]any
	Message string
}

// ModifyRequest carries the confirmation step of the conversational flow.
// Confirm=false rejects the pending action. An empty Action executes the
// pending one; a non-empty Action executes as supplied (used for actions
// that never required confirmation).
type ModifyRequest struct {
	Confirm *bool          `json:"confirm,omitempty"`
	Action  string         `json:"action,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// ModifyOutcome is the response contract of the modify operation.
type ModifyOutcome struct {
	Trip       domain.Trip `json:"trip"`
	Changes    []string    `json:"changes"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// AssistantService drives the conversational trip-modification flow:
//
//	Idle → Classifying → RespondingOnly            (no actionable intent)
//	                   → AwaitingConfirmation       (action needs a yes)
//	                   → Executing → Idle           (confirmed or auto)
//
// Classification happens in DetectAction; AwaitingConfirmation is the
// pending map below; Modify is the confirm/reject/execute edge. Sessions
// are keyed by trip, independent of each other, with no cross-session
// locking beyond the map's own mutex.
type AssistantService struct {
	trips   repo.TripRepo
	carts   repo.CartItemRepo
	gateway Gateway
	cache   *gocache.Cache

	mu      sync.Mutex
	pending map[uuid.UUID]pendingAction
}

// NewAssistantService constructs an AssistantService backed by the provided
// repos and gateway.
func NewAssistantService(trips repo.TripRepo, carts repo.CartItemRepo, gateway Gateway) *AssistantService {
	return &AssistantService{
		trips:   trips,
		carts:   carts,
		gateway: gateway,
		cache:   gocache.New(optimizeTTL, 2*optimizeTTL),
		pending: make(map[uuid.UUID]pendingAction),
	}
}

// Chat returns a free-form assistant reply, grounded in the trip when a trip
// id is supplied. The gateway never fails this path; only a missing message
// or unknown trip is an error.
func (s *AssistantService) Chat(ctx context.Context, message string, tripID *uuid.UUID) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	trip, err := s.loadOptionalTrip(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.AssistantService.Chat: %w", err)
	}

	return s.gateway.Chat(ctx, message, trip), nil
}

// DetectAction classifies a message. When the classification names an action
// that requires confirmation and a trip id is present, the action is parked
// as pending for that trip until Modify confirms or rejects it; the trip
// itself is not touched here.
func (s *AssistantService) DetectAction(ctx context.Context, message string, tripID *uuid.UUID) (domain.ActionDetection, error) {
	if strings.TrimSpace(message) == "" {
		return domain.ActionDetection{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	trip, err := s.loadOptionalTrip(ctx, tripID)
	if err != nil {
		return domain.ActionDetection{}, fmt.Errorf("service.AssistantService.DetectAction: %w", err)
	}

	det, err := s.gateway.DetectAction(ctx, message, trip)
	if err != nil {
		return domain.ActionDetection{}, fmt.Errorf("service.AssistantService.DetectAction: %w", err)
	}

	if det.IsAction && det.RequiresConfirmation && tripID != nil {
		s.mu.Lock()
		s.pending[*tripID] = pendingAction{
			Action:  det.Action,
			Params:  det.Params,
			Message: det.Message,
		}
		s.mu.Unlock()
	}

	return det, nil
}

// Modify is the Executing edge of the state machine. Rejection discards the
// pending action and leaves the trip untouched. Confirmation (or a supplied
// action that never required one) executes via the gateway, persists the
// rewritten plan, and reconciles the cart against it.
func (s *AssistantService) Modify(ctx context.Context, tripID uuid.UUID, req ModifyRequest) (ModifyOutcome, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return ModifyOutcome{}, fmt.Errorf("service.AssistantService.Modify: %w", err)
	}

	if req.Confirm != nil && !*req.Confirm {
		s.clearPending(tripID)
		return ModifyOutcome{Trip: trip, Changes: []string{}}, nil
	}

	action, params := req.Action, req.Params
	if action == "" {
		s.mu.Lock()
		p, ok := s.pending[tripID]
		s.mu.Unlock()
		if !ok {
			return ModifyOutcome{}, fmt.Errorf("%w: no action to execute", domain.ErrValidation)
		}
		action, params = p.Action, p.Params
	}

	result, err := s.gateway.ExecuteAction(ctx, action, params, trip)
	if err != nil {
		// The pending action stays parked so the user can retry or reject.
		return ModifyOutcome{}, fmt.Errorf("service.AssistantService.Modify: %w", err)
	}

	updated, err := s.trips.Update(ctx, tripID, domain.TripPatch{
		Title: &result.Plan.Title,
		Days:  &result.Plan.Days,
	})
	if err != nil {
		return ModifyOutcome{}, fmt.Errorf("service.AssistantService.Modify: %w", err)
	}

	if err := s.reconcileCart(ctx, tripID, result.Plan.Days); err != nil {
		return ModifyOutcome{}, fmt.Errorf("service.AssistantService.Modify: %w", err)
	}

	s.clearPending(tripID)
	s.cache.Delete(tripID.String())

	changes := result.Changes
	if changes == nil {
		changes = []string{}
	}
	return ModifyOutcome{Trip: updated, Changes: changes, Suggestion: result.Suggestion}, nil
}

// OptimizeBudget returns the provider's budget analysis for the trip,
// cached per trip until a modification invalidates it.
func (s *AssistantService) OptimizeBudget(ctx context.Context, tripID uuid.UUID) (domain.BudgetOptimization, error) {
	if cached, ok := s.cache.Get(tripID.String()); ok {
		return cached.(domain.BudgetOptimization), nil
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("service.AssistantService.OptimizeBudget: %w", err)
	}
	items, err := s.carts.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("service.AssistantService.OptimizeBudget: %w", err)
	}

	opt, err := s.gateway.OptimizeBudget(ctx, trip, items)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("service.AssistantService.OptimizeBudget: %w", err)
	}

	s.cache.Set(tripID.String(), opt, gocache.DefaultExpiration)
	return opt, nil
}

// Recommendations returns day- or trip-scoped suggestions for the trip.
func (s *AssistantService) Recommendations(ctx context.Context, tripID uuid.UUID, day *int) (domain.TripRecommendations, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripRecommendations{}, fmt.Errorf("service.AssistantService.Recommendations: %w", err)
	}

	recs, err := s.gateway.Recommendations(ctx, trip, day)
	if err != nil {
		return domain.TripRecommendations{}, fmt.Errorf("service.AssistantService.Recommendations: %w", err)
	}
	return recs, nil
}

// reconcileCart replaces the trip's cart items with ones derived from the
// rewritten plan, so the cart never holds stale line items after a
// modification. Items the user had excluded stay excluded when the same
// (kind, title) pair survives the rewrite.
func (s *AssistantService) reconcileCart(ctx context.Context, tripID uuid.UUID, days []domain.TripDay) error {
	old, err := s.carts.ListByTrip(ctx, tripID)
	if err != nil {
		return err
	}

	excluded := make(map[string]bool)
	for _, it := range old {
		if !it.Included {
			excluded[it.Kind+"|"+it.Title] = true
		}
	}

	if _, err := s.carts.DeleteByTrip(ctx, tripID); err != nil {
		return err
	}
	return createCartItems(ctx, s.carts, tripID, days, excluded)
}

// loadOptionalTrip fetches the trip when an id is present; nil id means no
// trip context.
func (s *AssistantService) loadOptionalTrip(ctx context.Context, tripID *uuid.UUID) (*domain.Trip, error) {
	if tripID == nil {
		return nil, nil
	}
	trip, err := s.trips.GetByID(ctx, *tripID)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *AssistantService) clearPending(tripID uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, tripID)
	s.mu.Unlock()
}
