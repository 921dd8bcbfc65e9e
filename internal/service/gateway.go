// Package service contains the business logic for the trip-planning API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// gateway calls. No storage access or prompt text lives here; services
// depend on the repo interfaces and the Gateway interface below.
package service

import (
	"context"

	"github.com/tripdeck/backend/internal/ai"
	"github.com/tripdeck/backend/internal/domain"
)

// Gateway defines the generative-provider operations the services depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets service
// tests inject a mock without touching the provider client. *ai.Gateway is
// the production implementation.
type Gateway interface {
	SuggestVibes(ctx context.Context, destination string) []string
	GenerateItinerary(ctx context.Context, req ai.ItineraryRequest) (domain.TripPlan, error)
	Chat(ctx context.Context, message string, trip *domain.Trip) string
	DetectAction(ctx context.Context, message string, trip *domain.Trip) (domain.ActionDetection, error)
	ExecuteAction(ctx context.Context, action string, params map[string]any, trip domain.Trip) (domain.ActionResult, error)
	OptimizeBudget(ctx context.Context, trip domain.Trip, items []domain.CartItem) (domain.BudgetOptimization, error)
	Recommendations(ctx context.Context, trip domain.Trip, day *int) (domain.TripRecommendations, error)
	UserInsights(ctx context.Context, profile ai.ProfileSummary) (domain.UserInsights, error)
}

// compile-time check: the production gateway satisfies the interface.
var _ Gateway = (*ai.Gateway)(nil)
