package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tripdeck/backend/internal/domain"
)

// OptimizeBudget asks the provider for a spend breakdown, cheaper swaps,
// tiered alternative packages, and hidden-gem suggestions for the trip.
// The current cart is part of the prompt so swaps reference real items.
func (g *Gateway) OptimizeBudget(ctx context.Context, trip domain.Trip, items []domain.CartItem) (domain.BudgetOptimization, error) {
	system := `You are a travel budget analyst. Respond with JSON only:
{"by_category": {string: int}, "swaps": [{"title": string, "description":
string, "current_item": string, "suggested_item": string, "savings": int}],
"packages": {"budget": {"total_cost": int, "description": string},
"standard": {"total_cost": int, "description": string},
"luxury": {"total_cost": int, "description": string}},
"hidden_gems": [{"title": string, "description": string, "price": int,
"category": string}]}
All amounts are integers in the trip's currency minor units.`

	cart, err := json.Marshal(items)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("ai.Gateway.OptimizeBudget: marshal cart: %w", err)
	}

	user := fmt.Sprintf("Trip:\n%s\n\nCart items:\n%s", tripContext(trip), cart)

	raw, err := g.completer.Complete(ctx, system, user)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("ai.Gateway.OptimizeBudget: %w: %w", domain.ErrGeneration, err)
	}

	opt, err := decodeObject[domain.BudgetOptimization](raw)
	if err != nil {
		return domain.BudgetOptimization{}, fmt.Errorf("ai.Gateway.OptimizeBudget: %w", err)
	}
	return opt, nil
}

// Recommendations asks for activity suggestions scoped to the whole trip or,
// when day is non-nil, to that day only.
func (g *Gateway) Recommendations(ctx context.Context, trip domain.Trip, day *int) (domain.TripRecommendations, error) {
	system := `You recommend trip activities. Respond with JSON only:
{"suggestions": [{"title": string, "details": string, "price": int,
"reasoning": string, "day": int|null}],
"popular": [{"title": string, "adoption_percent": int}],
"sequences": [{"title": string, "activities": [string]}],
"insights": [{"type": "weather"|"event"|"tip", "text": string}]}`

	user := "Trip:\n" + tripContext(trip)
	if day != nil {
		user += fmt.Sprintf("\n\nScope suggestions to day %d only.", *day)
	}

	raw, err := g.completer.Complete(ctx, system, user)
	if err != nil {
		return domain.TripRecommendations{}, fmt.Errorf("ai.Gateway.Recommendations: %w: %w", domain.ErrGeneration, err)
	}

	recs, err := decodeObject[domain.TripRecommendations](raw)
	if err != nil {
		return domain.TripRecommendations{}, fmt.Errorf("ai.Gateway.Recommendations: %w", err)
	}
	return recs, nil
}

// ProfileSummary is the condensed travel history the insights prompt is
// built from. The service assembles it; the gateway only renders it.
type ProfileSummary struct {
	Username     string   `json:"username"`
	TripCount    int      `json:"trip_count"`
	Destinations []string `json:"destinations"`
	Themes       []string `json:"themes"`
	TotalBudget  int      `json:"total_budget"`
}

// UserInsights derives a travel personality, insight cards, achievement
// badges, and destination recommendations from a user's profile summary.
func (g *Gateway) UserInsights(ctx context.Context, profile ProfileSummary) (domain.UserInsights, error) {
	system := `You profile travelers from their trip history. Respond with
JSON only:
{"personality": string, "traits": [string], "cards": [{"title": string,
"body": string}], "badges": [{"name": string, "unlocked": bool}],
"destinations": [{"destination": string, "reason": string,
"estimated_budget": int}]}`

	summary, err := json.Marshal(profile)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("ai.Gateway.UserInsights: marshal profile: %w", err)
	}

	raw, err := g.completer.Complete(ctx, system, string(summary))
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("ai.Gateway.UserInsights: %w: %w", domain.ErrGeneration, err)
	}

	insights, err := decodeObject[domain.UserInsights](raw)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("ai.Gateway.UserInsights: %w", err)
	}
	return insights, nil
}
