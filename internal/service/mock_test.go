package service_test

import (
	"context"

	"github.com/tripdeck/backend/internal/ai"
	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/service"
)

// mockGateway implements service.Gateway with pluggable function fields so
// each test scripts exactly the provider behaviour it needs. Unset fields
// return zero values.
type mockGateway struct {
	suggestVibesFn      func(ctx context.Context, destination string) []string
	generateItineraryFn func(ctx context.Context, req ai.ItineraryRequest) (domain.TripPlan, error)
	chatFn              func(ctx context.Context, message string, trip *domain.Trip) string
	detectActionFn      func(ctx context.Context, message string, trip *domain.Trip) (domain.ActionDetection, error)
	executeActionFn     func(ctx context.Context, action string, params map[string]any, trip domain.Trip) (domain.ActionResult, error)
	optimizeBudgetFn    func(ctx context.Context, trip domain.Trip, items []domain.CartItem) (domain.BudgetOptimization, error)
	recommendationsFn   func(ctx context.Context, trip domain.Trip, day *int) (domain.TripRecommendations, error)
	userInsightsFn      func(ctx context.Context, profile ai.ProfileSummary) (domain.UserInsights, error)
}

var _ service.Gateway = (*mockGateway)(nil)

func (m *mockGateway) SuggestVibes(ctx context.Context, destination string) []string {
	if m.suggestVibesFn == nil {
		return nil
	}
	return m.suggestVibesFn(ctx, destination)
}

func (m *mockGateway) GenerateItinerary(ctx context.Context, req ai.ItineraryRequest) (domain.TripPlan, error) {
	if m.generateItineraryFn == nil {
		return domain.TripPlan{}, nil
	}
	return m.generateItineraryFn(ctx, req)
}

func (m *mockGateway) Chat(ctx context.Context, message string, trip *domain.Trip) string {
	if m.chatFn == nil {
		return ""
	}
	return m.chatFn(ctx, message, trip)
}

func (m *mockGateway) DetectAction(ctx context.Context, message string, trip *domain.Trip) (domain.ActionDetection, error) {
	if m.detectActionFn == nil {
		return domain.ActionDetection{}, nil
	}
	return m.detectActionFn(ctx, message, trip)
}

func (m *mockGateway) ExecuteAction(ctx context.Context, action string, params map[string]any, trip domain.Trip) (domain.ActionResult, error) {
	if m.executeActionFn == nil {
		return domain.ActionResult{}, nil
	}
	return m.executeActionFn(ctx, action, params, trip)
}

func (m *mockGateway) OptimizeBudget(ctx context.Context, trip domain.Trip, items []domain.CartItem) (domain.BudgetOptimization, error) {
	if m.optimizeBudgetFn == nil {
		return domain.BudgetOptimization{}, nil
	}
	return m.optimizeBudgetFn(ctx, trip, items)
}

func (m *mockGateway) Recommendations(ctx context.Context, trip domain.Trip, day *int) (domain.TripRecommendations, error) {
	if m.recommendationsFn == nil {
		return domain.TripRecommendations{}, nil
	}
	return m.recommendationsFn(ctx, trip, day)
}

func (m *mockGateway) UserInsights(ctx context.Context, profile ai.ProfileSummary) (domain.UserInsights, error) {
	if m.userInsightsFn == nil {
		return domain.UserInsights{}, nil
	}
	return m.userInsightsFn(ctx, profile)
}
