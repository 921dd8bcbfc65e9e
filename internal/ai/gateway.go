package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tripdeck/backend/internal/domain"
)

// Gateway translates structured application requests into prompts and model
// responses back into typed payloads, with a defined failure policy per
// operation: availability-first operations (vibe suggestion, chat) fall back
// to canned defaults and never return an error; correctness-first operations
// return domain.ErrGeneration, because a fabricated itinerary or budget
// analysis would be misleading.
type Gateway struct {
	completer Completer
	log       *slog.Logger
}

// NewGateway constructs a Gateway over the given completer.
func NewGateway(c Completer, log *slog.Logger) *Gateway {
	return &Gateway{completer: c, log: log}
}

// ItineraryRequest carries the intake parameters for itinerary generation.
// Validation happens at the service boundary; the gateway only prompts.
type ItineraryRequest struct {
	Origin      string
	Destination string
	StartDate   string
	EndDate     string
	Theme       string
	Budget      int
}

// defaultVibes is the fallback theme list used when the provider is
// unreachable or returns garbage. Generic on purpose.
var defaultVibes = []string{
	"Beach & Chill",
	"Culture & Heritage",
	"Food & Nightlife",
	"Adventure & Outdoors",
	"Wellness & Slow Travel",
	"Family Fun",
}

const chatFallback = "Sorry, I couldn't reach the travel assistant just now. Please try again in a moment."

// SuggestVibes returns up to six theme strings for the destination.
// It never fails: on any provider or parse error it logs and returns the
// built-in list.
func (g *Gateway) SuggestVibes(ctx context.Context, destination string) []string {
	system := "You are a travel-style classifier. Respond with a JSON array of exactly 6 short vibe labels (2-4 words each) that suit trips to the given destination. No prose, JSON only."
	raw, err := g.completer.Complete(ctx, system, fmt.Sprintf("Destination: %s", destination))
	if err != nil {
		g.log.Warn("vibe suggestion failed, using defaults", "destination", destination, "error", err)
		return defaultVibes
	}

	payload := extractJSONArray(raw)
	var vibes []string
	if payload == "" || json.Unmarshal([]byte(payload), &vibes) != nil || len(vibes) == 0 {
		g.log.Warn("vibe suggestion returned unparseable payload, using defaults", "destination", destination)
		return defaultVibes
	}
	return vibes
}

// GenerateItinerary asks the provider for a day-by-day plan.
// Unlike SuggestVibes this path has no silent fallback: a failure surfaces
// as domain.ErrGeneration for the caller to show to the user.
func (g *Gateway) GenerateItinerary(ctx context.Context, req ItineraryRequest) (domain.TripPlan, error) {
	system := `You are a trip planner. Respond with JSON only, in this shape:
{"title": string, "days": [{"day": int, "theme": string, "summary": string,
"recommendations": [{"kind": "flight"|"hotel"|"activity", "title": string,
"details": string, "provider": string, "price": int}]}]}
Prices are integers in the trip's currency minor units. Include at least one
flight and one hotel recommendation across the trip. Stay within the budget.`

	user := fmt.Sprintf(
		"Plan a trip from %s to %s, %s to %s, theme %q, total budget %d.",
		req.Origin, req.Destination, req.StartDate, req.EndDate, req.Theme, req.Budget)

	raw, err := g.completer.Complete(ctx, system, user)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("ai.Gateway.GenerateItinerary: %w: %w", domain.ErrGeneration, err)
	}

	plan, err := decodeObject[domain.TripPlan](raw)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("ai.Gateway.GenerateItinerary: %w", err)
	}
	if strings.TrimSpace(plan.Title) == "" || len(plan.Days) == 0 {
		return domain.TripPlan{}, fmt.Errorf("ai.Gateway.GenerateItinerary: %w: plan missing title or days", domain.ErrGeneration)
	}
	return plan, nil
}

// Chat produces a free-form assistant reply, optionally grounded in the
// trip's current state. Never fails; returns an apologetic fallback instead.
func (g *Gateway) Chat(ctx context.Context, message string, trip *domain.Trip) string {
	system := "You are a friendly travel assistant. Use the trip context when present, keep answers concise and grounded in the provided data."
	if trip != nil {
		system += "\n\nCurrent trip context:\n" + tripContext(*trip)
	}

	raw, err := g.completer.Complete(ctx, system, message)
	if err != nil || strings.TrimSpace(raw) == "" {
		g.log.Warn("chat failed, using fallback reply", "error", err)
		return chatFallback
	}
	return strings.TrimSpace(raw)
}

// tripContext renders a trip as an indented JSON block for prompt grounding.
func tripContext(trip domain.Trip) string {
	b, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeObject parses the first JSON object in a model response into T.
// Parse-don't-validate: any malformed payload becomes domain.ErrGeneration
// rather than partially-typed data leaking out of this package.
func decodeObject[T any](raw string) (T, error) {
	var v T
	payload := extractJSON(raw)
	if payload == "" {
		return v, fmt.Errorf("%w: no JSON object in response", domain.ErrGeneration)
	}
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return v, fmt.Errorf("%w: decode response: %v", domain.ErrGeneration, err)
	}
	return v, nil
}
