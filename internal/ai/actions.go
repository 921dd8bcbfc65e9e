package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tripdeck/backend/internal/domain"
)

// DetectAction classifies a chat message: either no travel-modification
// intent (the Message field carries a conversational reply) or a named
// action with structured parameters and a confirmation requirement.
func (g *Gateway) DetectAction(ctx context.Context, message string, trip *domain.Trip) (domain.ActionDetection, error) {
	system := `You classify travel chat messages. Respond with JSON only:
{"is_action": bool, "action": string, "params": object, "message": string,
"requires_confirmation": bool}
When the user asks to change their trip (swap activities, change dates,
reduce cost, add days, change hotel class), set is_action true, name the
action in snake_case, extract its parameters, write a short human-readable
confirmation message, and set requires_confirmation true for anything that
rewrites the itinerary. Otherwise set is_action false and put a normal
conversational reply in "message".`
	if trip != nil {
		system += "\n\nCurrent trip context:\n" + tripContext(*trip)
	}

	raw, err := g.completer.Complete(ctx, system, message)
	if err != nil {
		return domain.ActionDetection{}, fmt.Errorf("ai.Gateway.DetectAction: %w: %w", domain.ErrGeneration, err)
	}

	det, err := decodeObject[domain.ActionDetection](raw)
	if err != nil {
		return domain.ActionDetection{}, fmt.Errorf("ai.Gateway.DetectAction: %w", err)
	}
	if det.IsAction && det.Action == "" {
		return domain.ActionDetection{}, fmt.Errorf("ai.Gateway.DetectAction: %w: action flagged but unnamed", domain.ErrGeneration)
	}
	return det, nil
}

// ExecuteAction asks the provider to rewrite the trip according to the named
// action and returns the new plan plus human-readable change descriptions.
func (g *Gateway) ExecuteAction(ctx context.Context, action string, params map[string]any, trip domain.Trip) (domain.ActionResult, error) {
	system := `You apply a modification to an existing trip itinerary. Respond
with JSON only:
{"plan": {"title": string, "days": [{"day": int, "theme": string,
"summary": string, "recommendations": [{"kind": string, "title": string,
"details": string, "provider": string, "price": int}]}]},
"changes": [string], "suggestion": string}
"plan" is the full rewritten itinerary, "changes" lists what changed in plain
language, "suggestion" is one optional upsell idea (empty string if none).`

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return domain.ActionResult{}, fmt.Errorf("ai.Gateway.ExecuteAction: marshal params: %w", err)
	}

	user := fmt.Sprintf("Action: %s\nParameters: %s\n\nCurrent trip:\n%s",
		action, paramsJSON, tripContext(trip))

	raw, err := g.completer.Complete(ctx, system, user)
	if err != nil {
		return domain.ActionResult{}, fmt.Errorf("ai.Gateway.ExecuteAction: %w: %w", domain.ErrGeneration, err)
	}

	result, err := decodeObject[domain.ActionResult](raw)
	if err != nil {
		return domain.ActionResult{}, fmt.Errorf("ai.Gateway.ExecuteAction: %w", err)
	}
	if len(result.Plan.Days) == 0 {
		return domain.ActionResult{}, fmt.Errorf("ai.Gateway.ExecuteAction: %w: rewritten plan has no days", domain.ErrGeneration)
	}
	return result, nil
}
