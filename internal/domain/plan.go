package domain

// TripPlan is the structured itinerary produced by the generative provider.
// It is the same shape whether it comes from initial generation or from
// executing a modification action.
type TripPlan struct {
	Title string    `json:"title"`
	Days  []TripDay `json:"days"`
}

// ActionDetection is the classification of a chat message: either no
// travel-modification intent (IsAction false, Response carries the
// conversational reply) or a detected action with structured parameters.
type ActionDetection struct {
	IsAction             bool           `json:"is_action"`
	Action               string         `json:"action,omitempty"`
	Params               map[string]any `json:"params,omitempty"`
	Message              string         `json:"message"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
}

// ActionResult is the outcome of executing a modification action: the
// rewritten plan, human-readable change descriptions, and an optional
// upsell suggestion.
type ActionResult struct {
	Plan       TripPlan `json:"plan"`
	Changes    []string `json:"changes"`
	Suggestion string   `json:"suggestion,omitempty"`
}
