package domain

// BudgetOptimization is the provider's breakdown of a trip's spend and the
// ways to re-shape it.
type BudgetOptimization struct {
	ByCategory map[string]int         `json:"by_category"`
	Swaps      []BudgetSwap           `json:"swaps"`
	Packages   map[string]TripPackage `json:"packages"`
	HiddenGems []HiddenGem            `json:"hidden_gems"`
}

// BudgetSwap is one suggested item substitution and the saving it yields.
type BudgetSwap struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CurrentItem   string `json:"current_item"`
	SuggestedItem string `json:"suggested_item"`
	Savings       int    `json:"savings"`
}

// TripPackage is an alternative full-trip package at a price tier
// (budget / standard / luxury).
type TripPackage struct {
	TotalCost   int    `json:"total_cost"`
	Description string `json:"description"`
}

// HiddenGem is a free-text local suggestion.
type HiddenGem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
}

// TripRecommendations groups day- or trip-scoped activity suggestions.
type TripRecommendations struct {
	Suggestions []ActivitySuggestion `json:"suggestions"`
	Popular     []PopularActivity    `json:"popular"`
	Sequences   []ActivitySequence   `json:"sequences"`
	Insights    []LocalInsight       `json:"insights"`
}

// ActivitySuggestion is one recommended activity with the reasoning behind it.
type ActivitySuggestion struct {
	Title     string `json:"title"`
	Details   string `json:"details"`
	Price     int    `json:"price"`
	Reasoning string `json:"reasoning"`
	Day       *int   `json:"day,omitempty"`
}

// PopularActivity is a "popular with other travelers" entry with a
// percentage-adoption figure.
type PopularActivity struct {
	Title    string `json:"title"`
	Adoption int    `json:"adoption_percent"`
}

// ActivitySequence is a suggested ordering of activities.
type ActivitySequence struct {
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// LocalInsight is a destination tip tagged by type: weather, event, or tip.
type LocalInsight struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// UserInsights is a travel-personality profile derived from a user's trips.
type UserInsights struct {
	Personality  string           `json:"personality"`
	Traits       []string         `json:"traits"`
	Cards        []InsightCard    `json:"cards"`
	Badges       []Badge          `json:"badges"`
	Destinations []DestinationRec `json:"destinations"`
}

// InsightCard is one displayable insight about the user's travel habits.
type InsightCard struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Badge is an achievement, locked or unlocked.
type Badge struct {
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

// DestinationRec is a recommended destination with an estimated budget.
type DestinationRec struct {
	Destination     string `json:"destination"`
	Reason          string `json:"reason"`
	EstimatedBudget int    `json:"estimated_budget"`
}
