package domain

import (
	"time"

	"github.com/google/uuid"
)

// Budget bounds enforced at intake. Individual cart-item prices are not
// bounded; only the overall trip budget is.
const (
	MinBudget = 10000
	MaxBudget = 500000
)

// Trip is a persisted itinerary: dates, budget, theme, and an ordered
// sequence of day plans. Dates are kept as the strings the client submitted;
// they are not validated as calendar dates.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Theme       string    `json:"theme"`
	Budget      int       `json:"budget"`
	Days        []TripDay `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

// TripDay is one day of an itinerary.
type TripDay struct {
	Day             int              `json:"day"`
	Theme           string           `json:"theme"`
	Summary         string           `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is one bookable suggestion inside a day plan. Kind is an
// open string; flight, hotel, and activity are the expected values but
// others are accepted silently.
type Recommendation struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	Provider string `json:"provider,omitempty"`
	Price    int    `json:"price"`
}

// TripPatch carries the optional fields of a shallow-merge trip update.
// A nil field leaves the stored value untouched; a set field replaces it
// wholesale. Days in particular is replace-whole, never deep-merged.
type TripPatch struct {
	Title       *string    `json:"title,omitempty"`
	Origin      *string    `json:"origin,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	StartDate   *string    `json:"start_date,omitempty"`
	EndDate     *string    `json:"end_date,omitempty"`
	Theme       *string    `json:"theme,omitempty"`
	Budget      *int       `json:"budget,omitempty"`
	Days        *[]TripDay `json:"days,omitempty"`
}

// Apply merges the patch into t, field-level replace only.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Origin != nil {
		t.Origin = *p.Origin
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Theme != nil {
		t.Theme = *p.Theme
	}
	if p.Budget != nil {
		t.Budget = *p.Budget
	}
	if p.Days != nil {
		t.Days = *p.Days
	}
	return t
}
