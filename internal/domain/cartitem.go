package domain

import "github.com/google/uuid"

// CartItem is one priced, includable line item attached to a trip and
// optionally to a specific day of that trip. TripID is nullable: orphaned
// items are permitted by the type but not expected in practice.
type CartItem struct {
	ID        uuid.UUID  `json:"id"`
	TripID    *uuid.UUID `json:"trip_id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Details   string     `json:"details"`
	Provider  *string    `json:"provider"`
	Price     int        `json:"price"`
	Included  bool       `json:"included"`
	DayNumber *int       `json:"day_number"`
}

// CartItemPatch carries the optional fields of a shallow-merge cart-item
// update (e.g. toggling Included, editing the price).
type CartItemPatch struct {
	Kind      *string `json:"kind,omitempty"`
	Title     *string `json:"title,omitempty"`
	Details   *string `json:"details,omitempty"`
	Provider  *string `json:"provider,omitempty"`
	Price     *int    `json:"price,omitempty"`
	Included  *bool   `json:"included,omitempty"`
	DayNumber *int    `json:"day_number,omitempty"`
}

// Apply merges the patch into c, field-level replace only.
func (p CartItemPatch) Apply(c CartItem) CartItem {
	if p.Kind != nil {
		c.Kind = *p.Kind
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Details != nil {
		c.Details = *p.Details
	}
	if p.Provider != nil {
		c.Provider = p.Provider
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Included != nil {
		c.Included = *p.Included
	}
	if p.DayNumber != nil {
		c.DayNumber = p.DayNumber
	}
	return c
}
