package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tripdeck/backend/internal/domain"
)

// createCartItemRequest mirrors domain.CartItem but keeps Included as a
// pointer so an omitted flag can default to true.
type createCartItemRequest struct {
	Kind      string  `json:"kind"`
	Title     string  `json:"title"`
	Details   string  `json:"details"`
	Provider  *string `json:"provider"`
	Price     int     `json:"price"`
	Included  *bool   `json:"included"`
	DayNumber *int    `json:"day_number"`
}

// CreateCartItem handles POST /api/trips/{id}/cart.
func (s *Server) CreateCartItem(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req createCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	item := domain.CartItem{
		Kind:      req.Kind,
		Title:     req.Title,
		Details:   req.Details,
		Provider:  req.Provider,
		Price:     req.Price,
		DayNumber: req.DayNumber,
	}
	if req.Included != nil {
		item.Included = *req.Included
	}

	created, err := s.carts.Create(r.Context(), tripID, item, req.Included != nil)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListCart handles GET /api/trips/{id}/cart.
func (s *Server) ListCart(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	items, err := s.carts.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// CartTotal handles GET /api/trips/{id}/cart/total.
// The total covers included items only.
func (s *Server) CartTotal(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	total, err := s.carts.Total(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"total": total})
}

// UpdateCartItem handles PATCH /api/cart/{id}.
// The body is a shallow-merge patch: present fields replace stored values,
// absent fields stay untouched.
func (s *Server) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid cart item id")
		return
	}

	var patch domain.CartItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.carts.Update(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteCartItem handles DELETE /api/cart/{id}.
// The first delete of an id returns {"success":true}; repeating it is a 404.
func (s *Server) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid cart item id")
		return
	}

	if err := s.carts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]bool{"success": false})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
