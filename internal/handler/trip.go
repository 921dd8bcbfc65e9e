package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripdeck/backend/internal/service"
)

// SuggestVibes handles POST /api/vibes.
func (s *Server) SuggestVibes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Destination string `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	vibes, err := s.trips.SuggestVibes(r.Context(), req.Destination)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{"vibes": vibes})
}

type generateTripRequest struct {
	UserID    uuid.UUID `json:"userId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Theme     string    `json:"theme"`
	Budget    int       `json:"budget"`
}

// GenerateTrip handles POST /api/generate-trip.
// Success returns the persisted trip together with the raw generated plan.
func (s *Server) GenerateTrip(w http.ResponseWriter, r *http.Request) {
	var req generateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := s.trips.Generate(r.Context(), service.GenerateRequest{
		UserID:    req.UserID,
		From:      req.From,
		To:        req.To,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Theme:     req.Theme,
		Budget:    req.Budget,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trip)
}
