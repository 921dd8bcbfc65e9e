package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripdeck/backend/internal/service"
)

// chatRequest is shared by the chat and detect-action endpoints:
// a message with an optional trip to ground it in.
type chatRequest struct {
	Message string     `json:"message"`
	TripID  *uuid.UUID `json:"tripId,omitempty"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	reply, err := s.assistant.Chat(r.Context(), req.Message, req.TripID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// DetectAction handles POST /api/detect-action.
// The classification either carries a conversational reply or a named
// action; an action that requires confirmation stays pending on the trip
// until /api/trips/{id}/modify confirms or rejects it.
func (s *Server) DetectAction(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	det, err := s.assistant.DetectAction(r.Context(), req.Message, req.TripID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, det)
}

// ModifyTrip handles POST /api/trips/{id}/modify.
func (s *Server) ModifyTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req service.ModifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	outcome, err := s.assistant.Modify(r.Context(), tripID, req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// OptimizeBudget handles POST /api/trips/{id}/optimize-budget.
func (s *Server) OptimizeBudget(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	opt, err := s.assistant.OptimizeBudget(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, opt)
}

// Recommendations handles POST /api/trips/{id}/recommendations.
// An optional day in the body scopes the suggestions to that day.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r)
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req struct {
		Day *int `json:"day,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
	}

	recs, err := s.assistant.Recommendations(r.Context(), tripID, req.Day)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recs)
}
