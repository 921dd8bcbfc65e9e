// Package handler implements the HTTP layer for the trip-planning API.
// All handlers are methods on Server; they decode and validate request
// bodies, call a servicer, and map sentinel errors to HTTP statuses exactly
// once, in errors.go. Methods are split into domain-specific files but all
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/service"
)

// UserServicer defines the account operations the handlers depend on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer or a store.
type UserServicer interface {
	Register(ctx context.Context, username, password string) (domain.User, error)
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
	Insights(ctx context.Context, userID uuid.UUID) (domain.UserInsights, error)
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	SuggestVibes(ctx context.Context, destination string) ([]string, error)
	Generate(ctx context.Context, req service.GenerateRequest) (service.GenerateResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
}

// CartServicer defines the cart operations the handlers depend on.
type CartServicer interface {
	Create(ctx context.Context, tripID uuid.UUID, item domain.CartItem, includedSet bool) (domain.CartItem, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Total(ctx context.Context, tripID uuid.UUID) (int, error)
}

// AssistantServicer defines the conversational operations the handlers
// depend on.
type AssistantServicer interface {
	Chat(ctx context.Context, message string, tripID *uuid.UUID) (string, error)
	DetectAction(ctx context.Context, message string, tripID *uuid.UUID) (domain.ActionDetection, error)
	Modify(ctx context.Context, tripID uuid.UUID, req service.ModifyRequest) (service.ModifyOutcome, error)
	OptimizeBudget(ctx context.Context, tripID uuid.UUID) (domain.BudgetOptimization, error)
	Recommendations(ctx context.Context, tripID uuid.UUID, day *int) (domain.TripRecommendations, error)
}

// Server holds the handler dependencies. Wire its Routes into the router
// in main.go.
type Server struct {
	users     UserServicer
	trips     TripServicer
	carts     CartServicer
	assistant AssistantServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, trips TripServicer, carts CartServicer, assistant AssistantServicer) *Server {
	return &Server{users: users, trips: trips, carts: carts, assistant: assistant}
}

// Routes returns the full API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Get("/users/{id}/trips", s.ListUserTrips)
		r.Post("/user/insights", s.UserInsights)

		r.Post("/vibes", s.SuggestVibes)
		r.Post("/generate-trip", s.GenerateTrip)

		r.Route("/trips/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Get("/cart", s.ListCart)
			r.Get("/cart/total", s.CartTotal)
			r.Post("/cart", s.CreateCartItem)
			r.Post("/modify", s.ModifyTrip)
			r.Post("/optimize-budget", s.OptimizeBudget)
			r.Post("/recommendations", s.Recommendations)
		})

		r.Patch("/cart/{id}", s.UpdateCartItem)
		r.Delete("/cart/{id}", s.DeleteCartItem)

		r.Post("/chat", s.Chat)
		r.Post("/detect-action", s.DetectAction)
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID extracts and parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
