package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripdeck/backend/internal/ai"
	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/repo"
)

// insightsTTL bounds how long a user's generated insights are served from
// cache before the provider is asked again.
const insightsTTL = 10 * time.Minute

// UserService implements account and profile-insight operations.
type UserService struct {
	users   repo.UserRepo
	trips   repo.TripRepo
	gateway Gateway
	cache   *gocache.Cache
}

// NewUserService constructs a UserService backed by the provided repos and gateway.
func NewUserService(users repo.UserRepo, trips repo.TripRepo, gateway Gateway) *UserService {
	return &UserService{
		users:   users,
		trips:   trips,
		gateway: gateway,
		cache:   gocache.New(insightsTTL, 2*insightsTTL),
	}
}

// Register validates credentials, hashes the password, and creates the user.
// Returns domain.ErrConflict when the username is taken. The check-then-insert
// is not atomic on the memory backing across services, but the repo re-checks
// under its own lock, so duplicate usernames cannot slip through.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w: username taken", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
// Returns domain.ErrUnauthorized for both an unknown username and a wrong
// password, so the response does not reveal which one failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", domain.ErrUnauthorized)
	}
	return user, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// Insights summarizes the user's travel history and asks the gateway for a
// personality profile. Results are cached per user for insightsTTL.
func (s *UserService) Insights(ctx context.Context, userID uuid.UUID) (domain.UserInsights, error) {
	if cached, ok := s.cache.Get(userID.String()); ok {
		return cached.(domain.UserInsights), nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("service.UserService.Insights: %w", err)
	}
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("service.UserService.Insights: %w", err)
	}

	profile := ai.ProfileSummary{
		Username:  user.Username,
		TripCount: len(trips),
		Destinations: lo.Uniq(lo.Map(trips, func(t domain.Trip, _ int) string {
			return t.Destination
		})),
		Themes: lo.Uniq(lo.Map(trips, func(t domain.Trip, _ int) string {
			return t.Theme
		})),
		TotalBudget: lo.SumBy(trips, func(t domain.Trip) int { return t.Budget }),
	}

	insights, err := s.gateway.UserInsights(ctx, profile)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("service.UserService.Insights: %w", err)
	}

	s.cache.Set(userID.String(), insights, gocache.DefaultExpiration)
	return insights, nil
}
