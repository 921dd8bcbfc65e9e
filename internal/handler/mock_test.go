package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/backend/internal/domain"
	"github.com/tripdeck/backend/internal/handler"
	"github.com/tripdeck/backend/internal/service"
)

// The mocks below implement the servicer interfaces with pluggable function
// fields so each test scripts exactly the behaviour it needs. Calling an
// unset function panics, which fails the test loudly instead of silently
// returning zero values for an endpoint the test did not mean to hit.

type mockUserServicer struct {
	registerFn     func(ctx context.Context, username, password string) (domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (domain.User, error)
	insightsFn     func(ctx context.Context, userID uuid.UUID) (domain.UserInsights, error)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

func (m *mockUserServicer) Register(ctx context.Context, username, password string) (domain.User, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockUserServicer) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockUserServicer) Insights(ctx context.Context, userID uuid.UUID) (domain.UserInsights, error) {
	return m.insightsFn(ctx, userID)
}

type mockTripServicer struct {
	suggestVibesFn func(ctx context.Context, destination string) ([]string, error)
	generateFn     func(ctx context.Context, req service.GenerateRequest) (service.GenerateResult, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUserFn   func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) SuggestVibes(ctx context.Context, destination string) ([]string, error) {
	return m.suggestVibesFn(ctx, destination)
}

func (m *mockTripServicer) Generate(ctx context.Context, req service.GenerateRequest) (service.GenerateResult, error) {
	return m.generateFn(ctx, req)
}

func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTripServicer) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUserFn(ctx, userID)
}

type mockCartServicer struct {
	createFn     func(ctx context.Context, tripID uuid.UUID, item domain.CartItem, includedSet bool) (domain.CartItem, error)
	listByTripFn func(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error)
	updateFn     func(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	totalFn      func(ctx context.Context, tripID uuid.UUID) (int, error)
}

var _ handler.CartServicer = (*mockCartServicer)(nil)

func (m *mockCartServicer) Create(ctx context.Context, tripID uuid.UUID, item domain.CartItem, includedSet bool) (domain.CartItem, error) {
	return m.createFn(ctx, tripID, item, includedSet)
}

func (m *mockCartServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.CartItem, error) {
	return m.listByTripFn(ctx, tripID)
}

func (m *mockCartServicer) Update(ctx context.Context, id uuid.UUID, patch domain.CartItemPatch) (domain.CartItem, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockCartServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockCartServicer) Total(ctx context.Context, tripID uuid.UUID) (int, error) {
	return m.totalFn(ctx, tripID)
}

type mockAssistantServicer struct {
	chatFn            func(ctx context.Context, message string, tripID *uuid.UUID) (string, error)
	detectActionFn    func(ctx context.Context, message string, tripID *uuid.UUID) (domain.ActionDetection, error)
	modifyFn          func(ctx context.Context, tripID uuid.UUID, req service.ModifyRequest) (service.ModifyOutcome, error)
	optimizeBudgetFn  func(ctx context.Context, tripID uuid.UUID) (domain.BudgetOptimization, error)
	recommendationsFn func(ctx context.Context, tripID uuid.UUID, day *int) (domain.TripRecommendations, error)
}

var _ handler.AssistantServicer = (*mockAssistantServicer)(nil)

func (m *mockAssistantServicer) Chat(ctx context.Context, message string, tripID *uuid.UUID) (string, error) {
	return m.chatFn(ctx, message, tripID)
}

func (m *mockAssistantServicer) DetectAction(ctx context.Context, message string, tripID *uuid.UUID) (domain.ActionDetection, error) {
	return m.detectActionFn(ctx, message, tripID)
}

func (m *mockAssistantServicer) Modify(ctx context.Context, tripID uuid.UUID, req service.ModifyRequest) (service.ModifyOutcome, error) {
	return m.modifyFn(ctx, tripID, req)
}

func (m *mockAssistantServicer) OptimizeBudget(ctx context.Context, tripID uuid.UUID) (domain.BudgetOptimization, error) {
	return m.optimizeBudgetFn(ctx, tripID)
}

func (m *mockAssistantServicer) Recommendations(ctx context.Context, tripID uuid.UUID, day *int) (domain.TripRecommendations, error) {
	return m.recommendationsFn(ctx, tripID, day)
}

// serverMocks bundles one mock per servicer; tests fill in only the
// functions the endpoint under test calls.
type serverMocks struct {
	users     *mockUserServicer
	trips     *mockTripServicer
	carts     *mockCartServicer
	assistant *mockAssistantServicer
}

func newTestServer() (*handler.Server, *serverMocks) {
	m := &serverMocks{
		users:     &mockUserServicer{},
		trips:     &mockTripServicer{},
		carts:     &mockCartServicer{},
		assistant: &mockAssistantServicer{},
	}
	return handler.NewServer(m.users, m.trips, m.carts, m.assistant), m
}

// doRequest routes a request through the full chi router and returns the
// recorded response. body may be a raw JSON string or any marshalable value.
func doRequest(t *testing.T, srv *handler.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// errorCode extracts the code field from the error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}
