package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"bilemo-api/internal/auth"
	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository/sqlite"
	"bilemo-api/internal/service"
	"bilemo-api/internal/validation"
)

const testRegisterSecret = "letmein"

type testAPI struct {
	router  *gin.Engine
	repos   *sqlite.Repositories
	clients service.ClientService
	phones  service.PhoneService
	tokens  *auth.TokenService
	metrics *Metrics
}

// newTestAPI builds the full stack on an in-memory database. Options may
// replace collaborators before the routes are registered.
func newTestAPI(t *testing.T, opts ...func(*Config)) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos, err := sqlite.NewRepositories(context.Background(), db)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	metrics, err := NewMetrics()
	require.NoError(t, err)

	api := &testAPI{
		repos:   repos,
		clients: service.NewClientService(repos.Clients, testRegisterSecret),
		phones:  service.NewPhoneService(repos.Phones, service.Paging{}),
		tokens:  auth.NewTokenService("test-secret", time.Hour, "bilemo-test"),
		metrics: metrics,
	}

	cfg := Config{
		Clients:        api.clients,
		Users:          service.NewUserService(repos.Users, repos.Phones, validation.New()),
		Query:          service.NewUserQueryService(repos.Users, service.Paging{}),
		Phones:         api.phones,
		Tokens:         api.tokens,
		Logger:         logger,
		Metrics:        metrics,
		CacheMaxAge:    time.Hour,
		RequestTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	handler := NewHandler(cfg)
	api.router = gin.New()
	handler.RegisterRoutes(api.router)
	return api
}

// client registers a client and returns it with a valid bearer token.
func (a *testAPI) client(t *testing.T, email string) (*domain.Client, string) {
	t.Helper()
	client, err := a.clients.Register(context.Background(), "Shop", email, "password123", testRegisterSecret)
	require.NoError(t, err)
	token, _, err := a.tokens.Issue(client)
	require.NoError(t, err)
	return client, token
}

func (a *testAPI) phone(t *testing.T, brand, reference string) *domain.MobilePhone {
	t.Helper()
	phone, err := a.phones.AddPhone(context.Background(), domain.MobilePhone{
		Brand:      brand,
		Model:      brand + " " + reference,
		Reference:  reference,
		PriceCents: 79999,
	})
	require.NoError(t, err)
	return phone
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) createUser(t *testing.T, token string, body map[string]any) UserDetail {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/users", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user UserDetail
	decode(t, w, &user)
	return user
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func userBody(lastName string) map[string]any {
	return map[string]any{
		"first_name":   "Jane",
		"last_name":    lastName,
		"phone_number": "0612345678",
		"address":      "3 avenue Foch, Lyon",
	}
}

func (a *testAPI) doWithHeader(t *testing.T, method, path, token, key, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(key, value)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
