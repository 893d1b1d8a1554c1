package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":              "Phone Shop",
		"email":             "shop@example.com",
		"password":          "password123",
		"register_password": testRegisterSecret,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var client ClientResponse
	decode(t, w, &client)
	require.Equal(t, "shop@example.com", client.Email)
	require.NotContains(t, w.Body.String(), "password")

	w = api.do(t, http.MethodPost, "/api/login_check", "", map[string]string{
		"username": "shop@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var token TokenResponse
	decode(t, w, &token)
	require.NotEmpty(t, token.Token)

	w = api.do(t, http.MethodGet, "/api/users", token.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)
	api.client(t, "shop@example.com")

	w := api.do(t, http.MethodPost, "/api/login_check", "", map[string]string{
		"username": "shop@example.com",
		"password": "nope-nope",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/login_check", "", map[string]string{"username": "shop@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterErrors(t *testing.T) {
	api := newTestAPI(t)
	api.client(t, "shop@example.com")

	body := map[string]string{
		"name":              "Shop",
		"email":             "shop@example.com",
		"password":          "password123",
		"register_password": testRegisterSecret,
	}
	require.Equal(t, http.StatusConflict, api.do(t, http.MethodPost, "/api/register", "", body).Code)

	body["email"] = "new@example.com"
	body["register_password"] = "wrong"
	require.Equal(t, http.StatusForbidden, api.do(t, http.MethodPost, "/api/register", "", body).Code)

	body["register_password"] = testRegisterSecret
	body["password"] = "short"
	require.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/register", "", body).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.client(t, "shop@example.com")
	api.createUser(t, token, userBody("Doe"))

	w := api.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = api.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `http_requests_total{method="POST",route="/api/users",status="201"} 1`)
	require.Contains(t, w.Body.String(), `bilemo_user_operations_total{operation="create",result="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodOptions, "/api/users", "", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	api := newTestAPI(t, func(cfg *Config) {
		cfg.AllowedOrigins = []string{"https://shop.example.com"}
	})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://shop.example.com")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", w.Header().Get("Vary"))
	require.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")

	w = preflight("https://evil.example.com")
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
