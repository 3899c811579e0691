package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workmarket/internal/http/handlers"
	"workmarket/internal/store"
)

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func TestLogin_SuccessAndMe(t *testing.T) {
	ta := newTestAppWith(t, "company.com", handlers.Options{})

	resp, body := ta.do(t, "POST", "/api/auth/login", map[string]string{"email": "emma.johnson@company.com", "password": store.DemoPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	lr := decode[loginResponse](t, body)
	require.NotEmpty(t, lr.Token)
	assert.Equal(t, "u-emma", lr.User.ID)
	assert.NotContains(t, string(body), "passwordHash")

	resp, body = ta.do(t, "GET", "/api/auth/me", nil, "Authorization", "Bearer "+lr.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	me := decode[map[string]any](t, body)
	assert.Equal(t, "u-emma", me["id"])
	assert.Equal(t, "emma.johnson@company.com", me["email"])

	resp, _ = ta.do(t, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = ta.do(t, "GET", "/api/auth/me", nil, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_FailuresAndThrottle(t *testing.T) {
	ta := newTestAppWith(t, "company.com", handlers.Options{LoginLimit: 3, LoginWindow: time.Minute})

	resp, body := ta.do(t, "POST", "/api/auth/login", map[string]string{"email": "sarah.chen@company.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", errorOf(t, body))

	resp, body = ta.do(t, "POST", "/api/auth/login", map[string]string{"email": "sarah@gmail.com", "password": store.DemoPassword})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Please use your company email", errorOf(t, body))

	resp, _ = ta.do(t, "POST", "/api/auth/login", map[string]string{"email": "sarah.chen@company.com", "password": store.DemoPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ta.do(t, "POST", "/api/auth/login", map[string]string{"email": "sarah.chen@company.com", "password": store.DemoPassword})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, errorOf(t, body), "Too many attempts")
}

func TestUsers_NoHashes(t *testing.T) {
	ta := newTestApp(t)
	resp, body := ta.do(t, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[[]map[string]any](t, body)
	assert.Len(t, users, 5)
	assert.NotContains(t, string(body), "$2")
}
