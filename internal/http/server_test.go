package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workmarket/internal/domain"
	"workmarket/internal/http/handlers"
	applog "workmarket/internal/log"
)

func TestHealthAndNotFound(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, body = ta.do(t, "GET", "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", errorOf(t, body))
}

func TestBodySizeLimit(t *testing.T) {
	ta := newTestApp(t)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", "/api/messages", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	// fasthttp may refuse the body before a response is built
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCartAndMessages(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "POST", "/api/cart", map[string]any{"listingId": "l-seed-jacket", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decode[domain.CartEntry](t, body)
	assert.Equal(t, 2, entry.Quantity)

	resp, body = ta.do(t, "GET", "/api/cart/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[map[string]any](t, body)
	assert.Equal(t, "90", sum["total"])
	assert.EqualValues(t, 2, sum["items"])

	resp, body = ta.do(t, "DELETE", "/api/cart/"+entry.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode[map[string]any](t, body)["ok"])
	resp, _ = ta.do(t, "DELETE", "/api/cart/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = ta.do(t, "POST", "/api/messages", map[string]string{"from": "u-sarah", "to": "u-michael", "text": "Still available?"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, body = ta.do(t, "POST", "/api/messages", map[string]string{"from": "u-sarah"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorOf(t, body), "text is required")

	resp, body = ta.do(t, "GET", "/api/messages?user=u-michael", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.Message](t, body), 1)
}

func TestMetricsEndpoint(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.do(t, "POST", "/api/listings", map[string]any{"title": "Kettle", "description": "1.7L"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ta.do(t, "POST", "/api/purchase", map[string]any{"listingId": "l-seed-jacket", "buyerId": "u-sarah"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ta.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, `workmarket_listings_created_total{type="thrift"} 1`)
	assert.Contains(t, text, "workmarket_purchases_total 1")
	assert.Contains(t, text, `route="/api/listings"`)
}

func TestAuditAndRejectionLogs(t *testing.T) {
	var buf bytes.Buffer
	applog.Setup(&buf, "info")
	t.Cleanup(func() { applog.Setup(&bytes.Buffer{}, "info") })

	ta := newTestApp(t)
	resp, _ := ta.do(t, "POST", "/api/purchase", map[string]any{"listingId": "l-seed-jacket", "buyerId": "u-sarah"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = ta.do(t, "POST", "/api/purchase", map[string]any{"listingId": "l-seed-jacket", "buyerId": "u-david"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var actions []string
	var rejected map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		action, _ := e["action"].(string)
		actions = append(actions, action)
		if action == "purchase.rejected" {
			rejected = e
		}
	}
	assert.Contains(t, actions, "purchase")
	require.NotNil(t, rejected, "rejection not logged: %v", actions)
	assert.Equal(t, "/api/purchase", rejected["path"])
	assert.NotEmpty(t, rejected["req_id"])
	fields, _ := rejected["fields"].(map[string]any)
	assert.Equal(t, string(domain.KindAlreadySold), fields["reason"])
}

func TestErrorHandler_HidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/gone", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusGone, "Listing expired")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "Something went wrong")
	assert.NotContains(t, string(b), "secret")

	resp, err = app.Test(httptest.NewRequest("GET", "/gone", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusGone, resp.StatusCode)
	b, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Listing expired"}`, string(b))
}
