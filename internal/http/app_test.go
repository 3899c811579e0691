package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"workmarket/internal/auth"
	"workmarket/internal/http/handlers"
	"workmarket/internal/metrics"
	"workmarket/internal/store"
)

type testApp struct {
	app *fiber.App
	db  *store.DB
	reg *prometheus.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, "", handlers.Options{})
}

func newTestAppWith(t *testing.T, allowedDomain string, opts handlers.Options) *testApp {
	t.Helper()
	db := store.New(store.NewMemoryBackend())
	require.NoError(t, db.Init(context.Background(), store.SeedDemo))
	t.Cleanup(func() { _ = db.Close() })

	reg := prometheus.NewRegistry()
	deps := handlers.NewDeps(db, metrics.NewCollector(reg), auth.NewTokenManager("test-secret", time.Hour), allowedDomain)
	opts.Gatherer = reg
	if opts.AccessLog == nil {
		opts.AccessLog = io.Discard
	}
	return &testApp{app: handlers.NewApp(deps, opts), db: db, reg: reg}
}

func (ta *testApp) do(t *testing.T, method, path string, body any, hdr ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func errorOf(t *testing.T, b []byte) string {
	t.Helper()
	return decode[map[string]string](t, b)["error"]
}
