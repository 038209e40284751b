package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Post("/api/analyze", func(c *fiber.Ctx) error {
		if c.Query("fail") != "" {
			return fiber.NewError(fiber.StatusBadRequest, "no file")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/analyses/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/api/analyses/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, pm, reg
}

func TestPrometheusMiddleware_CountsByRoutePattern(t *testing.T) {
	app, _, reg := newMetricsApp(t)

	for _, r := range []struct{ method, target string }{
		{http.MethodPost, "/api/analyze"},
		{http.MethodPost, "/api/analyze?fail=1"},
		{http.MethodGet, "/api/analyses/7d6c"},
		{http.MethodGet, "/api/analyses/91ab"},
		{http.MethodDelete, "/api/analyses/7d6c"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.target, nil))
		require.NoError(t, err)
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests processed.
# TYPE http_requests_total counter
http_requests_total{method="DELETE",path="/api/analyses/:id",status="204"} 1
http_requests_total{method="GET",path="/api/analyses/:id",status="200"} 2
http_requests_total{method="POST",path="/api/analyze",status="200"} 1
http_requests_total{method="POST",path="/api/analyze",status="400"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
}

func TestPrometheusMiddleware_RecordsLatency(t *testing.T) {
	app, pm, _ := newMetricsApp(t)

	_, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/analyses/1", nil))
	require.NoError(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(pm.requestDuration))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, pm, _ := newMetricsApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 0, testutil.CollectAndCount(pm.requestCount))
	assert.Equal(t, 0, testutil.CollectAndCount(pm.requestDuration))
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
