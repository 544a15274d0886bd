package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGeneration("gemini-2.5-flash", time.Second, nil)
	m.ObserveGeneration("gemini-2.5-flash", time.Second, errors.New("quota"))
	m.ObserveGeneration("gemini-2.5-flash", time.Second, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generationTotal.WithLabelValues("gemini-2.5-flash", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationTotal.WithLabelValues("gemini-2.5-flash", "error")))
}

func TestObserveStoreAndSessions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStore("add", nil)
	m.ObserveStore("load", errors.New("corrupt"))
	m.SetActiveSessions(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOperations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOperations.WithLabelValues("load", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGeneration("x", time.Second, nil)
		m.ObserveStore("add", nil)
		m.SetActiveSessions(1)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
