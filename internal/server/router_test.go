package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"messenger-formbot/internal/api"
	"messenger-formbot/internal/automation"
	"messenger-formbot/internal/config"
	"messenger-formbot/internal/form"
	"messenger-formbot/internal/logger"
	"messenger-formbot/internal/messenger"
	"messenger-formbot/internal/metrics"
	"messenger-formbot/internal/webhook"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{VerifyToken: "tok"}
	log := logger.NewNop()
	m := metrics.New()
	formEngine := form.NewEngine(nil)
	engine := automation.NewEngine(formEngine, messenger.NewClient(cfg), automation.WithMetrics(m))

	return NewRouter(Deps{
		Log:       log,
		Webhook:   webhook.NewHandler(cfg, engine, log),
		Dashboard: api.NewDashboardHandler(nil, formEngine),
		Metrics:   m,
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/questions", http.StatusOK},
		{"/api/messages", http.StatusServiceUnavailable},
		{"/webhook?hub.mode=subscribe&hub.verify_token=tok&hub.challenge=c", http.StatusOK},
		{"/ws", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
