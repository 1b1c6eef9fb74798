package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/scheduling-api/internal/handler/prometheus"
	"github.com/jwalitptl/scheduling-api/internal/middleware"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ping/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
}

func newTestRouter(cfg RouterConfig) *gin.Engine {
	cfg.Mode = gin.TestMode
	cfg.CORSConfig = middleware.DefaultCORSConfig()
	r := NewRouter(cfg, prometheus.New("router_test"), pingHandler{})
	r.Setup()
	return r.Engine()
}

func get(e *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutesMountedAtRoot(t *testing.T) {
	e := newTestRouter(RouterConfig{})

	w := get(e, "/ping/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	w = get(e, "/nowhere/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not found."}`, w.Body.String())

	w = get(e, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "router_test_http_requests_total")
}

func TestRateLimitEnabled(t *testing.T) {
	e := newTestRouter(RouterConfig{RateLimitEnabled: true, RateLimit: 0.001, RateBurst: 1})

	assert.Equal(t, http.StatusOK, get(e, "/ping/").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(e, "/ping/").Code)
}
