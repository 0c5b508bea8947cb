package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(apiLimit, loginLimit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(apiLimit, time.Minute))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/login", RateLimiter(loginLimit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_InstancesAreIsolated(t *testing.T) {
	r := newLimitedRouter(1000, 20)

	// Heavy API traffic from one IP must not consume that IP's login budget.
	for i := 0; i < 25; i++ {
		require.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api"), "api request %d", i+1)
	}
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/login"),
		"first login must pass regardless of prior api traffic")
}

func TestRateLimiter_EnforcesOwnLimit(t *testing.T) {
	r := newLimitedRouter(1000, 20)

	// Each login passes through both limiters; only the login one is tight.
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/login"), "login %d", i+1)
	}
	resp := doRequest(r, http.MethodPost, "/login")
	assert.Equal(t, http.StatusTooManyRequests, resp, "21st login in the window is rejected")

	// the general limiter is untouched by login rejections
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api"))
}

func TestRateLimiter_SeparatesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, hit("198.51.100.1:1000"))
	require.Equal(t, http.StatusOK, hit("198.51.100.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit("198.51.100.1:1000"))
	assert.Equal(t, http.StatusOK, hit("198.51.100.2:1000"), "a different IP has its own window")
}
