package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func rateLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 1))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doPing(router *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_LimitsPerClient(t *testing.T) {
	router := rateLimitedRouter()

	if code := doPing(router, "10.0.0.1:1111"); code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", code)
	}
	if code := doPing(router, "10.0.0.1:1111"); code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after the burst is spent, got %d", code)
	}

	// A different client has its own budget and is unaffected.
	if code := doPing(router, "10.0.0.2:2222"); code != http.StatusOK {
		t.Errorf("Expected a different client to pass, got %d", code)
	}
}
