package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())
	handler := rl.LimitByIP(okHandler())

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		assert.Equal(t, http.StatusOK, serve(handler, req).Code)
	}
}

func TestRateLimiter_LimitsByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     2,
		RequestsPerMinuteAuth: 100,
		LoginPerMinute:        5,
	}, zap.NewNop())
	handler := rl.LimitByIP(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		codes = append(codes, serve(handler, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
	req.RemoteAddr = "10.0.0.8:5555"
	assert.Equal(t, http.StatusOK, serve(handler, req).Code)
}

func TestRateLimiter_Whitelists(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())
	handler := rl.LimitByIP(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
		req.RemoteAddr = "127.0.0.1:1"
		assert.Equal(t, http.StatusOK, serve(handler, req).Code)

		req = httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = "10.1.1.1:1"
		assert.Equal(t, http.StatusOK, serve(handler, req).Code)

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.1.1.1:1"
		assert.Equal(t, http.StatusOK, serve(handler, req).Code)
	}
}

func TestRateLimiter_AuthenticatedUsesUserBudget(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     1,
		RequestsPerMinuteAuth: 3,
	}, zap.NewNop())
	handler := rl.Limit(okHandler())

	user := &auth.UserContext{UserID: uuid.New(), Role: domain.RoleTech}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/vials", nil)
		req.RemoteAddr = "10.2.2.2:1"
		req = req.WithContext(auth.WithUserContext(context.Background(), user))
		assert.Equal(t, http.StatusOK, serve(handler, req).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/vials", nil)
	req.RemoteAddr = "10.2.2.2:1"
	req = req.WithContext(auth.WithUserContext(context.Background(), user))
	w := serve(handler, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), domain.ErrorTypeRateLimited)
}

func TestRateLimiter_LoginLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 100,
		LoginPerMinute:    2,
	}, zap.NewNop())
	handler := rl.LimitLogin(okHandler())

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		last = serve(handler, req).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
