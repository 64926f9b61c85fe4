package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter holds the httprate limiters and their whitelists
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	ipLimiter      func(http.Handler) http.Handler
	userLimiter    func(http.Handler) http.Handler
	loginLimiter   func(http.Handler) http.Handler
	whitelistIPs   map[string]bool
	whitelistPaths []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool, len(cfg.WhitelistIPs)),
		whitelistPaths: cfg.WhitelistPaths,
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}

	rl.ipLimiter = rl.perMinute(cfg.RequestsPerMinute, "ip", nil)
	rl.userLimiter = rl.perMinute(cfg.RequestsPerMinuteAuth, "ip", authenticatedUserKey)
	// login attempts count in their own bucket
	rl.loginLimiter = rl.perMinute(cfg.LoginPerMinute, "login", nil)

	logger.Info("Rate limiting configured",
		zap.Bool("enabled", cfg.Enabled),
		zap.Ints("per_minute_anon_user_login", []int{cfg.RequestsPerMinute, cfg.RequestsPerMinuteAuth, cfg.LoginPerMinute}),
		zap.Int("whitelisted", len(cfg.WhitelistIPs)+len(cfg.WhitelistPaths)),
	)
	return rl
}

// Limit applies the per-user limit to authenticated requests and the per-IP limit otherwise
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return rl.guard(next, func(r *http.Request) func(http.Handler) http.Handler {
		if _, ok := authenticatedUserKey(r); ok {
			return rl.userLimiter
		}
		return rl.ipLimiter
	})
}

// LimitByIP applies the per-IP limit (for use before authentication)
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return rl.guard(next, func(*http.Request) func(http.Handler) http.Handler {
		return rl.ipLimiter
	})
}

// LimitLogin applies the sign-in limit
func (rl *RateLimiter) LimitLogin(next http.Handler) http.Handler {
	return rl.guard(next, func(*http.Request) func(http.Handler) http.Handler {
		return rl.loginLimiter
	})
}

func (rl *RateLimiter) guard(next http.Handler, pick func(*http.Request) func(http.Handler) http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isPathWhitelisted(r.URL.Path) || rl.whitelistIPs[ClientIP(r)] {
			next.ServeHTTP(w, r)
			return
		}
		pick(r)(next).ServeHTTP(w, r)
	})
}

func authenticatedUserKey(r *http.Request) (string, bool) {
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
		return "user:" + userCtx.UserID.String(), true
	}
	return "", false
}

// perMinute builds a one-minute window limiter. userKey, when set and matched,
// replaces the client IP as the bucket key.
func (rl *RateLimiter) perMinute(limit int, prefix string, userKey func(*http.Request) (string, bool)) func(http.Handler) http.Handler {
	key := func(r *http.Request) (string, error) {
		if userKey != nil {
			if k, ok := userKey(r); ok {
				return k, nil
			}
		}
		return prefix + ":" + ClientIP(r), nil
	}
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rl.rejectOverLimit),
	)
}

// isPathWhitelisted matches exact paths and prefixes written as "/path/*"
func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	for _, wp := range rl.whitelistPaths {
		if wp == path {
			return true
		}
		if prefix, ok := strings.CutSuffix(wp, "/*"); ok && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) rejectOverLimit(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", ClientIP(r)),
	}
	if key, ok := authenticatedUserKey(r); ok {
		fields = append(fields, zap.String("bucket", key))
	}
	rl.logger.Warn("Rate limit exceeded", fields...)

	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, domain.ErrorTypeRateLimited, "Too many requests. Please try again later.")
}
