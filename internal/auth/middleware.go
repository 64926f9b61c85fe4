package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"go.uber.org/zap"
)

// SystemUserID identifies actions taken with the admin API key
var SystemUserID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// UserLookup loads the current state of a user, including their lab
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	tokens *TokenIssuer
	users  UserLookup
	apiKey string
	logger *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(tokens *TokenIssuer, users UserLookup, apiKey string, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		apiKey: apiKey,
		logger: logger,
	}
}

// Authenticate accepts a Bearer access token or the admin x-api-key header.
// The user is reloaded on every request so deactivation and lab suspension
// take effect before the token expires.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Invalid API key")
				return
			}

			userCtx := &UserContext{
				UserID:   SystemUserID,
				Email:    "system@labaid.local",
				FullName: "System",
				Role:     domain.RoleSuperAdmin,
				IsSystem: true,
			}
			m.logger.Debug("request authenticated",
				zap.String("path", r.URL.Path),
				zap.String("auth_type", "api_key"),
				zap.Duration("auth_duration", time.Since(start)),
			)
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			m.logger.Debug("token validation failed",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			detail := "Invalid token"
			if errors.Is(err, ErrExpiredToken) {
				detail = "Session expired, please sign in again"
			}
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, detail)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Invalid token")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || user == nil || !user.IsActive {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Account is not active")
			return
		}
		if user.Lab != nil && !user.Lab.IsActive {
			writeAuthError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "Lab is suspended")
			return
		}

		userCtx := NewUserContext(user)
		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", "jwt"),
			zap.String("user_id", userCtx.UserID.String()),
			zap.String("role", string(userCtx.Role)),
			zap.Duration("auth_duration", time.Since(start)),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// NewUserContext builds the request identity from a stored user
func NewUserContext(user *domain.User) *UserContext {
	return &UserContext{
		UserID:             user.ID,
		Email:              user.Email,
		FullName:           user.FullName,
		Role:               user.Role,
		LabID:              user.LabID,
		MustChangePassword: user.MustChangePassword,
	}
}

// RequirePasswordCurrent blocks users holding a temporary password from
// everything except the routes that let them change it
func (m *Middleware) RequirePasswordCurrent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if ok && userCtx.MustChangePassword {
			writeAuthError(w, http.StatusForbidden, domain.ErrorTypePasswordChangeRequired, "You must change your password before continuing")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission ensures the user's role grants a permission
func (m *Middleware) RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "No user context")
				return
			}
			if !userCtx.HasPermission(permission) {
				m.logger.Debug("permission denied",
					zap.String("user_id", userCtx.UserID.String()),
					zap.String("permission", string(permission)),
				)
				writeAuthError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func writeAuthError(w http.ResponseWriter, status int, errType, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
