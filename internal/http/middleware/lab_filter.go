package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"go.uber.org/zap"
)

// LabHeader lets a super admin choose the lab a request operates on
const LabHeader = "X-Lab-ID"

type contextKey string

const requestTraceKey contextKey = "requestTrace"

// requestTrace collects identity resolved deeper in the chain for the request log
type requestTrace struct {
	user  *auth.UserContext
	labID *uuid.UUID
}

func withRequestTrace(ctx context.Context, t *requestTrace) context.Context {
	return context.WithValue(ctx, requestTraceKey, t)
}

func traceFromContext(ctx context.Context) *requestTrace {
	t, _ := ctx.Value(requestTraceKey).(*requestTrace)
	return t
}

// LabFilterMiddleware resolves the active lab of each request
type LabFilterMiddleware struct {
	labs   LabLookup
	logger *zap.Logger
}

// LabLookup checks that a selected lab exists
type LabLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lab, error)
}

func NewLabFilterMiddleware(labs LabLookup, logger *zap.Logger) *LabFilterMiddleware {
	return &LabFilterMiddleware{labs: labs, logger: logger}
}

// Filter sets the lab filter:
//   - super admins may pick any lab with the X-Lab-ID header or labId query parameter,
//     and see every lab when they pick none
//   - everyone else is pinned to their own lab; asking for another lab is refused
func (m *LabFilterMiddleware) Filter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		requested := strings.TrimSpace(r.Header.Get(LabHeader))
		if requested == "" {
			requested = strings.TrimSpace(r.URL.Query().Get("labId"))
		}

		filter := &auth.LabFilter{LabID: userCtx.LabID}
		if requested != "" {
			labID, err := uuid.Parse(requested)
			if err != nil {
				writeError(w, http.StatusBadRequest, domain.ErrorTypeBadRequest, "Invalid lab id")
				return
			}
			if !userCtx.CanAccessLab(labID) {
				m.logger.Warn("user attempted to access another lab",
					zap.String("user_id", userCtx.UserID.String()),
					zap.String("requested_lab", labID.String()),
				)
				writeError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "You cannot access data for this lab")
				return
			}
			if userCtx.IsSuperAdmin() {
				if _, err := m.labs.GetByID(r.Context(), labID); err != nil {
					writeError(w, http.StatusNotFound, domain.ErrorTypeNotFound, "Lab not found")
					return
				}
			}
			filter = &auth.LabFilter{LabID: &labID, Selected: true}
		} else if userCtx.IsSuperAdmin() {
			filter = &auth.LabFilter{}
		}

		if t := traceFromContext(r.Context()); t != nil {
			t.user = userCtx
			t.labID = filter.LabID
		}

		next.ServeHTTP(w, r.WithContext(auth.WithLabFilter(r.Context(), filter)))
	})
}

func writeError(w http.ResponseWriter, status int, errType, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
