package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID             uuid.UUID
	Email              string
	FullName           string
	Role               domain.UserRole
	LabID              *uuid.UUID
	MustChangePassword bool
	// IsSystem marks requests authenticated with the admin API key
	IsSystem bool
}

type contextKey string

const userContextKey contextKey = "userContext"
const labFilterKey contextKey = "labFilter"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// IsSuperAdmin checks if user can see every lab
func (u *UserContext) IsSuperAdmin() bool {
	return u.Role == domain.RoleSuperAdmin
}

// CanAccessLab checks if user may read or write data of the given lab
func (u *UserContext) CanAccessLab(labID uuid.UUID) bool {
	if u.IsSuperAdmin() {
		return true
	}
	return u.LabID != nil && *u.LabID == labID
}

// Permission names an action guarded by role
type Permission string

const (
	PermissionInventoryRead   Permission = "inventory:read"
	PermissionInventoryWrite  Permission = "inventory:write"
	PermissionCatalogWrite    Permission = "catalog:write"
	PermissionQCApprove       Permission = "qc:approve"
	PermissionStorageManage   Permission = "storage:manage"
	PermissionDocumentsWrite  Permission = "documents:write"
	PermissionDocumentsDelete Permission = "documents:delete"
	PermissionAuditRead       Permission = "audit:read"
	PermissionUsersManage     Permission = "users:manage"
	PermissionLabSettings     Permission = "lab:settings"
	PermissionLabsManage      Permission = "labs:manage"
	PermissionTicketsManage   Permission = "tickets:manage"
)

// minimumRole is the least privileged role holding each permission
var minimumRole = map[Permission]domain.UserRole{
	PermissionInventoryRead:   domain.RoleReadOnly,
	PermissionAuditRead:       domain.RoleReadOnly,
	PermissionInventoryWrite:  domain.RoleTech,
	PermissionDocumentsWrite:  domain.RoleTech,
	PermissionCatalogWrite:    domain.RoleSupervisor,
	PermissionQCApprove:       domain.RoleSupervisor,
	PermissionStorageManage:   domain.RoleSupervisor,
	PermissionDocumentsDelete: domain.RoleSupervisor,
	PermissionUsersManage:     domain.RoleLabAdmin,
	PermissionLabSettings:     domain.RoleLabAdmin,
	PermissionTicketsManage:   domain.RoleLabAdmin,
	PermissionLabsManage:      domain.RoleSuperAdmin,
}

// HasPermission checks if the user's role grants a permission
func (u *UserContext) HasPermission(permission Permission) bool {
	min, ok := minimumRole[permission]
	if !ok {
		return false
	}
	return u.Role.AtLeast(min)
}

// LabFilter is the lab a request operates on, resolved by middleware
type LabFilter struct {
	// LabID is nil when a super admin has not selected a lab
	LabID *uuid.UUID
	// Selected is true when the lab came from the X-Lab-ID header or labId parameter
	Selected bool
}

// WithLabFilter adds the lab filter to the context
func WithLabFilter(ctx context.Context, filter *LabFilter) context.Context {
	return context.WithValue(ctx, labFilterKey, filter)
}

// LabFilterFromContext extracts the lab filter from the context
func LabFilterFromContext(ctx context.Context) (*LabFilter, bool) {
	filter, ok := ctx.Value(labFilterKey).(*LabFilter)
	return filter, ok
}

// GetEffectiveLabID returns the lab queries should be scoped to.
// Nil means no lab scoping (a super admin without a selected lab).
func GetEffectiveLabID(ctx context.Context) *uuid.UUID {
	if filter, ok := LabFilterFromContext(ctx); ok && filter != nil {
		return filter.LabID
	}
	if userCtx, ok := FromContext(ctx); ok && !userCtx.IsSuperAdmin() {
		return userCtx.LabID
	}
	return nil
}

// RequestMeta describes where a request came from, for the audit trail
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

const requestMetaKey contextKey = "requestMeta"

// WithRequestMeta adds request metadata to the context
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

// RequestMetaFromContext returns the request metadata, or the zero value outside a request
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey).(RequestMeta)
	return meta
}
