package handler

import (
	"net/http"
	"strings"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// UserHandler manages the accounts of a lab
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List users
// @Description Lists the users of the active lab. Super admins without a selected lab see every user.
// @Tags Users
// @Produce json
// @Param search query string false "Search by name or email"
// @Param role query string false "Filter by role" Enums(super_admin, lab_admin, supervisor, tech, read_only)
// @Param includeInactive query bool false "Include deactivated users"
// @Success 200 {array} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &repository.UserFilter{
		Search:          strings.TrimSpace(r.URL.Query().Get("search")),
		IncludeInactive: parseBoolQuery(r, "includeInactive"),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		userRole := domain.UserRole(role)
		if !userRole.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		filter.Role = &userRole
	}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err, "list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Create godoc
// @Summary Create user
// @Description Creates a user with a generated temporary password that must be changed at first login
// @Tags Users
// @Accept json
// @Produce json
// @Param request body domain.CreateUserRequest true "User"
// @Success 201 {object} domain.UserWithPasswordDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Update godoc
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body domain.UpdateUserRequest true "Changes"
// @Success 200 {object} domain.UserDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/users/{id} [patch]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "user")
	if !ok {
		return
	}
	var req domain.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ResetPassword godoc
// @Summary Reset user password
// @Description Generates a new temporary password and forces a change at next login
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} domain.UserWithPasswordDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.ResetPassword(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "reset password")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
