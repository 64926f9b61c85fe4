package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/labaid/labaid-api/internal/export"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// AuditHandler handles audit log related HTTP requests
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// auditQuery reads the shared filter parameters of the list and export endpoints
func (h *AuditHandler) auditQuery(w http.ResponseWriter, r *http.Request) (service.AuditQuery, bool) {
	q := r.URL.Query()
	query := service.AuditQuery{
		EntityType: strings.TrimSpace(q.Get("entityType")),
		Action:     strings.TrimSpace(q.Get("action")),
		DateFrom:   strings.TrimSpace(q.Get("dateFrom")),
		DateTo:     strings.TrimSpace(q.Get("dateTo")),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "pageSize", 50),
	}
	var err error
	if query.EntityID, err = parseUUIDQuery(r, "entityId"); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entity ID format")
		return query, false
	}
	if query.UserID, err = parseUUIDQuery(r, "userId"); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return query, false
	}
	return query, true
}

// List godoc
// @Summary List audit logs
// @Description Returns a page of audit entries for the active lab, newest first
// @Tags Audit
// @Produce json
// @Param entityType query string false "Filter by entity type"
// @Param entityId query string false "Filter by entity ID"
// @Param action query string false "Filter by action"
// @Param userId query string false "Filter by user ID"
// @Param dateFrom query string false "First day or month included (YYYY-MM-DD or YYYY-MM)"
// @Param dateTo query string false "Last day or month included (YYYY-MM-DD or YYYY-MM)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size (max 200)" default(50)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AuditLogDTO}
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := h.auditQuery(w, r)
	if !ok {
		return
	}

	result, err := h.auditService.List(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.logger, err, "list audit logs")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Range godoc
// @Summary Get audit month range
// @Description Returns the earliest and latest months with entries, for the month picker
// @Tags Audit
// @Produce json
// @Success 200 {object} domain.AuditRangeDTO
// @Security BearerAuth
// @Router /audit/range [get]
func (h *AuditHandler) Range(w http.ResponseWriter, r *http.Request) {
	rng, err := h.auditService.Range(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get audit range")
		return
	}
	respondJSON(w, http.StatusOK, rng)
}

// Export godoc
// @Summary Export audit logs
// @Description Downloads the filtered entries as an XLSX workbook
// @Tags Audit
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param entityType query string false "Filter by entity type"
// @Param entityId query string false "Filter by entity ID"
// @Param action query string false "Filter by action"
// @Param userId query string false "Filter by user ID"
// @Param dateFrom query string false "First day or month included"
// @Param dateTo query string false "Last day or month included"
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /audit/export [get]
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	query, ok := h.auditQuery(w, r)
	if !ok {
		return
	}

	data, err := h.auditService.Export(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.logger, err, "export audit logs")
		return
	}
	filename := fmt.Sprintf("audit-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	respondFile(w, export.ContentTypeXLSX, filename, data)
}

// EntityHistory godoc
// @Summary Get entity history
// @Tags Audit
// @Produce json
// @Param entityType path string true "Entity type" Enums(lab, user, fluorochrome, antibody, lot, vial, storage_unit, document, ticket)
// @Param entityId path string true "Entity ID"
// @Success 200 {array} domain.AuditLogDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /audit/entity/{entityType}/{entityId} [get]
func (h *AuditHandler) EntityHistory(w http.ResponseWriter, r *http.Request) {
	entityType := strings.TrimSpace(chi.URLParam(r, "entityType"))
	if entityType == "" {
		respondWithError(w, http.StatusBadRequest, "Entity type is required")
		return
	}
	entityID, ok := parseUUIDParam(w, r, "entityId", "entity")
	if !ok {
		return
	}

	logs, err := h.auditService.ListByEntity(r.Context(), entityType, entityID)
	if err != nil {
		handleServiceError(w, h.logger, err, "get entity history")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
