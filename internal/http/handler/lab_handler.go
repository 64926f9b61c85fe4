package handler

import (
	"net/http"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// LabHandler manages labs and their settings
type LabHandler struct {
	labService *service.LabService
	logger     *zap.Logger
}

func NewLabHandler(labService *service.LabService, logger *zap.Logger) *LabHandler {
	return &LabHandler{
		labService: labService,
		logger:     logger,
	}
}

// List godoc
// @Summary List labs
// @Description Super admins see every lab, other users only their own
// @Tags Labs
// @Produce json
// @Success 200 {array} domain.LabDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /labs [get]
func (h *LabHandler) List(w http.ResponseWriter, r *http.Request) {
	labs, err := h.labService.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "list labs")
		return
	}
	respondJSON(w, http.StatusOK, labs)
}

// Create godoc
// @Summary Create lab
// @Tags Labs
// @Accept json
// @Produce json
// @Param request body domain.CreateLabRequest true "Lab"
// @Success 201 {object} domain.LabDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /labs [post]
func (h *LabHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLabRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lab, err := h.labService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create lab")
		return
	}
	respondJSON(w, http.StatusCreated, lab)
}

// Update godoc
// @Summary Rename lab
// @Tags Labs
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Param request body domain.UpdateLabRequest true "Lab"
// @Success 200 {object} domain.LabDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /labs/{id} [patch]
func (h *LabHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lab")
	if !ok {
		return
	}
	var req domain.UpdateLabRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lab, err := h.labService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update lab")
		return
	}
	respondJSON(w, http.StatusOK, lab)
}

// UpdateSettings godoc
// @Summary Update lab settings
// @Description Changes inventory behaviour such as counting only sealed vials, the expiry warning window, QC document requirement and storage tracking
// @Tags Labs
// @Accept json
// @Produce json
// @Param id path string true "Lab ID"
// @Param request body domain.UpdateLabSettingsRequest true "Settings"
// @Success 200 {object} domain.LabDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /labs/{id}/settings [patch]
func (h *LabHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lab")
	if !ok {
		return
	}
	var req domain.UpdateLabSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lab, err := h.labService.UpdateSettings(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update lab settings")
		return
	}
	respondJSON(w, http.StatusOK, lab)
}

// Suspend godoc
// @Summary Suspend lab
// @Description Blocks login for every user of the lab
// @Tags Labs
// @Produce json
// @Param id path string true "Lab ID"
// @Success 200 {object} domain.LabDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /labs/{id}/suspend [post]
func (h *LabHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lab")
	if !ok {
		return
	}
	lab, err := h.labService.Suspend(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "suspend lab")
		return
	}
	respondJSON(w, http.StatusOK, lab)
}

// Reactivate godoc
// @Summary Reactivate lab
// @Tags Labs
// @Produce json
// @Param id path string true "Lab ID"
// @Success 200 {object} domain.LabDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /labs/{id}/reactivate [post]
func (h *LabHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lab")
	if !ok {
		return
	}
	lab, err := h.labService.Reactivate(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "reactivate lab")
		return
	}
	respondJSON(w, http.StatusOK, lab)
}
