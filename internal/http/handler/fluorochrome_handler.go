package handler

import (
	"net/http"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

type FluorochromeHandler struct {
	fluorochromeService *service.FluorochromeService
	logger              *zap.Logger
}

func NewFluorochromeHandler(fluorochromeService *service.FluorochromeService, logger *zap.Logger) *FluorochromeHandler {
	return &FluorochromeHandler{
		fluorochromeService: fluorochromeService,
		logger:              logger,
	}
}

// List godoc
// @Summary List fluorochromes
// @Tags Fluorochromes
// @Produce json
// @Success 200 {array} domain.FluorochromeDTO
// @Failure 400 {object} domain.APIError "No lab selected"
// @Security BearerAuth
// @Router /fluorochromes [get]
func (h *FluorochromeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.fluorochromeService.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "list fluorochromes")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary Create fluorochrome
// @Tags Fluorochromes
// @Accept json
// @Produce json
// @Param request body domain.CreateFluorochromeRequest true "Fluorochrome"
// @Success 201 {object} domain.FluorochromeDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /fluorochromes [post]
func (h *FluorochromeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFluorochromeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.fluorochromeService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create fluorochrome")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Change fluorochrome color
// @Tags Fluorochromes
// @Accept json
// @Produce json
// @Param id path string true "Fluorochrome ID"
// @Param request body domain.UpdateFluorochromeRequest true "Color"
// @Success 200 {object} domain.FluorochromeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /fluorochromes/{id} [patch]
func (h *FluorochromeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "fluorochrome")
	if !ok {
		return
	}
	var req domain.UpdateFluorochromeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.fluorochromeService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update fluorochrome")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete fluorochrome
// @Description Fails while an active antibody still uses the fluorochrome
// @Tags Fluorochromes
// @Param id path string true "Fluorochrome ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /fluorochromes/{id} [delete]
func (h *FluorochromeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "fluorochrome")
	if !ok {
		return
	}
	if err := h.fluorochromeService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete fluorochrome")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
