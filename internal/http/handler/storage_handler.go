package handler

import (
	"net/http"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// StorageHandler manages storage units and their cell grids
type StorageHandler struct {
	storageService *service.StorageService
	logger         *zap.Logger
}

func NewStorageHandler(storageService *service.StorageService, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{
		storageService: storageService,
		logger:         logger,
	}
}

// ListUnits godoc
// @Summary List storage units
// @Tags Storage
// @Produce json
// @Param includeInactive query bool false "Include deactivated units"
// @Success 200 {array} domain.StorageUnitDTO
// @Security BearerAuth
// @Router /storage/units [get]
func (h *StorageHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.storageService.ListUnits(r.Context(), parseBoolQuery(r, "includeInactive"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list storage units")
		return
	}
	respondJSON(w, http.StatusOK, units)
}

// CreateUnit godoc
// @Summary Create storage unit
// @Description Creates a unit with a rows x cols grid of cells labelled A1, A2 and so on
// @Tags Storage
// @Accept json
// @Produce json
// @Param request body domain.CreateStorageUnitRequest true "Unit"
// @Success 201 {object} domain.StorageUnitDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /storage/units [post]
func (h *StorageHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateStorageUnitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	unit, err := h.storageService.CreateUnit(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create storage unit")
		return
	}
	respondJSON(w, http.StatusCreated, unit)
}

// UpdateUnit godoc
// @Summary Update storage unit
// @Description Renames or resizes a unit. Shrinking fails while a removed cell holds a vial.
// @Tags Storage
// @Accept json
// @Produce json
// @Param id path string true "Storage unit ID"
// @Param request body domain.UpdateStorageUnitRequest true "Changes"
// @Success 200 {object} domain.StorageUnitDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /storage/units/{id} [patch]
func (h *StorageHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "storage unit")
	if !ok {
		return
	}
	var req domain.UpdateStorageUnitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	unit, err := h.storageService.UpdateUnit(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update storage unit")
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

// DeleteUnit godoc
// @Summary Delete storage unit
// @Tags Storage
// @Param id path string true "Storage unit ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Unit still holds vials"
// @Security BearerAuth
// @Router /storage/units/{id} [delete]
func (h *StorageHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "storage unit")
	if !ok {
		return
	}
	if err := h.storageService.DeleteUnit(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete storage unit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Grid godoc
// @Summary Get storage grid
// @Description Returns the unit with every cell and the vial it holds
// @Tags Storage
// @Produce json
// @Param id path string true "Storage unit ID"
// @Success 200 {object} domain.StorageGridDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /storage/units/{id}/grid [get]
func (h *StorageHandler) Grid(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "storage unit")
	if !ok {
		return
	}
	grid, err := h.storageService.Grid(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get storage grid")
		return
	}
	respondJSON(w, http.StatusOK, grid)
}

// Search godoc
// @Summary Locate vials of an antibody
// @Tags Storage
// @Produce json
// @Param antibodyId query string true "Antibody ID"
// @Success 200 {array} domain.VialLocationDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /storage/search [get]
func (h *StorageHandler) Search(w http.ResponseWriter, r *http.Request) {
	antibodyID, err := parseUUIDQuery(r, "antibodyId")
	if err != nil || antibodyID == nil {
		respondWithError(w, http.StatusBadRequest, "A valid antibodyId is required")
		return
	}

	locations, err := h.storageService.Search(r.Context(), *antibodyID)
	if err != nil {
		handleServiceError(w, h.logger, err, "search storage")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}
