package handler

import (
	"net/http"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// VialHandler handles the lifecycle of individual vials
type VialHandler struct {
	vialService *service.VialService
	logger      *zap.Logger
}

func NewVialHandler(vialService *service.VialService, logger *zap.Logger) *VialHandler {
	return &VialHandler{
		vialService: vialService,
		logger:      logger,
	}
}

// List godoc
// @Summary List vials
// @Tags Vials
// @Produce json
// @Param lotId query string false "Filter by lot"
// @Param antibodyId query string false "Filter by antibody"
// @Param storageUnitId query string false "Filter by storage unit"
// @Param status query string false "Filter by status" Enums(sealed, opened, depleted, archived)
// @Success 200 {array} domain.VialDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /vials [get]
func (h *VialHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &repository.VialFilter{}
	var err error
	if filter.LotID, err = parseUUIDQuery(r, "lotId"); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lot ID format")
		return
	}
	if filter.AntibodyID, err = parseUUIDQuery(r, "antibodyId"); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid antibody ID format")
		return
	}
	if filter.StorageUnitID, err = parseUUIDQuery(r, "storageUnitId"); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid storage unit ID format")
		return
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.VialStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid vial status")
			return
		}
		filter.Status = &status
	}

	vials, err := h.vialService.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err, "list vials")
		return
	}
	respondJSON(w, http.StatusOK, vials)
}

// Get godoc
// @Summary Get vial
// @Tags Vials
// @Produce json
// @Param id path string true "Vial ID"
// @Success 200 {object} domain.VialDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /vials/{id} [get]
func (h *VialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "vial")
	if !ok {
		return
	}
	vial, err := h.vialService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get vial")
		return
	}
	respondJSON(w, http.StatusOK, vial)
}

// Open godoc
// @Summary Open vial
// @Description Opens a sealed vial and starts its open-stability clock. Vials of lots that are not QC approved need force, which requires QC approval rights.
// @Tags Vials
// @Accept json
// @Produce json
// @Param id path string true "Vial ID"
// @Param request body domain.OpenVialRequest false "Scan confirmation"
// @Success 200 {object} domain.VialDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /vials/{id}/open [post]
func (h *VialHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "vial")
	if !ok {
		return
	}
	var req domain.OpenVialRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	vial, err := h.vialService.Open(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "open vial")
		return
	}
	respondJSON(w, http.StatusOK, vial)
}

// Deplete godoc
// @Summary Deplete vial
// @Description Marks a vial used up and frees its storage cell
// @Tags Vials
// @Produce json
// @Param id path string true "Vial ID"
// @Success 200 {object} domain.VialDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /vials/{id}/deplete [post]
func (h *VialHandler) Deplete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "vial")
	if !ok {
		return
	}
	vial, err := h.vialService.Deplete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "deplete vial")
		return
	}
	respondJSON(w, http.StatusOK, vial)
}

// ReturnToStorage godoc
// @Summary Return opened vial to storage
// @Tags Vials
// @Accept json
// @Produce json
// @Param id path string true "Vial ID"
// @Param request body domain.ReturnToStorageRequest true "Target cell"
// @Success 200 {object} domain.VialDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /vials/{id}/return-to-storage [post]
func (h *VialHandler) ReturnToStorage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "vial")
	if !ok {
		return
	}
	var req domain.ReturnToStorageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vial, err := h.vialService.ReturnToStorage(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "return vial to storage")
		return
	}
	respondJSON(w, http.StatusOK, vial)
}

// Move godoc
// @Summary Move vials
// @Description Moves vials into a storage unit. Mode auto fills the first free cells, start fills from a given cell onwards and pick uses the listed cells in order.
// @Tags Vials
// @Accept json
// @Produce json
// @Param request body domain.MoveVialsRequest true "Move"
// @Success 200 {array} domain.VialDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /vials/move [post]
func (h *VialHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req domain.MoveVialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vials, err := h.vialService.Move(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "move vials")
		return
	}
	respondJSON(w, http.StatusOK, vials)
}
