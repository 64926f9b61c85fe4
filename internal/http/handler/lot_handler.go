package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// LotHandler handles lot receiving, QC and lifecycle endpoints
type LotHandler struct {
	lotService *service.LotService
	logger     *zap.Logger
}

func NewLotHandler(lotService *service.LotService, logger *zap.Logger) *LotHandler {
	return &LotHandler{
		lotService: lotService,
		logger:     logger,
	}
}

// List godoc
// @Summary List lots
// @Description Lists lots of the active lab with vial counts
// @Tags Lots
// @Produce json
// @Param antibodyId query string false "Filter by antibody"
// @Param qcStatus query string false "Filter by QC status" Enums(pending, approved, failed)
// @Param includeArchived query bool false "Include archived lots"
// @Success 200 {array} domain.LotDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lots [get]
func (h *LotHandler) List(w http.ResponseWriter, r *http.Request) {
	antibodyID, err := parseUUIDQuery(r, "antibodyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid antibody ID format")
		return
	}
	filter := &repository.LotFilter{
		AntibodyID:      antibodyID,
		IncludeArchived: parseBoolQuery(r, "includeArchived"),
	}
	if status := r.URL.Query().Get("qcStatus"); status != "" {
		qc := domain.QCStatus(status)
		if !qc.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid QC status")
			return
		}
		filter.QCStatus = &qc
	}

	lots, err := h.lotService.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err, "list lots")
		return
	}
	respondJSON(w, http.StatusOK, lots)
}

// FindByBarcode godoc
// @Summary Look up lots by scanned code
// @Description Matches the vendor barcode first, then the lot number. An empty list means nothing matched.
// @Tags Lots
// @Produce json
// @Param barcode path string true "Scanned barcode or lot number"
// @Success 200 {array} domain.LotDTO
// @Security BearerAuth
// @Router /lots/barcode/{barcode} [get]
func (h *LotHandler) FindByBarcode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "barcode"))
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Barcode is required")
		return
	}

	lots, err := h.lotService.FindByBarcode(r.Context(), code)
	if err != nil {
		handleServiceError(w, h.logger, err, "look up barcode")
		return
	}
	respondJSON(w, http.StatusOK, lots)
}

// Get godoc
// @Summary Get lot
// @Tags Lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} domain.LotDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /lots/{id} [get]
func (h *LotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	lot, err := h.lotService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get lot")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

// Create godoc
// @Summary Receive a new lot
// @Description Creates the lot with its sealed vials, placing them in the given storage unit when storage is enabled
// @Tags Lots
// @Accept json
// @Produce json
// @Param request body domain.CreateLotRequest true "Lot"
// @Success 201 {object} domain.LotWithVialsDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /lots [post]
func (h *LotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lot, err := h.lotService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create lot")
		return
	}
	respondJSON(w, http.StatusCreated, lot)
}

// Receive godoc
// @Summary Receive more vials
// @Tags Lots
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param request body domain.ReceiveVialsRequest true "Vials"
// @Success 201 {object} domain.LotWithVialsDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/vials [post]
func (h *LotHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	var req domain.ReceiveVialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lot, err := h.lotService.Receive(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "receive vials")
		return
	}
	respondJSON(w, http.StatusCreated, lot)
}

// Update godoc
// @Summary Update lot
// @Tags Lots
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param request body domain.UpdateLotRequest true "Changes"
// @Success 200 {object} domain.LotDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id} [patch]
func (h *LotHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	var req domain.UpdateLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lot, err := h.lotService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update lot")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

// UpdateQCStatus godoc
// @Summary Set lot QC status
// @Description Approving may require a QC document depending on lab settings
// @Tags Lots
// @Accept json
// @Produce json
// @Param id path string true "Lot ID"
// @Param request body domain.UpdateQCStatusRequest true "Status"
// @Success 200 {object} domain.LotDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/qc [patch]
func (h *LotHandler) UpdateQCStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	var req domain.UpdateQCStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lot, err := h.lotService.UpdateQCStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update QC status")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

// DepleteAll godoc
// @Summary Deplete every vial of a lot
// @Tags Lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} domain.LotDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/deplete-all [post]
func (h *LotHandler) DepleteAll(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	lot, err := h.lotService.DepleteAll(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "deplete lot")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

// Archive godoc
// @Summary Archive lot
// @Description Archives the lot and its remaining vials, freeing their storage cells
// @Tags Lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} domain.LotDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/archive [post]
func (h *LotHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	lot, err := h.lotService.Archive(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "archive lot")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}
