package handler

import (
	"net/http"
	"strings"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// AntibodyHandler serves the reagent catalog
type AntibodyHandler struct {
	antibodyService *service.AntibodyService
	logger          *zap.Logger
}

func NewAntibodyHandler(antibodyService *service.AntibodyService, logger *zap.Logger) *AntibodyHandler {
	return &AntibodyHandler{
		antibodyService: antibodyService,
		logger:          logger,
	}
}

// List godoc
// @Summary List antibodies
// @Description Lists antibodies of the active lab with vial counts and low stock flags
// @Tags Antibodies
// @Produce json
// @Param search query string false "Search target, fluorochrome, clone, vendor or catalog number"
// @Param designation query string false "Filter by designation" Enums(ruo, asr, ivd)
// @Param includeInactive query bool false "Include archived antibodies"
// @Param sortBy query string false "Sort field" Enums(target, fluorochrome, clone, vendor, createdAt, updatedAt)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {array} domain.AntibodyDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /antibodies [get]
func (h *AntibodyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &repository.AntibodyFilter{
		Search:          strings.TrimSpace(r.URL.Query().Get("search")),
		IncludeInactive: parseBoolQuery(r, "includeInactive"),
	}
	if d := r.URL.Query().Get("designation"); d != "" {
		designation := domain.AntibodyDesignation(strings.ToLower(d))
		if !designation.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid designation")
			return
		}
		filter.Designation = &designation
	}
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		filter.Sort = &repository.SortConfig{
			Field: sortBy,
			Order: repository.ParseSortOrder(r.URL.Query().Get("sortOrder")),
		}
	}

	antibodies, err := h.antibodyService.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err, "list antibodies")
		return
	}
	respondJSON(w, http.StatusOK, antibodies)
}

// Get godoc
// @Summary Get antibody
// @Tags Antibodies
// @Produce json
// @Param id path string true "Antibody ID"
// @Success 200 {object} domain.AntibodyDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /antibodies/{id} [get]
func (h *AntibodyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "antibody")
	if !ok {
		return
	}
	antibody, err := h.antibodyService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get antibody")
		return
	}
	respondJSON(w, http.StatusOK, antibody)
}

// Create godoc
// @Summary Create antibody
// @Description Creates an antibody; an unknown fluorochrome is added to the lab's list automatically
// @Tags Antibodies
// @Accept json
// @Produce json
// @Param request body domain.CreateAntibodyRequest true "Antibody"
// @Success 201 {object} domain.AntibodyDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /antibodies [post]
func (h *AntibodyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAntibodyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	antibody, err := h.antibodyService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create antibody")
		return
	}
	respondJSON(w, http.StatusCreated, antibody)
}

// Update godoc
// @Summary Update antibody
// @Description Partial update. A threshold of -1 clears it and a stabilityDays of 0 clears the open-vial stability.
// @Tags Antibodies
// @Accept json
// @Produce json
// @Param id path string true "Antibody ID"
// @Param request body domain.UpdateAntibodyRequest true "Changes"
// @Success 200 {object} domain.AntibodyDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /antibodies/{id} [patch]
func (h *AntibodyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "antibody")
	if !ok {
		return
	}
	var req domain.UpdateAntibodyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	antibody, err := h.antibodyService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update antibody")
		return
	}
	respondJSON(w, http.StatusOK, antibody)
}

// Archive godoc
// @Summary Archive antibody
// @Tags Antibodies
// @Produce json
// @Param id path string true "Antibody ID"
// @Success 200 {object} domain.AntibodyDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /antibodies/{id}/archive [post]
func (h *AntibodyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "antibody")
	if !ok {
		return
	}
	antibody, err := h.antibodyService.Archive(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "archive antibody")
		return
	}
	respondJSON(w, http.StatusOK, antibody)
}
