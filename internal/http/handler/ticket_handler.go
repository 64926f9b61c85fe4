package handler

import (
	"net/http"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// TicketHandler serves support tickets
type TicketHandler struct {
	ticketService *service.TicketService
	logger        *zap.Logger
}

func NewTicketHandler(ticketService *service.TicketService, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		logger:        logger,
	}
}

// List godoc
// @Summary List support tickets
// @Tags Tickets
// @Produce json
// @Param status query string false "Filter by status" Enums(open, in_progress, resolved, closed)
// @Success 200 {array} domain.TicketDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /tickets [get]
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.TicketStatus
	if s := r.URL.Query().Get("status"); s != "" {
		ts := domain.TicketStatus(s)
		if !ts.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid ticket status")
			return
		}
		status = &ts
	}

	tickets, err := h.ticketService.List(r.Context(), status)
	if err != nil {
		handleServiceError(w, h.logger, err, "list tickets")
		return
	}
	respondJSON(w, http.StatusOK, tickets)
}

// Create godoc
// @Summary Open a support ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body domain.CreateTicketRequest true "Ticket"
// @Success 201 {object} domain.TicketDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /tickets [post]
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.ticketService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create ticket")
		return
	}
	respondJSON(w, http.StatusCreated, ticket)
}

// UpdateStatus godoc
// @Summary Change ticket status
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body domain.UpdateTicketStatusRequest true "Status"
// @Success 200 {object} domain.TicketDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tickets/{id}/status [patch]
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "ticket")
	if !ok {
		return
	}
	var req domain.UpdateTicketStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update ticket")
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// AddComment godoc
// @Summary Comment on a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body domain.CreateTicketCommentRequest true "Comment"
// @Success 201 {object} domain.TicketDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "ticket")
	if !ok {
		return
	}
	var req domain.CreateTicketCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.ticketService.AddComment(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "add comment")
		return
	}
	respondJSON(w, http.StatusCreated, ticket)
}
