package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labaid/labaid-api/internal/export"
	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary godoc
// @Summary Get dashboard summary
// @Description Returns badge counts and the prioritized list of lots and antibodies that need attention
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummaryDTO
// @Failure 400 {object} domain.APIError "No lab selected"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get dashboard summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// InventoryExport godoc
// @Summary Export inventory
// @Description Downloads antibodies and lots of the active lab as an XLSX workbook
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/inventory/export [get]
func (h *DashboardHandler) InventoryExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardService.InventoryExport(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "export inventory")
		return
	}
	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	respondFile(w, export.ContentTypeXLSX, filename, data)
}
