package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/export"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
)

// priority ranks, most urgent first
const (
	severityExpiredLot = iota + 1
	severityExpiredOpenVial
	severityPendingQC
	severityLowStock
	severityApprovedLow
	severityExpiringLot
)

type DashboardService struct {
	labRepo         *repository.LabRepository
	lotRepo         *repository.LotRepository
	vialRepo        *repository.VialRepository
	antibodyService *AntibodyService
	lotService      *LotService
	logger          *zap.Logger
	now             func() time.Time
}

func NewDashboardService(
	labRepo *repository.LabRepository,
	lotRepo *repository.LotRepository,
	vialRepo *repository.VialRepository,
	antibodyService *AntibodyService,
	lotService *LotService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		labRepo:         labRepo,
		lotRepo:         lotRepo,
		vialRepo:        vialRepo,
		antibodyService: antibodyService,
		lotService:      lotService,
		logger:          logger,
		now:             time.Now,
	}
}

// Summary returns the badges and priority list of the active lab
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummaryDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}
	return s.SummaryForLab(ctx, labID)
}

// SummaryForLab computes the dashboard of one lab without request scoping.
// Expired and expiring lots only count while they still hold sealed or opened vials.
func (s *DashboardService) SummaryForLab(ctx context.Context, labID uuid.UUID) (*domain.DashboardSummaryDTO, error) {
	settings, err := loadLabSettings(ctx, s.labRepo, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lab settings: %w", err)
	}
	now := s.now().UTC()

	lots, err := s.lotRepo.ListActiveByLab(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	rows, err := s.vialRepo.StockRows(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to count vials: %w", err)
	}
	counts := lotCounts(rows)

	summary := &domain.DashboardSummaryDTO{
		LabID:          labID,
		ExpiryWarnDays: settings.ExpiryWarnDays,
		Priorities:     make([]domain.PriorityItemDTO, 0),
		GeneratedAt:    now.Format(time.RFC3339),
	}

	for i := range lots {
		lot := &lots[i]
		name := lotTitle(lot)

		if lot.QCStatus == domain.QCStatusPending {
			summary.PendingQC++
			summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
				Kind:       domain.PriorityPendingQC,
				Severity:   severityPendingQC,
				EntityType: domain.EntityLot,
				EntityID:   lot.ID,
				Title:      name,
				Detail:     "awaiting QC",
				DueDate:    mapper.FormatDate(lot.ExpirationDate),
			})
		}

		c, ok := counts[lot.ID]
		if !ok || c.Sealed+c.Opened == 0 {
			continue
		}
		switch {
		case lot.IsExpired(now):
			summary.ExpiredLots++
			summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
				Kind:       domain.PriorityExpiredLot,
				Severity:   severityExpiredLot,
				EntityType: domain.EntityLot,
				EntityID:   lot.ID,
				Title:      name,
				Detail:     fmt.Sprintf("expired, %d vials in use", c.Sealed+c.Opened),
				DueDate:    mapper.FormatDate(lot.ExpirationDate),
			})
		case lot.ExpiresWithin(now, settings.ExpiryWarnDays):
			summary.ExpiringLots++
			summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
				Kind:       domain.PriorityExpiringLot,
				Severity:   severityExpiringLot,
				EntityType: domain.EntityLot,
				EntityID:   lot.ID,
				Title:      name,
				Detail:     fmt.Sprintf("expires within %d days", settings.ExpiryWarnDays),
				DueDate:    mapper.FormatDate(lot.ExpirationDate),
			})
		}
	}

	opened, err := s.vialRepo.ListOpenedByLab(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opened vials: %w", err)
	}
	for i := range opened {
		vial := &opened[i]
		if !vial.IsOpenExpired(now) {
			continue
		}
		summary.ExpiredOpenVials++
		title := "opened vial"
		if vial.Lot != nil {
			title = lotTitle(vial.Lot)
		}
		detail := "open stability exceeded"
		if vial.LocationCell != nil {
			detail = fmt.Sprintf("open stability exceeded, cell %s", vial.LocationCell.Label)
		}
		summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
			Kind:       domain.PriorityExpiredOpenVial,
			Severity:   severityExpiredOpenVial,
			EntityType: domain.EntityVial,
			EntityID:   vial.ID,
			Title:      title,
			Detail:     detail,
			DueDate:    mapper.FormatDate(vial.OpenExpiration),
		})
	}

	low, err := s.antibodyService.ListLowStock(ctx, labID)
	if err != nil {
		return nil, err
	}
	for _, a := range low {
		if a.IsLowStock {
			summary.LowStock++
			summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
				Kind:       domain.PriorityLowStock,
				Severity:   severityLowStock,
				EntityType: domain.EntityAntibody,
				EntityID:   a.ID,
				Title:      a.DisplayName,
				Detail:     fmt.Sprintf("%d in stock", a.StockCount),
			})
		}
		if a.IsApprovedLow {
			summary.ApprovedLow++
			summary.Priorities = append(summary.Priorities, domain.PriorityItemDTO{
				Kind:       domain.PriorityApprovedLow,
				Severity:   severityApprovedLow,
				EntityType: domain.EntityAntibody,
				EntityID:   a.ID,
				Title:      a.DisplayName,
				Detail:     fmt.Sprintf("%d approved in stock", a.ApprovedStockCount),
			})
		}
	}

	sortPriorities(summary.Priorities)
	return summary, nil
}

// InventoryExport renders every antibody and lot of the active lab as XLSX
func (s *DashboardService) InventoryExport(ctx context.Context) ([]byte, error) {
	antibodies, err := s.antibodyService.List(ctx, &repository.AntibodyFilter{IncludeInactive: true})
	if err != nil {
		return nil, err
	}
	lots, err := s.lotService.List(ctx, &repository.LotFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	data, err := export.InventoryWorkbook(antibodies, lots)
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory export: %w", err)
	}
	return data, nil
}

// sortPriorities orders by severity, then earliest due date (undated last), then title
func sortPriorities(items []domain.PriorityItemDTO) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil && *a.DueDate != *b.DueDate:
			return *a.DueDate < *b.DueDate
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		}
		return a.Title < b.Title
	})
}

func lotTitle(lot *domain.Lot) string {
	if lot.Antibody != nil {
		return fmt.Sprintf("%s lot %s", lot.Antibody.DisplayName(), lot.LotNumber)
	}
	return "lot " + lot.LotNumber
}
