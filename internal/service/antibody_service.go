package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stockLevel aggregates the vials of one antibody
type stockLevel struct {
	Counts   domain.VialCountsDTO
	Stock    int64
	Approved int64
}

// computeStock folds grouped vial counts into per-antibody stock levels.
// Stock counts sealed vials of non-archived lots, plus opened vials when the
// lab does not restrict counting to sealed stock. Approved stock is the same
// restricted to QC-approved lots.
func computeStock(rows []repository.StockRow, settings domain.LabSettings) map[uuid.UUID]*stockLevel {
	levels := make(map[uuid.UUID]*stockLevel)
	for _, row := range rows {
		level, ok := levels[row.AntibodyID]
		if !ok {
			level = &stockLevel{}
			levels[row.AntibodyID] = level
		}
		addCount(&level.Counts, row.Status, row.Count)

		if row.IsArchived || !countsAsStock(row.Status, settings) {
			continue
		}
		level.Stock += row.Count
		if row.QCStatus == domain.QCStatusApproved {
			level.Approved += row.Count
		}
	}
	return levels
}

// lotCounts folds grouped vial counts into per-lot status counts
func lotCounts(rows []repository.StockRow) map[uuid.UUID]*domain.VialCountsDTO {
	counts := make(map[uuid.UUID]*domain.VialCountsDTO)
	for _, row := range rows {
		c, ok := counts[row.LotID]
		if !ok {
			c = &domain.VialCountsDTO{}
			counts[row.LotID] = c
		}
		addCount(c, row.Status, row.Count)
	}
	return counts
}

func addCount(c *domain.VialCountsDTO, status domain.VialStatus, n int64) {
	switch status {
	case domain.VialStatusSealed:
		c.Sealed += n
	case domain.VialStatusOpened:
		c.Opened += n
	case domain.VialStatusDepleted:
		c.Depleted += n
	}
	c.Total += n
}

func countsAsStock(status domain.VialStatus, settings domain.LabSettings) bool {
	if status == domain.VialStatusSealed {
		return true
	}
	return status == domain.VialStatusOpened && !settings.SealedCountsOnly
}

// applyStock fills the stock fields of an antibody DTO
func applyStock(dto *domain.AntibodyDTO, antibody *domain.Antibody, level *stockLevel) {
	if level != nil {
		dto.Counts = level.Counts
		dto.StockCount = level.Stock
		dto.ApprovedStockCount = level.Approved
	}
	if antibody.LowStockThreshold != nil {
		dto.IsLowStock = dto.StockCount <= int64(*antibody.LowStockThreshold)
	}
	if antibody.ApprovedLowThreshold != nil {
		dto.IsApprovedLow = dto.ApprovedStockCount <= int64(*antibody.ApprovedLowThreshold)
	}
}

type AntibodyService struct {
	db                  *gorm.DB
	antibodyRepo        *repository.AntibodyRepository
	vialRepo            *repository.VialRepository
	labRepo             *repository.LabRepository
	fluorochromeRepo    *repository.FluorochromeRepository
	fluorochromeService *FluorochromeService
	auditService        *AuditLogService
	logger              *zap.Logger
}

func NewAntibodyService(
	db *gorm.DB,
	antibodyRepo *repository.AntibodyRepository,
	vialRepo *repository.VialRepository,
	labRepo *repository.LabRepository,
	fluorochromeRepo *repository.FluorochromeRepository,
	fluorochromeService *FluorochromeService,
	auditService *AuditLogService,
	logger *zap.Logger,
) *AntibodyService {
	return &AntibodyService{
		db:                  db,
		antibodyRepo:        antibodyRepo,
		vialRepo:            vialRepo,
		labRepo:             labRepo,
		fluorochromeRepo:    fluorochromeRepo,
		fluorochromeService: fluorochromeService,
		auditService:        auditService,
		logger:              logger,
	}
}

// List returns the antibodies of the active lab with vial counts and stock flags
func (s *AntibodyService) List(ctx context.Context, filter *repository.AntibodyFilter) ([]domain.AntibodyDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}

	antibodies, err := s.antibodyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list antibodies: %w", err)
	}
	return s.toDTOs(ctx, labID, antibodies)
}

// ListLowStock returns active antibodies of a lab that are low or approved-low
func (s *AntibodyService) ListLowStock(ctx context.Context, labID uuid.UUID) ([]domain.AntibodyDTO, error) {
	antibodies, err := s.antibodyRepo.ListByLab(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to list antibodies: %w", err)
	}
	dtos, err := s.toDTOs(ctx, labID, antibodies)
	if err != nil {
		return nil, err
	}
	low := make([]domain.AntibodyDTO, 0)
	for _, dto := range dtos {
		if dto.IsLowStock || dto.IsApprovedLow {
			low = append(low, dto)
		}
	}
	return low, nil
}

func (s *AntibodyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AntibodyDTO, error) {
	antibody, err := s.antibodyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAntibodyNotFound)
	}
	dtos, err := s.toDTOs(ctx, antibody.LabID, []domain.Antibody{*antibody})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *AntibodyService) toDTOs(ctx context.Context, labID uuid.UUID, antibodies []domain.Antibody) ([]domain.AntibodyDTO, error) {
	settings, err := loadLabSettings(ctx, s.labRepo, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lab settings: %w", err)
	}
	rows, err := s.vialRepo.StockRows(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to count vials: %w", err)
	}
	colors, err := s.fluorochromeRepo.ColorsByName(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fluorochromes: %w", err)
	}

	levels := computeStock(rows, settings)
	dtos := make([]domain.AntibodyDTO, len(antibodies))
	for i := range antibodies {
		a := &antibodies[i]
		dtos[i] = mapper.ToAntibodyDTO(a, colors[strings.ToLower(a.Fluorochrome)])
		applyStock(&dtos[i], a, levels[a.ID])
	}
	return dtos, nil
}

// Create adds an antibody, creating its fluorochrome with a default color when the lab has none by that name
func (s *AntibodyService) Create(ctx context.Context, req *domain.CreateAntibodyRequest) (*domain.AntibodyDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}

	designation := req.Designation
	if designation == "" {
		designation = domain.DesignationRUO
	}

	antibody := &domain.Antibody{
		LabID:                labID,
		Target:               strings.TrimSpace(req.Target),
		Fluorochrome:         strings.TrimSpace(req.Fluorochrome),
		Clone:                strings.TrimSpace(req.Clone),
		Vendor:               strings.TrimSpace(req.Vendor),
		CatalogNumber:        strings.TrimSpace(req.CatalogNumber),
		Designation:          designation,
		StabilityDays:        req.StabilityDays,
		LowStockThreshold:    req.LowStockThreshold,
		ApprovedLowThreshold: req.ApprovedLowThreshold,
		IsActive:             true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, _, err := s.fluorochromeService.ensure(ctx, tx, labID, antibody.Fluorochrome, "")
		if err != nil {
			return err
		}
		// Reuse the stored spelling so lookups stay consistent
		antibody.Fluorochrome = f.Name

		if err := s.antibodyRepo.WithTx(tx).Create(ctx, antibody); err != nil {
			return fmt.Errorf("failed to create antibody: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(labID),
			Action:     domain.ActionAntibodyCreate,
			EntityType: domain.EntityAntibody,
			EntityID:   uuidPtr(antibody.ID),
			After:      mapper.ToAntibodyDTO(antibody, ""),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, antibody.ID)
}

// Update applies the provided fields. Stability <= 0 clears it; a threshold of -1
// clears it while 0 is kept as a threshold.
func (s *AntibodyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAntibodyRequest) (*domain.AntibodyDTO, error) {
	antibody, err := s.antibodyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAntibodyNotFound)
	}
	before := mapper.ToAntibodyDTO(antibody, "")

	if req.Target != nil {
		antibody.Target = strings.TrimSpace(*req.Target)
	}
	if req.Clone != nil {
		antibody.Clone = strings.TrimSpace(*req.Clone)
	}
	if req.Vendor != nil {
		antibody.Vendor = strings.TrimSpace(*req.Vendor)
	}
	if req.CatalogNumber != nil {
		antibody.CatalogNumber = strings.TrimSpace(*req.CatalogNumber)
	}
	if req.Designation != nil {
		antibody.Designation = *req.Designation
	}
	if req.StabilityDays != nil {
		antibody.StabilityDays = optionalPositive(*req.StabilityDays)
	}
	if req.LowStockThreshold != nil {
		antibody.LowStockThreshold = optionalThreshold(*req.LowStockThreshold)
	}
	if req.ApprovedLowThreshold != nil {
		antibody.ApprovedLowThreshold = optionalThreshold(*req.ApprovedLowThreshold)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Fluorochrome != nil {
			f, _, err := s.fluorochromeService.ensure(ctx, tx, antibody.LabID, *req.Fluorochrome, "")
			if err != nil {
				return err
			}
			antibody.Fluorochrome = f.Name
		}
		if err := s.antibodyRepo.WithTx(tx).Update(ctx, antibody); err != nil {
			return fmt.Errorf("failed to update antibody: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(antibody.LabID),
			Action:     domain.ActionAntibodyUpdate,
			EntityType: domain.EntityAntibody,
			EntityID:   uuidPtr(antibody.ID),
			Before:     before,
			After:      mapper.ToAntibodyDTO(antibody, ""),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, antibody.ID)
}

// Archive hides the antibody from default listings; its lots and vials are kept
func (s *AntibodyService) Archive(ctx context.Context, id uuid.UUID) (*domain.AntibodyDTO, error) {
	antibody, err := s.antibodyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrAntibodyNotFound)
	}
	antibody.IsActive = false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.antibodyRepo.WithTx(tx).Update(ctx, antibody); err != nil {
			return fmt.Errorf("failed to archive antibody: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(antibody.LabID),
			Action:     domain.ActionAntibodyArchive,
			EntityType: domain.EntityAntibody,
			EntityID:   uuidPtr(antibody.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, antibody.ID)
}

func optionalPositive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

// optionalThreshold keeps zero, which means "low only when empty"; negatives clear it
func optionalThreshold(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
