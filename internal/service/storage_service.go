package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StorageService manages storage units, their grids and vial placement
type StorageService struct {
	db               *gorm.DB
	storageRepo      *repository.StorageRepository
	vialRepo         *repository.VialRepository
	labRepo          *repository.LabRepository
	fluorochromeRepo *repository.FluorochromeRepository
	auditService     *AuditLogService
	logger           *zap.Logger
}

func NewStorageService(
	db *gorm.DB,
	storageRepo *repository.StorageRepository,
	vialRepo *repository.VialRepository,
	labRepo *repository.LabRepository,
	fluorochromeRepo *repository.FluorochromeRepository,
	auditService *AuditLogService,
	logger *zap.Logger,
) *StorageService {
	return &StorageService{
		db:               db,
		storageRepo:      storageRepo,
		vialRepo:         vialRepo,
		labRepo:          labRepo,
		fluorochromeRepo: fluorochromeRepo,
		auditService:     auditService,
		logger:           logger,
	}
}

func (s *StorageService) ListUnits(ctx context.Context, includeInactive bool) ([]domain.StorageUnitDTO, error) {
	if _, err := requireLab(ctx); err != nil {
		return nil, err
	}
	units, err := s.storageRepo.ListUnits(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage units: %w", err)
	}

	ids := make([]uuid.UUID, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	occupied, err := s.vialRepo.OccupiedCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count stored vials: %w", err)
	}

	dtos := make([]domain.StorageUnitDTO, len(units))
	for i := range units {
		dtos[i] = mapper.ToStorageUnitDTO(&units[i], occupied[units[i].ID])
	}
	return dtos, nil
}

// CreateUnit adds a unit and all of its cells
func (s *StorageService) CreateUnit(ctx context.Context, req *domain.CreateStorageUnitRequest) (*domain.StorageUnitDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireStorageEnabled(ctx, labID); err != nil {
		return nil, err
	}

	unit := &domain.StorageUnit{
		LabID:       labID,
		Name:        strings.TrimSpace(req.Name),
		Rows:        req.Rows,
		Cols:        req.Cols,
		Temperature: strings.TrimSpace(req.Temperature),
		IsActive:    true,
		IsTemporary: req.IsTemporary,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.storageRepo.WithTx(tx).CreateUnit(ctx, unit); err != nil {
			return fmt.Errorf("failed to create storage unit: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(labID),
			Action:     domain.ActionStorageCreate,
			EntityType: domain.EntityStorageUnit,
			EntityID:   uuidPtr(unit.ID),
			After:      mapper.ToStorageUnitDTO(unit, 0),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToStorageUnitDTO(unit, 0)
	return &dto, nil
}

// UpdateUnit renames, resizes or deactivates a unit. Shrinking is refused
// while any removed cell holds a vial; the check runs in the resize transaction.
func (s *StorageService) UpdateUnit(ctx context.Context, id uuid.UUID, req *domain.UpdateStorageUnitRequest) (*domain.StorageUnitDTO, error) {
	unit, err := s.storageRepo.GetUnit(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStorageUnitNotFound)
	}
	if err := s.requireStorageEnabled(ctx, unit.LabID); err != nil {
		return nil, err
	}
	occupied, err := s.vialRepo.CountInUnit(ctx, unit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count stored vials: %w", err)
	}
	before := mapper.ToStorageUnitDTO(unit, occupied)
	oldRows, oldCols := unit.Rows, unit.Cols

	if req.Name != nil {
		unit.Name = strings.TrimSpace(*req.Name)
	}
	if req.Temperature != nil {
		unit.Temperature = strings.TrimSpace(*req.Temperature)
	}
	if req.IsActive != nil {
		unit.IsActive = *req.IsActive
	}
	if req.Rows != nil {
		unit.Rows = *req.Rows
	}
	if req.Cols != nil {
		unit.Cols = *req.Cols
	}
	resized := unit.Rows != oldRows || unit.Cols != oldCols
	shrunk := unit.Rows < oldRows || unit.Cols < oldCols

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.storageRepo.WithTx(tx).LockUnit(ctx, unit.ID); err != nil {
			return fmt.Errorf("failed to lock storage unit: %w", err)
		}
		if shrunk {
			outside, err := s.vialRepo.WithTx(tx).CountOutsideBounds(ctx, unit.ID, unit.Rows, unit.Cols)
			if err != nil {
				return fmt.Errorf("failed to check resize: %w", err)
			}
			if outside > 0 {
				return ErrResizeOccupied
			}
		}
		repo := s.storageRepo.WithTx(tx)
		if err := repo.UpdateUnit(ctx, unit); err != nil {
			return fmt.Errorf("failed to update storage unit: %w", err)
		}
		if resized {
			if err := repo.ResizeUnit(ctx, unit, oldRows, oldCols); err != nil {
				return fmt.Errorf("failed to resize storage unit: %w", err)
			}
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(unit.LabID),
			Action:     domain.ActionStorageUpdate,
			EntityType: domain.EntityStorageUnit,
			EntityID:   uuidPtr(unit.ID),
			Before:     before,
			After:      mapper.ToStorageUnitDTO(unit, occupied),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToStorageUnitDTO(unit, occupied)
	return &dto, nil
}

// DeleteUnit removes an empty unit
func (s *StorageService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.storageRepo.GetUnit(ctx, id)
	if err != nil {
		return notFound(err, ErrStorageUnitNotFound)
	}
	if err := s.requireStorageEnabled(ctx, unit.LabID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.storageRepo.WithTx(tx).LockUnit(ctx, unit.ID); err != nil {
			return fmt.Errorf("failed to lock storage unit: %w", err)
		}
		occupied, err := s.vialRepo.WithTx(tx).CountInUnit(ctx, unit.ID)
		if err != nil {
			return fmt.Errorf("failed to count stored vials: %w", err)
		}
		if occupied > 0 {
			return ErrUnitNotEmpty
		}
		if err := s.storageRepo.WithTx(tx).DeleteUnit(ctx, unit.ID); err != nil {
			return fmt.Errorf("failed to delete storage unit: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(unit.LabID),
			Action:     domain.ActionStorageDelete,
			EntityType: domain.EntityStorageUnit,
			EntityID:   uuidPtr(unit.ID),
			Before:     mapper.ToStorageUnitDTO(unit, 0),
		})
	})
}

// Grid returns every cell of a unit in row-major order with the vial it holds
func (s *StorageService) Grid(ctx context.Context, id uuid.UUID) (*domain.StorageGridDTO, error) {
	unit, err := s.storageRepo.GetUnit(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrStorageUnitNotFound)
	}
	cells, err := s.storageRepo.ListCells(ctx, unit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}

	cellIDs := make([]uuid.UUID, len(cells))
	for i, c := range cells {
		cellIDs[i] = c.ID
	}
	vials, err := s.vialRepo.ListInCells(ctx, cellIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored vials: %w", err)
	}
	colors, err := s.fluorochromeRepo.ColorsByName(ctx, unit.LabID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fluorochromes: %w", err)
	}

	byCell := make(map[uuid.UUID]*domain.Vial, len(vials))
	for i := range vials {
		if vials[i].LocationCellID != nil {
			byCell[*vials[i].LocationCellID] = &vials[i]
		}
	}

	grid := &domain.StorageGridDTO{
		Unit:  mapper.ToStorageUnitDTO(unit, int64(len(vials))),
		Cells: make([]domain.StorageCellDTO, len(cells)),
	}
	for i, c := range cells {
		grid.Cells[i] = domain.StorageCellDTO{ID: c.ID, Row: c.Row, Col: c.Col, Label: c.Label}
		if v, ok := byCell[c.ID]; ok {
			grid.Cells[i].Vial = toGridVial(v, colors)
		}
	}
	return grid, nil
}

func toGridVial(v *domain.Vial, colors map[string]string) *domain.GridVialDTO {
	dto := &domain.GridVialDTO{
		ID:             v.ID,
		Status:         v.Status,
		AntibodyID:     v.AntibodyID,
		LotID:          v.LotID,
		OpenExpiration: mapper.FormatTimestamp(v.OpenExpiration),
	}
	if v.Lot != nil {
		dto.LotNumber = v.Lot.LotNumber
		dto.QCStatus = v.Lot.QCStatus
		dto.ExpirationDate = mapper.FormatDate(v.Lot.ExpirationDate)
		if a := v.Lot.Antibody; a != nil {
			dto.AntibodyTarget = a.Target
			dto.AntibodyFluorochrome = a.Fluorochrome
			dto.Color = colors[strings.ToLower(a.Fluorochrome)]
		}
	}
	return dto
}

// Search lists where the stored vials of an antibody are
func (s *StorageService) Search(ctx context.Context, antibodyID uuid.UUID) ([]domain.VialLocationDTO, error) {
	if _, err := requireLab(ctx); err != nil {
		return nil, err
	}
	vials, err := s.vialRepo.ListStored(ctx, antibodyID)
	if err != nil {
		return nil, fmt.Errorf("failed to search vials: %w", err)
	}

	unitIDs := make([]uuid.UUID, 0, len(vials))
	seen := make(map[uuid.UUID]bool)
	for _, v := range vials {
		if v.LocationCell != nil && !seen[v.LocationCell.StorageUnitID] {
			seen[v.LocationCell.StorageUnitID] = true
			unitIDs = append(unitIDs, v.LocationCell.StorageUnitID)
		}
	}
	units, err := s.storageRepo.GetUnitsByIDs(ctx, unitIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage units: %w", err)
	}

	locations := make([]domain.VialLocationDTO, 0, len(vials))
	for _, v := range vials {
		if v.LocationCell == nil {
			continue
		}
		loc := domain.VialLocationDTO{
			VialID:          v.ID,
			LotID:           v.LotID,
			Status:          v.Status,
			StorageUnitID:   v.LocationCell.StorageUnitID,
			StorageUnitName: units[v.LocationCell.StorageUnitID].Name,
			CellID:          v.LocationCell.ID,
			CellLabel:       v.LocationCell.Label,
		}
		if v.Lot != nil {
			loc.LotNumber = v.Lot.LotNumber
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// placementTarget loads a unit that vials may be placed in
func (s *StorageService) placementTarget(ctx context.Context, unitID uuid.UUID) (*domain.StorageUnit, error) {
	unit, err := s.storageRepo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, notFound(err, ErrStorageUnitNotFound)
	}
	if !unit.IsActive {
		return nil, ErrUnitInactive
	}
	if err := s.requireStorageEnabled(ctx, unit.LabID); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *StorageService) requireStorageEnabled(ctx context.Context, labID uuid.UUID) error {
	settings, err := loadLabSettings(ctx, s.labRepo, labID)
	if err != nil {
		return fmt.Errorf("failed to load lab settings: %w", err)
	}
	if !settings.StorageEnabled {
		return ErrStorageDisabled
	}
	return nil
}

// freeCells returns the cells of a unit, row-major, that hold no vial.
// Cells held by vials in releasing count as free.
func (s *StorageService) freeCells(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, releasing map[uuid.UUID]bool) ([]domain.StorageCell, error) {
	if err := s.storageRepo.WithTx(tx).LockUnit(ctx, unitID); err != nil {
		return nil, fmt.Errorf("failed to lock storage unit: %w", err)
	}
	cells, err := s.storageRepo.WithTx(tx).ListCells(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}
	cellIDs := make([]uuid.UUID, len(cells))
	for i, c := range cells {
		cellIDs[i] = c.ID
	}
	stored, err := s.vialRepo.WithTx(tx).ListInCells(ctx, cellIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored vials: %w", err)
	}
	taken := make(map[uuid.UUID]bool, len(stored))
	for _, v := range stored {
		if v.LocationCellID != nil && !releasing[v.ID] {
			taken[*v.LocationCellID] = true
		}
	}

	free := make([]domain.StorageCell, 0, len(cells))
	for _, c := range cells {
		if !taken[c.ID] {
			free = append(free, c)
		}
	}
	return free, nil
}

// placeNewVials assigns the first free cells of a unit to vials that are about to be created
func (s *StorageService) placeNewVials(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, vials []domain.Vial) error {
	free, err := s.freeCells(ctx, tx, unitID, nil)
	if err != nil {
		return err
	}
	if len(free) < len(vials) {
		return fmt.Errorf("%w: %d free, %d needed", ErrInsufficientSpace, len(free), len(vials))
	}
	for i := range vials {
		cellID := free[i].ID
		vials[i].LocationCellID = &cellID
	}
	return nil
}

// newVials builds quantity sealed vials for a lot
func newVials(lot *domain.Lot, quantity int, receivedAt time.Time) []domain.Vial {
	vials := make([]domain.Vial, quantity)
	for i := range vials {
		vials[i] = domain.Vial{
			LabID:      lot.LabID,
			LotID:      lot.ID,
			AntibodyID: lot.AntibodyID,
			Status:     domain.VialStatusSealed,
			ReceivedAt: receivedAt,
		}
	}
	return vials
}
