package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VialService handles the lifecycle and placement of individual vials
type VialService struct {
	db             *gorm.DB
	vialRepo       *repository.VialRepository
	storageRepo    *repository.StorageRepository
	storageService *StorageService
	auditService   *AuditLogService
	logger         *zap.Logger
	now            func() time.Time
}

func NewVialService(
	db *gorm.DB,
	vialRepo *repository.VialRepository,
	storageRepo *repository.StorageRepository,
	storageService *StorageService,
	auditService *AuditLogService,
	logger *zap.Logger,
) *VialService {
	return &VialService{
		db:             db,
		vialRepo:       vialRepo,
		storageRepo:    storageRepo,
		storageService: storageService,
		auditService:   auditService,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *VialService) List(ctx context.Context, filter *repository.VialFilter) ([]domain.VialDTO, error) {
	if _, err := requireLab(ctx); err != nil {
		return nil, err
	}
	vials, err := s.vialRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vials: %w", err)
	}
	return mapper.ToVialDTOs(vials, s.now()), nil
}

func (s *VialService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VialDTO, error) {
	vial, err := s.vialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVialNotFound)
	}
	dto := mapper.ToVialDTO(vial, s.now())
	return &dto, nil
}

// Open marks a sealed vial as opened and starts its stability window. The
// vial keeps its cell. Vials of lots that are not QC approved need force,
// which only QC approvers may use.
func (s *VialService) Open(ctx context.Context, id uuid.UUID, req *domain.OpenVialRequest) (*domain.VialDTO, error) {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	vial, err := s.vialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVialNotFound)
	}
	if vial.Status != domain.VialStatusSealed {
		return nil, ErrVialNotSealed
	}
	if req.CellID != nil && (vial.LocationCellID == nil || *vial.LocationCellID != *req.CellID) {
		return nil, ErrCellMismatch
	}

	note := ""
	if vial.Lot != nil && vial.Lot.QCStatus != domain.QCStatusApproved {
		if !req.Force {
			return nil, ErrQCNotApproved
		}
		if !userCtx.HasPermission(auth.PermissionQCApprove) {
			return nil, ErrPermissionDenied
		}
		note = fmt.Sprintf("opened with QC status %s", vial.Lot.QCStatus)
	}

	before := mapper.ToVialDTO(vial, s.now())
	now := s.now().UTC()
	vial.Status = domain.VialStatusOpened
	vial.OpenedAt = &now
	vial.OpenedBy = actorID(ctx)
	vial.OpenExpiration = nil
	if vial.Lot != nil && vial.Lot.Antibody != nil && vial.Lot.Antibody.StabilityDays != nil {
		expires := now.AddDate(0, 0, *vial.Lot.Antibody.StabilityDays)
		vial.OpenExpiration = &expires
	}

	if err := s.save(ctx, vial, domain.ActionVialOpen, before, note); err != nil {
		return nil, err
	}
	dto := mapper.ToVialDTO(vial, s.now())
	return &dto, nil
}

// Deplete marks an in-use vial as used up and frees its cell
func (s *VialService) Deplete(ctx context.Context, id uuid.UUID) (*domain.VialDTO, error) {
	vial, err := s.vialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVialNotFound)
	}
	if !vial.Status.IsInUse() {
		return nil, ErrVialNotInUse
	}

	before := mapper.ToVialDTO(vial, s.now())
	now := s.now().UTC()
	vial.Status = domain.VialStatusDepleted
	vial.DepletedAt = &now
	vial.DepletedBy = actorID(ctx)
	vial.LocationCellID = nil
	vial.LocationCell = nil

	if err := s.save(ctx, vial, domain.ActionVialDeplete, before, ""); err != nil {
		return nil, err
	}
	dto := mapper.ToVialDTO(vial, s.now())
	return &dto, nil
}

// ReturnToStorage puts an opened vial that left storage back into a free cell
func (s *VialService) ReturnToStorage(ctx context.Context, id uuid.UUID, req *domain.ReturnToStorageRequest) (*domain.VialDTO, error) {
	vial, err := s.vialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrVialNotFound)
	}
	if vial.Status != domain.VialStatusOpened {
		return nil, ErrVialNotOpened
	}

	cell, err := s.storageRepo.GetCell(ctx, req.CellID)
	if err != nil {
		return nil, notFound(err, ErrCellNotFound)
	}
	unit, err := s.storageService.placementTarget(ctx, cell.StorageUnitID)
	if err != nil {
		return nil, err
	}
	if unit.LabID != vial.LabID {
		return nil, ErrCellNotFound
	}

	before := mapper.ToVialDTO(vial, s.now())
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		free, err := s.storageService.freeCells(ctx, tx, unit.ID, map[uuid.UUID]bool{vial.ID: true})
		if err != nil {
			return err
		}
		if !containsCell(free, cell.ID) {
			return ErrCellOccupied
		}

		vialRepo := s.vialRepo.WithTx(tx)
		if err := vialRepo.ClearLocations(ctx, []uuid.UUID{vial.ID}); err != nil {
			return fmt.Errorf("failed to clear location: %w", err)
		}
		if err := vialRepo.SetLocation(ctx, vial.ID, &cell.ID); err != nil {
			return fmt.Errorf("failed to set location: %w", err)
		}
		vial.LocationCellID = &cell.ID
		vial.LocationCell = cell

		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(vial.LabID),
			Action:     domain.ActionVialReturn,
			EntityType: domain.EntityVial,
			EntityID:   uuidPtr(vial.ID),
			Note:       fmt.Sprintf("%s %s", unit.Name, cell.Label),
			Before:     before,
			After:      mapper.ToVialDTO(vial, s.now()),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToVialDTO(vial, s.now())
	return &dto, nil
}

// Move relocates vials into a storage unit in one transaction.
//
//   - auto: the first free cells in row-major order
//   - start: consecutive free cells scanning row-major from the start cell, without wrapping
//   - pick: exactly the given cells, one per vial, in order
//
// Cells currently held by the moved vials count as free.
func (s *VialService) Move(ctx context.Context, req *domain.MoveVialsRequest) ([]domain.VialDTO, error) {
	if len(req.VialIDs) == 0 || len(req.VialIDs) > domain.MaxVialsPerRequest {
		return nil, ErrInvalidInput
	}
	seen := make(map[uuid.UUID]bool, len(req.VialIDs))
	for _, id := range req.VialIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: vial %s listed twice", ErrInvalidInput, id)
		}
		seen[id] = true
	}

	unit, err := s.storageService.placementTarget(ctx, req.TargetUnitID)
	if err != nil {
		return nil, err
	}

	vials, err := s.vialRepo.GetByIDs(ctx, req.VialIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load vials: %w", err)
	}
	if len(vials) != len(req.VialIDs) {
		return nil, ErrVialNotFound
	}
	releasing := make(map[uuid.UUID]bool, len(vials))
	for _, v := range vials {
		if v.LabID != unit.LabID {
			return nil, ErrVialNotFound
		}
		if !v.Status.IsInUse() {
			return nil, fmt.Errorf("%w: vial %s", ErrVialNotInUse, v.ID)
		}
		releasing[v.ID] = true
	}

	now := s.now()
	befores := make([]domain.VialDTO, len(vials))
	for i := range vials {
		befores[i] = mapper.ToVialDTO(&vials[i], now)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		free, err := s.storageService.freeCells(ctx, tx, unit.ID, releasing)
		if err != nil {
			return err
		}
		targets, err := s.chooseCells(ctx, tx, unit.ID, req, free, len(vials))
		if err != nil {
			return err
		}

		vialRepo := s.vialRepo.WithTx(tx)
		if err := vialRepo.ClearLocations(ctx, req.VialIDs); err != nil {
			return fmt.Errorf("failed to clear locations: %w", err)
		}
		for i := range vials {
			cell := targets[i]
			if err := vialRepo.SetLocation(ctx, vials[i].ID, &cell.ID); err != nil {
				return fmt.Errorf("failed to place vial: %w", err)
			}
			vials[i].LocationCellID = &cell.ID
			vials[i].LocationCell = &cell

			err := s.auditService.Record(ctx, tx, AuditEntry{
				LabID:      uuidPtr(vials[i].LabID),
				Action:     domain.ActionVialMove,
				EntityType: domain.EntityVial,
				EntityID:   uuidPtr(vials[i].ID),
				Note:       fmt.Sprintf("%s %s", unit.Name, cell.Label),
				Before:     befores[i],
				After:      mapper.ToVialDTO(&vials[i], now),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vials moved",
		zap.String("unit_id", unit.ID.String()),
		zap.Int("count", len(vials)),
		zap.String("mode", string(req.Mode)))

	return mapper.ToVialDTOs(vials, now), nil
}

func (s *VialService) chooseCells(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, req *domain.MoveVialsRequest, free []domain.StorageCell, n int) ([]domain.StorageCell, error) {
	switch req.Mode {
	case domain.MoveModeAuto, "":
		if len(free) < n {
			return nil, fmt.Errorf("%w: %d free, %d needed", ErrInsufficientSpace, len(free), n)
		}
		return free[:n], nil

	case domain.MoveModeStart:
		if req.StartCellID == nil {
			return nil, ErrInvalidInput
		}
		start, err := s.storageRepo.WithTx(tx).GetCell(ctx, *req.StartCellID)
		if err != nil {
			return nil, notFound(err, ErrCellNotFound)
		}
		if start.StorageUnitID != unitID {
			return nil, ErrCellNotInUnit
		}
		return cellsFrom(free, start, n)

	case domain.MoveModePick:
		if len(req.CellIDs) != n {
			return nil, ErrCellCountMismatch
		}
		return pickCells(ctx, s.storageRepo.WithTx(tx), unitID, free, req.CellIDs)
	}
	return nil, ErrInvalidInput
}

// cellsFrom takes n free cells at or after start in row-major order
func cellsFrom(free []domain.StorageCell, start *domain.StorageCell, n int) ([]domain.StorageCell, error) {
	var picked []domain.StorageCell
	for _, c := range free {
		if c.Row < start.Row || (c.Row == start.Row && c.Col < start.Col) {
			continue
		}
		picked = append(picked, c)
		if len(picked) == n {
			return picked, nil
		}
	}
	return nil, fmt.Errorf("%w: %d free from %s, %d needed", ErrInsufficientSpace, len(picked), start.Label, n)
}

// pickCells resolves explicitly chosen cells, which must all be free and in the unit
func pickCells(ctx context.Context, storageRepo *repository.StorageRepository, unitID uuid.UUID, free []domain.StorageCell, cellIDs []uuid.UUID) ([]domain.StorageCell, error) {
	freeByID := make(map[uuid.UUID]domain.StorageCell, len(free))
	for _, c := range free {
		freeByID[c.ID] = c
	}

	picked := make([]domain.StorageCell, len(cellIDs))
	for i, id := range cellIDs {
		if c, ok := freeByID[id]; ok {
			picked[i] = c
			continue
		}
		cell, err := storageRepo.GetCell(ctx, id)
		if err != nil {
			return nil, notFound(err, ErrCellNotFound)
		}
		if cell.StorageUnitID != unitID {
			return nil, ErrCellNotInUnit
		}
		return nil, fmt.Errorf("%w: %s", ErrCellOccupied, cell.Label)
	}
	return picked, nil
}

func containsCell(cells []domain.StorageCell, id uuid.UUID) bool {
	for _, c := range cells {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *VialService) save(ctx context.Context, vial *domain.Vial, action string, before domain.VialDTO, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.vialRepo.WithTx(tx).Update(ctx, vial); err != nil {
			return fmt.Errorf("failed to update vial: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(vial.LabID),
			Action:     action,
			EntityType: domain.EntityVial,
			EntityID:   uuidPtr(vial.ID),
			Note:       note,
			Before:     before,
			After:      mapper.ToVialDTO(vial, s.now()),
		})
	})
}
