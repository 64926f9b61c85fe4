package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LotService manages lots, their QC state and vial intake
type LotService struct {
	db             *gorm.DB
	lotRepo        *repository.LotRepository
	antibodyRepo   *repository.AntibodyRepository
	vialRepo       *repository.VialRepository
	documentRepo   *repository.DocumentRepository
	labRepo        *repository.LabRepository
	storageService *StorageService
	auditService   *AuditLogService
	logger         *zap.Logger
	now            func() time.Time
}

func NewLotService(
	db *gorm.DB,
	lotRepo *repository.LotRepository,
	antibodyRepo *repository.AntibodyRepository,
	vialRepo *repository.VialRepository,
	documentRepo *repository.DocumentRepository,
	labRepo *repository.LabRepository,
	storageService *StorageService,
	auditService *AuditLogService,
	logger *zap.Logger,
) *LotService {
	return &LotService{
		db:             db,
		lotRepo:        lotRepo,
		antibodyRepo:   antibodyRepo,
		vialRepo:       vialRepo,
		documentRepo:   documentRepo,
		labRepo:        labRepo,
		storageService: storageService,
		auditService:   auditService,
		logger:         logger,
		now:            time.Now,
	}
}

// List returns lots of the active lab with vial and document counts
func (s *LotService) List(ctx context.Context, filter *repository.LotFilter) ([]domain.LotDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}
	lots, err := s.lotRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	return s.toDTOs(ctx, labID, lots)
}

func (s *LotService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LotDTO, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	dtos, err := s.toDTOs(ctx, lot.LabID, []domain.Lot{*lot})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// FindByBarcode resolves a scanned vendor barcode or lot number. No match is an empty list.
func (s *LotService) FindByBarcode(ctx context.Context, code string) ([]domain.LotDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidInput
	}
	lots, err := s.lotRepo.FindByBarcode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up barcode: %w", err)
	}
	if len(lots) == 0 {
		return []domain.LotDTO{}, nil
	}
	return s.toDTOs(ctx, labID, lots)
}

func (s *LotService) toDTOs(ctx context.Context, labID uuid.UUID, lots []domain.Lot) ([]domain.LotDTO, error) {
	rows, err := s.vialRepo.StockRows(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to count vials: %w", err)
	}
	counts := lotCounts(rows)

	ids := make([]uuid.UUID, len(lots))
	for i, l := range lots {
		ids[i] = l.ID
	}
	docs, err := s.documentRepo.CountsByLot(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	now := s.now()
	dtos := make([]domain.LotDTO, len(lots))
	for i := range lots {
		dtos[i] = mapper.ToLotDTO(&lots[i], now)
		if c, ok := counts[lots[i].ID]; ok {
			dtos[i].Counts = *c
		}
		d := docs[lots[i].ID]
		dtos[i].DocumentCount = d.Total
		dtos[i].HasQCDocument = d.QC > 0
	}
	return dtos, nil
}

// Create registers a lot and its vials. With a storage unit the vials are
// placed in its first free cells; if they do not fit nothing is created.
func (s *LotService) Create(ctx context.Context, req *domain.CreateLotRequest) (*domain.LotWithVialsDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}

	antibody, err := s.antibodyRepo.GetByID(ctx, req.AntibodyID)
	if err != nil {
		return nil, notFound(err, ErrAntibodyNotFound)
	}
	if antibody.LabID != labID {
		return nil, ErrAntibodyNotFound
	}
	if !antibody.IsActive {
		return nil, ErrAntibodyInactive
	}

	lotNumber := strings.TrimSpace(req.LotNumber)
	if err := s.ensureLotNumberFree(ctx, antibody.ID, lotNumber, uuid.Nil); err != nil {
		return nil, err
	}

	expiration, err := mapper.ParseDate(req.ExpirationDate)
	if err != nil {
		return nil, ErrInvalidExpirationDate
	}

	if req.StorageUnitID != nil {
		if _, err := s.storageService.placementTarget(ctx, *req.StorageUnitID); err != nil {
			return nil, err
		}
	}

	lot := &domain.Lot{
		LabID:          labID,
		AntibodyID:     antibody.ID,
		LotNumber:      lotNumber,
		VendorBarcode:  strings.TrimSpace(req.VendorBarcode),
		ExpirationDate: expiration,
		QCStatus:       domain.QCStatusPending,
	}

	var vials []domain.Vial
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lotRepo.WithTx(tx).Create(ctx, lot); err != nil {
			return fmt.Errorf("failed to create lot: %w", err)
		}
		created, err := s.addVials(ctx, tx, lot, req.Quantity, req.StorageUnitID)
		if err != nil {
			return err
		}
		vials = created
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(labID),
			Action:     domain.ActionLotCreate,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(lot.ID),
			After: map[string]interface{}{
				"lot":           mapper.ToLotDTO(lot, s.now()),
				"quantity":      req.Quantity,
				"storageUnitId": req.StorageUnitID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lot created",
		zap.String("lot_id", lot.ID.String()),
		zap.Int("vials", len(vials)))

	return s.withVials(ctx, lot.ID, vials)
}

// Receive adds more sealed vials to an existing lot
func (s *LotService) Receive(ctx context.Context, lotID uuid.UUID, req *domain.ReceiveVialsRequest) (*domain.LotWithVialsDTO, error) {
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	if lot.IsArchived {
		return nil, ErrLotArchived
	}
	if req.StorageUnitID != nil {
		if _, err := s.storageService.placementTarget(ctx, *req.StorageUnitID); err != nil {
			return nil, err
		}
	}

	var vials []domain.Vial
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.addVials(ctx, tx, lot, req.Quantity, req.StorageUnitID)
		if err != nil {
			return err
		}
		vials = created
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lot.LabID),
			Action:     domain.ActionLotReceive,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(lot.ID),
			After: map[string]interface{}{
				"quantity":      req.Quantity,
				"storageUnitId": req.StorageUnitID,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return s.withVials(ctx, lot.ID, vials)
}

func (s *LotService) addVials(ctx context.Context, tx *gorm.DB, lot *domain.Lot, quantity int, unitID *uuid.UUID) ([]domain.Vial, error) {
	vials := newVials(lot, quantity, s.now().UTC())
	if unitID != nil {
		if err := s.storageService.placeNewVials(ctx, tx, *unitID, vials); err != nil {
			return nil, err
		}
	}
	if err := s.vialRepo.WithTx(tx).CreateBatch(ctx, vials); err != nil {
		return nil, fmt.Errorf("failed to create vials: %w", err)
	}
	return vials, nil
}

func (s *LotService) withVials(ctx context.Context, lotID uuid.UUID, vials []domain.Vial) (*domain.LotWithVialsDTO, error) {
	lot, err := s.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(vials))
	for i, v := range vials {
		ids[i] = v.ID
	}
	loaded, err := s.vialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load vials: %w", err)
	}
	return &domain.LotWithVialsDTO{
		Lot:   *lot,
		Vials: mapper.ToVialDTOs(loaded, s.now()),
	}, nil
}

// Update edits lot number, barcode or expiration date
func (s *LotService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLotRequest) (*domain.LotDTO, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	before := mapper.ToLotDTO(lot, s.now())

	if req.LotNumber != nil {
		lotNumber := strings.TrimSpace(*req.LotNumber)
		if err := s.ensureLotNumberFree(ctx, lot.AntibodyID, lotNumber, lot.ID); err != nil {
			return nil, err
		}
		lot.LotNumber = lotNumber
	}
	if req.VendorBarcode != nil {
		lot.VendorBarcode = strings.TrimSpace(*req.VendorBarcode)
	}
	if req.ExpirationDate != nil {
		expiration, err := mapper.ParseDate(req.ExpirationDate)
		if err != nil {
			return nil, ErrInvalidExpirationDate
		}
		lot.ExpirationDate = expiration
	}

	if err := s.save(ctx, lot, domain.ActionLotUpdate, before, ""); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, lot.ID)
}

// UpdateQCStatus moves a lot between pending, approved and failed. Approval
// needs QC permission and, when the lab requires it, a QC document.
func (s *LotService) UpdateQCStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateQCStatusRequest) (*domain.LotDTO, error) {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !userCtx.HasPermission(auth.PermissionQCApprove) {
		return nil, ErrPermissionDenied
	}
	if !req.Status.IsValid() {
		return nil, ErrInvalidInput
	}

	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	before := mapper.ToLotDTO(lot, s.now())

	if req.Status == domain.QCStatusApproved {
		settings, err := loadLabSettings(ctx, s.labRepo, lot.LabID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lab settings: %w", err)
		}
		if settings.QCDocRequired {
			docs, err := s.documentRepo.CountsByLot(ctx, []uuid.UUID{lot.ID})
			if err != nil {
				return nil, fmt.Errorf("failed to count documents: %w", err)
			}
			if docs[lot.ID].QC == 0 {
				return nil, ErrQCDocumentRequired
			}
		}
		now := s.now().UTC()
		lot.QCApprovedAt = &now
		lot.QCApprovedBy = actorID(ctx)
	} else {
		lot.QCApprovedAt = nil
		lot.QCApprovedBy = nil
	}
	lot.QCStatus = req.Status

	if err := s.save(ctx, lot, domain.ActionLotQC, before, ""); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, lot.ID)
}

// DepleteAll depletes every sealed and opened vial of a lot and frees their cells
func (s *LotService) DepleteAll(ctx context.Context, id uuid.UUID) (*domain.LotDTO, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	count, err := s.retireVials(ctx, lot, domain.VialStatusDepleted, domain.ActionLotDepleteAll)
	if err != nil {
		return nil, err
	}
	s.logger.Info("lot depleted", zap.String("lot_id", lot.ID.String()), zap.Int("vials", count))
	return s.GetByID(ctx, lot.ID)
}

// Archive hides the lot; its remaining vials are archived and leave storage
func (s *LotService) Archive(ctx context.Context, id uuid.UUID) (*domain.LotDTO, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	if lot.IsArchived {
		return nil, ErrLotArchived
	}
	if _, err := s.retireVials(ctx, lot, domain.VialStatusArchived, domain.ActionLotArchive); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, lot.ID)
}

// retireVials moves every in-use vial of the lot to status and frees their cells in one transaction
func (s *LotService) retireVials(ctx context.Context, lot *domain.Lot, status domain.VialStatus, action string) (int, error) {
	now := s.now().UTC()
	by := actorID(ctx)
	before := mapper.ToLotDTO(lot, now)
	count := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vialRepo := s.vialRepo.WithTx(tx)
		vials, err := vialRepo.ListByLot(ctx, lot.ID, domain.VialStatusSealed, domain.VialStatusOpened)
		if err != nil {
			return fmt.Errorf("failed to list vials: %w", err)
		}
		for i := range vials {
			v := &vials[i]
			v.Status = status
			v.LocationCellID = nil
			if status == domain.VialStatusDepleted {
				v.DepletedAt = &now
				v.DepletedBy = by
			}
			if err := vialRepo.Update(ctx, v); err != nil {
				return fmt.Errorf("failed to update vial: %w", err)
			}
		}
		count = len(vials)

		if status == domain.VialStatusArchived {
			lot.IsArchived = true
			if err := s.lotRepo.WithTx(tx).Update(ctx, lot); err != nil {
				return fmt.Errorf("failed to archive lot: %w", err)
			}
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lot.LabID),
			Action:     action,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(lot.ID),
			Note:       fmt.Sprintf("%d vials %s", count, status),
			Before:     before,
			After:      mapper.ToLotDTO(lot, now),
		})
	})
	return count, err
}

func (s *LotService) save(ctx context.Context, lot *domain.Lot, action string, before domain.LotDTO, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lotRepo.WithTx(tx).Update(ctx, lot); err != nil {
			return fmt.Errorf("failed to update lot: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lot.LabID),
			Action:     action,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(lot.ID),
			Note:       note,
			Before:     before,
			After:      mapper.ToLotDTO(lot, s.now()),
		})
	})
}

func (s *LotService) ensureLotNumberFree(ctx context.Context, antibodyID uuid.UUID, lotNumber string, self uuid.UUID) error {
	existing, err := s.lotRepo.GetByAntibodyAndNumber(ctx, antibodyID, lotNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check lot number: %w", err)
	}
	if existing.ID != self {
		return ErrDuplicateLot
	}
	return nil
}
