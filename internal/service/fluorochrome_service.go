package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultPalette colors fluorochromes created implicitly from an antibody
var defaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultFluorochromeColor picks a stable palette color for a name
func DefaultFluorochromeColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return defaultPalette[h.Sum32()%uint32(len(defaultPalette))]
}

type FluorochromeService struct {
	db               *gorm.DB
	fluorochromeRepo *repository.FluorochromeRepository
	antibodyRepo     *repository.AntibodyRepository
	auditService     *AuditLogService
	logger           *zap.Logger
}

func NewFluorochromeService(
	db *gorm.DB,
	fluorochromeRepo *repository.FluorochromeRepository,
	antibodyRepo *repository.AntibodyRepository,
	auditService *AuditLogService,
	logger *zap.Logger,
) *FluorochromeService {
	return &FluorochromeService{
		db:               db,
		fluorochromeRepo: fluorochromeRepo,
		antibodyRepo:     antibodyRepo,
		auditService:     auditService,
		logger:           logger,
	}
}

func (s *FluorochromeService) List(ctx context.Context) ([]domain.FluorochromeDTO, error) {
	if _, err := requireLab(ctx); err != nil {
		return nil, err
	}
	items, err := s.fluorochromeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fluorochromes: %w", err)
	}
	dtos := make([]domain.FluorochromeDTO, len(items))
	for i := range items {
		dtos[i] = mapper.ToFluorochromeDTO(&items[i])
	}
	return dtos, nil
}

func (s *FluorochromeService) Create(ctx context.Context, req *domain.CreateFluorochromeRequest) (*domain.FluorochromeDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}

	var created *domain.Fluorochrome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, isNew, err := s.ensure(ctx, tx, labID, req.Name, strings.ToLower(req.Color))
		if err != nil {
			return err
		}
		if !isNew {
			return ErrDuplicateFluorochrome
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToFluorochromeDTO(created)
	return &dto, nil
}

// ensure returns the lab's fluorochrome with the given name, creating and
// auditing it inside tx when missing
func (s *FluorochromeService) ensure(ctx context.Context, tx *gorm.DB, labID uuid.UUID, name, color string) (*domain.Fluorochrome, bool, error) {
	name = strings.TrimSpace(name)
	repo := s.fluorochromeRepo.WithTx(tx)

	existing, err := repo.GetByName(ctx, labID, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up fluorochrome: %w", err)
	}

	if color == "" {
		color = DefaultFluorochromeColor(name)
	}
	f := &domain.Fluorochrome{LabID: labID, Name: name, Color: color}
	if err := repo.Create(ctx, f); err != nil {
		return nil, false, fmt.Errorf("failed to create fluorochrome: %w", err)
	}
	err = s.auditService.Record(ctx, tx, AuditEntry{
		LabID:      uuidPtr(labID),
		Action:     domain.ActionFluorochromeCreate,
		EntityType: domain.EntityFluorochrome,
		EntityID:   uuidPtr(f.ID),
		After:      mapper.ToFluorochromeDTO(f),
	})
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// Update changes the display color
func (s *FluorochromeService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateFluorochromeRequest) (*domain.FluorochromeDTO, error) {
	f, err := s.fluorochromeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFluorochromeNotFound)
	}
	before := mapper.ToFluorochromeDTO(f)
	f.Color = strings.ToLower(req.Color)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.fluorochromeRepo.WithTx(tx).Update(ctx, f); err != nil {
			return fmt.Errorf("failed to update fluorochrome: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(f.LabID),
			Action:     domain.ActionFluorochromeUpdate,
			EntityType: domain.EntityFluorochrome,
			EntityID:   uuidPtr(f.ID),
			Before:     before,
			After:      mapper.ToFluorochromeDTO(f),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToFluorochromeDTO(f)
	return &dto, nil
}

// Delete removes a fluorochrome no antibody refers to
func (s *FluorochromeService) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.fluorochromeRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrFluorochromeNotFound)
	}

	inUse, err := s.antibodyRepo.CountByFluorochrome(ctx, f.LabID, f.Name)
	if err != nil {
		return fmt.Errorf("failed to check fluorochrome usage: %w", err)
	}
	if inUse > 0 {
		return ErrFluorochromeInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.fluorochromeRepo.WithTx(tx).Delete(ctx, f.ID); err != nil {
			return fmt.Errorf("failed to delete fluorochrome: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(f.LabID),
			Action:     domain.ActionFluorochromeDelete,
			EntityType: domain.EntityFluorochrome,
			EntityID:   uuidPtr(f.ID),
			Before:     mapper.ToFluorochromeDTO(f),
		})
	})
}
