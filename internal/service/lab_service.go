package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LabService manages labs and their settings
type LabService struct {
	db           *gorm.DB
	labRepo      *repository.LabRepository
	auditService *AuditLogService
	logger       *zap.Logger
}

func NewLabService(db *gorm.DB, labRepo *repository.LabRepository, auditService *AuditLogService, logger *zap.Logger) *LabService {
	return &LabService{
		db:           db,
		labRepo:      labRepo,
		auditService: auditService,
		logger:       logger,
	}
}

// List returns every lab for super admins and the caller's own lab otherwise
func (s *LabService) List(ctx context.Context) ([]domain.LabDTO, error) {
	labs, err := s.labRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	dtos := make([]domain.LabDTO, len(labs))
	for i := range labs {
		dtos[i] = mapper.ToLabDTO(&labs[i])
	}
	return dtos, nil
}

func (s *LabService) Create(ctx context.Context, req *domain.CreateLabRequest) (*domain.LabDTO, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	lab := &domain.Lab{
		Name:     name,
		IsActive: true,
		Settings: domain.DefaultLabSettings(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.labRepo.WithTx(tx).Create(ctx, lab); err != nil {
			return fmt.Errorf("failed to create lab: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lab.ID),
			Action:     domain.ActionLabCreate,
			EntityType: domain.EntityLab,
			EntityID:   uuidPtr(lab.ID),
			After:      mapper.ToLabDTO(lab),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToLabDTO(lab)
	return &dto, nil
}

func (s *LabService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLabRequest) (*domain.LabDTO, error) {
	name := strings.TrimSpace(req.Name)
	return s.mutate(ctx, id, domain.ActionLabUpdate, func(lab *domain.Lab) error {
		if err := s.ensureNameFree(ctx, name, lab.ID); err != nil {
			return err
		}
		lab.Name = name
		return nil
	})
}

// UpdateSettings applies the provided settings; omitted fields keep their value
func (s *LabService) UpdateSettings(ctx context.Context, id uuid.UUID, req *domain.UpdateLabSettingsRequest) (*domain.LabDTO, error) {
	return s.mutate(ctx, id, domain.ActionLabSettings, func(lab *domain.Lab) error {
		if req.SealedCountsOnly != nil {
			lab.Settings.SealedCountsOnly = *req.SealedCountsOnly
		}
		if req.ExpiryWarnDays != nil {
			lab.Settings.ExpiryWarnDays = *req.ExpiryWarnDays
		}
		if req.QCDocRequired != nil {
			lab.Settings.QCDocRequired = *req.QCDocRequired
		}
		if req.StorageEnabled != nil {
			lab.Settings.StorageEnabled = *req.StorageEnabled
		}
		return nil
	})
}

// Suspend blocks sign-in and API access for every user of the lab
func (s *LabService) Suspend(ctx context.Context, id uuid.UUID) (*domain.LabDTO, error) {
	return s.mutate(ctx, id, domain.ActionLabSuspend, func(lab *domain.Lab) error {
		lab.IsActive = false
		return nil
	})
}

func (s *LabService) Reactivate(ctx context.Context, id uuid.UUID) (*domain.LabDTO, error) {
	return s.mutate(ctx, id, domain.ActionLabReactivate, func(lab *domain.Lab) error {
		lab.IsActive = true
		return nil
	})
}

// mutate loads a visible lab, applies change and saves it with an audit entry
func (s *LabService) mutate(ctx context.Context, id uuid.UUID, action string, change func(*domain.Lab) error) (*domain.LabDTO, error) {
	if !repository.HasLabAccess(ctx, id) {
		return nil, ErrLabNotFound
	}
	lab, err := s.labRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLabNotFound)
	}
	before := mapper.ToLabDTO(lab)

	if err := change(lab); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.labRepo.WithTx(tx).Update(ctx, lab); err != nil {
			return fmt.Errorf("failed to update lab: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lab.ID),
			Action:     action,
			EntityType: domain.EntityLab,
			EntityID:   uuidPtr(lab.ID),
			Before:     before,
			After:      mapper.ToLabDTO(lab),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lab updated", zap.String("lab_id", lab.ID.String()), zap.String("action", action))
	dto := mapper.ToLabDTO(lab)
	return &dto, nil
}

func (s *LabService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.labRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check lab name: %w", err)
	}
	if existing.ID != self {
		return ErrDuplicateLab
	}
	return nil
}
