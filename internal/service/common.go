package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"gorm.io/gorm"
)

// requireLab returns the lab the request operates on
func requireLab(ctx context.Context) (uuid.UUID, error) {
	labID := auth.GetEffectiveLabID(ctx)
	if labID == nil {
		return uuid.Nil, ErrLabRequired
	}
	return *labID, nil
}

// currentUser returns the authenticated user; services are only reached behind Authenticate
func currentUser(ctx context.Context) (*auth.UserContext, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx == nil {
		return nil, ErrUnauthorized
	}
	return userCtx, nil
}

// authorUser returns the caller for writes that store a users(id) reference.
// The API-key identity has no user row, so it cannot author them.
func authorUser(ctx context.Context) (*auth.UserContext, error) {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if userCtx.IsSystem {
		return nil, ErrPermissionDenied
	}
	return userCtx, nil
}

// actorID returns the acting user's id, or nil for system requests
func actorID(ctx context.Context) *uuid.UUID {
	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx == nil || userCtx.IsSystem {
		return nil
	}
	id := userCtx.UserID
	return &id
}

// notFound translates gorm.ErrRecordNotFound into the given sentinel
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// loadLabSettings returns the settings of a lab, or defaults when the lab is missing
func loadLabSettings(ctx context.Context, labRepo *repository.LabRepository, labID uuid.UUID) (domain.LabSettings, error) {
	lab, err := labRepo.GetByID(ctx, labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DefaultLabSettings(), nil
		}
		return domain.LabSettings{}, err
	}
	return lab.Settings, nil
}

func normalizePage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
