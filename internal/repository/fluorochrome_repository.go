package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

type FluorochromeRepository struct {
	db *gorm.DB
}

func NewFluorochromeRepository(db *gorm.DB) *FluorochromeRepository {
	return &FluorochromeRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *FluorochromeRepository) WithTx(tx *gorm.DB) *FluorochromeRepository {
	return &FluorochromeRepository{db: tx}
}

func (r *FluorochromeRepository) Create(ctx context.Context, f *domain.Fluorochrome) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FluorochromeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Fluorochrome, error) {
	var f domain.Fluorochrome
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	if err := query.First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByName finds a fluorochrome of a lab, ignoring case
func (r *FluorochromeRepository) GetByName(ctx context.Context, labID uuid.UUID, name string) (*domain.Fluorochrome, error) {
	var f domain.Fluorochrome
	err := r.db.WithContext(ctx).
		Where("lab_id = ? AND LOWER(name) = ?", labID, strings.ToLower(strings.TrimSpace(name))).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FluorochromeRepository) List(ctx context.Context) ([]domain.Fluorochrome, error) {
	var items []domain.Fluorochrome
	err := ApplyLabFilter(ctx, r.db.WithContext(ctx)).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *FluorochromeRepository) Update(ctx context.Context, f *domain.Fluorochrome) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FluorochromeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Fluorochrome{}, "id = ?", id).Error
}

// ColorsByName maps lower-cased fluorochrome names of a lab to their colors
func (r *FluorochromeRepository) ColorsByName(ctx context.Context, labID uuid.UUID) (map[string]string, error) {
	var items []domain.Fluorochrome
	if err := r.db.WithContext(ctx).Where("lab_id = ?", labID).Find(&items).Error; err != nil {
		return nil, err
	}
	colors := make(map[string]string, len(items))
	for _, f := range items {
		colors[strings.ToLower(f.Name)] = f.Color
	}
	return colors, nil
}
