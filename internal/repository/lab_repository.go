package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

type LabRepository struct {
	db *gorm.DB
}

func NewLabRepository(db *gorm.DB) *LabRepository {
	return &LabRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *LabRepository) WithTx(tx *gorm.DB) *LabRepository {
	return &LabRepository{db: tx}
}

func (r *LabRepository) Create(ctx context.Context, lab *domain.Lab) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

func (r *LabRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lab, error) {
	var lab domain.Lab
	err := r.db.WithContext(ctx).First(&lab, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// GetByName matches names case-insensitively
func (r *LabRepository) GetByName(ctx context.Context, name string) (*domain.Lab, error) {
	var lab domain.Lab
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&lab).Error
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// List returns the labs visible to the request
func (r *LabRepository) List(ctx context.Context) ([]domain.Lab, error) {
	var labs []domain.Lab
	query := ApplyLabFilterWithColumn(ctx, r.db.WithContext(ctx), "id")
	err := query.Order("name ASC").Find(&labs).Error
	return labs, err
}

// ListActive returns every active lab regardless of request scope; used by background jobs
func (r *LabRepository) ListActive(ctx context.Context) ([]domain.Lab, error) {
	var labs []domain.Lab
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&labs).Error
	return labs, err
}

func (r *LabRepository) Update(ctx context.Context, lab *domain.Lab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}
