package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// AntibodyFilter narrows antibody listings
type AntibodyFilter struct {
	Search          string
	Designation     *domain.AntibodyDesignation
	IncludeInactive bool
	// Sort overrides the default target then fluorochrome order
	Sort *SortConfig
}

var antibodySortFields = map[string]string{
	"target":       "target",
	"fluorochrome": "fluorochrome",
	"clone":        "clone",
	"vendor":       "vendor",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

type AntibodyRepository struct {
	db *gorm.DB
}

func NewAntibodyRepository(db *gorm.DB) *AntibodyRepository {
	return &AntibodyRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *AntibodyRepository) WithTx(tx *gorm.DB) *AntibodyRepository {
	return &AntibodyRepository{db: tx}
}

func (r *AntibodyRepository) Create(ctx context.Context, antibody *domain.Antibody) error {
	return r.db.WithContext(ctx).Create(antibody).Error
}

func (r *AntibodyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Antibody, error) {
	var antibody domain.Antibody
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	if err := query.First(&antibody, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &antibody, nil
}

func (r *AntibodyRepository) List(ctx context.Context, filter *AntibodyFilter) ([]domain.Antibody, error) {
	var antibodies []domain.Antibody
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	query = r.applyFilters(query, filter)
	order := "target ASC, fluorochrome ASC"
	if filter != nil && filter.Sort != nil {
		order = BuildOrderClause(*filter.Sort, antibodySortFields, "target") + ", fluorochrome ASC"
	}
	err := query.Order(order).Find(&antibodies).Error
	return antibodies, err
}

// ListByLab returns the active antibodies of one lab regardless of request scope
func (r *AntibodyRepository) ListByLab(ctx context.Context, labID uuid.UUID) ([]domain.Antibody, error) {
	var antibodies []domain.Antibody
	err := r.db.WithContext(ctx).
		Where("lab_id = ? AND is_active = ?", labID, true).
		Order("target ASC, fluorochrome ASC").
		Find(&antibodies).Error
	return antibodies, err
}

func (r *AntibodyRepository) Update(ctx context.Context, antibody *domain.Antibody) error {
	return r.db.WithContext(ctx).Save(antibody).Error
}

// CountByFluorochrome counts antibodies of a lab conjugated with the named fluorochrome
func (r *AntibodyRepository) CountByFluorochrome(ctx context.Context, labID uuid.UUID, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Antibody{}).
		Where("lab_id = ? AND LOWER(fluorochrome) = ?", labID, strings.ToLower(name)).
		Count(&count).Error
	return count, err
}

func (r *AntibodyRepository) applyFilters(query *gorm.DB, filter *AntibodyFilter) *gorm.DB {
	if filter == nil {
		return query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where(
			"(LOWER(target) LIKE ? OR LOWER(fluorochrome) LIKE ? OR LOWER(clone) LIKE ? OR LOWER(vendor) LIKE ? OR LOWER(catalog_number) LIKE ?)",
			p, p, p, p, p,
		)
	}
	if filter.Designation != nil {
		query = query.Where("designation = ?", *filter.Designation)
	}
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	return query
}
