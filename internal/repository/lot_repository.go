package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// LotFilter narrows lot listings
type LotFilter struct {
	AntibodyID      *uuid.UUID
	QCStatus        *domain.QCStatus
	IncludeArchived bool
}

type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *LotRepository) WithTx(tx *gorm.DB) *LotRepository {
	return &LotRepository{db: tx}
}

func (r *LotRepository) Create(ctx context.Context, lot *domain.Lot) error {
	return r.db.WithContext(ctx).Omit("Antibody").Create(lot).Error
}

// GetByID loads a lot with its antibody
func (r *LotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lot, error) {
	var lot domain.Lot
	query := ApplyLabFilterWithColumn(ctx, r.db.WithContext(ctx).Preload("Antibody"), "lots.lab_id")
	if err := query.First(&lot, "lots.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

// GetByAntibodyAndNumber finds a lot by its natural key
func (r *LotRepository) GetByAntibodyAndNumber(ctx context.Context, antibodyID uuid.UUID, lotNumber string) (*domain.Lot, error) {
	var lot domain.Lot
	err := r.db.WithContext(ctx).
		Where("antibody_id = ? AND lot_number = ?", antibodyID, strings.TrimSpace(lotNumber)).
		First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// FindByBarcode matches a scanned code against vendor barcodes and lot numbers.
// Non-archived lots and exact barcode matches come first.
func (r *LotRepository) FindByBarcode(ctx context.Context, code string) ([]domain.Lot, error) {
	var lots []domain.Lot
	code = strings.TrimSpace(code)
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx).Preload("Antibody"))
	err := query.
		Where("(vendor_barcode = ? OR lot_number = ?)", code, code).
		Order("is_archived ASC").
		Order(gorm.Expr("CASE WHEN vendor_barcode = ? THEN 0 ELSE 1 END", code)).
		Order("created_at DESC").
		Find(&lots).Error
	return lots, err
}

func (r *LotRepository) List(ctx context.Context, filter *LotFilter) ([]domain.Lot, error) {
	var lots []domain.Lot
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx).Preload("Antibody"))

	if filter != nil {
		if filter.AntibodyID != nil {
			query = query.Where("antibody_id = ?", *filter.AntibodyID)
		}
		if filter.QCStatus != nil {
			query = query.Where("qc_status = ?", *filter.QCStatus)
		}
		if !filter.IncludeArchived {
			query = query.Where("is_archived = ?", false)
		}
	} else {
		query = query.Where("is_archived = ?", false)
	}

	err := query.Order("created_at DESC").Find(&lots).Error
	return lots, err
}

// ListActiveByLab returns the non-archived lots of one lab with their antibodies
func (r *LotRepository) ListActiveByLab(ctx context.Context, labID uuid.UUID) ([]domain.Lot, error) {
	var lots []domain.Lot
	err := r.db.WithContext(ctx).Preload("Antibody").
		Where("lab_id = ? AND is_archived = ?", labID, false).
		Order("expiration_date ASC").
		Find(&lots).Error
	return lots, err
}

func (r *LotRepository) Update(ctx context.Context, lot *domain.Lot) error {
	return r.db.WithContext(ctx).Omit("Antibody").Save(lot).Error
}
