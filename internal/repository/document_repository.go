package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// DocumentCounts summarises the documents attached to a lot
type DocumentCounts struct {
	Total int64
	QC    int64
}

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *DocumentRepository) WithTx(tx *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: tx}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx))
	if err := query.First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := ApplyLabFilter(ctx, r.db.WithContext(ctx)).
		Where("lot_id = ?", lotID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Document{}, "id = ?", id).Error
}

// CountsByLot maps lot ids to their document counts
func (r *DocumentRepository) CountsByLot(ctx context.Context, lotIDs []uuid.UUID) (map[uuid.UUID]DocumentCounts, error) {
	result := make(map[uuid.UUID]DocumentCounts, len(lotIDs))
	if len(lotIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		LotID        uuid.UUID
		IsQCDocument bool
		Count        int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Document{}).
		Select("lot_id, is_qc_document, COUNT(*) AS count").
		Where("lot_id IN ?", lotIDs).
		Group("lot_id, is_qc_document").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		c := result[row.LotID]
		c.Total += row.Count
		if row.IsQCDocument {
			c.QC += row.Count
		}
		result[row.LotID] = c
	}
	return result, nil
}
