package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// AuditLogFilter narrows audit queries. Zero values are ignored.
type AuditLogFilter struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	StartTime  *time.Time
	// EndTime is exclusive
	EndTime *time.Time
}

// scope turns the filter into a gorm scope
func (f *AuditLogFilter) scope(db *gorm.DB) *gorm.DB {
	if f == nil {
		return db
	}
	conds := map[string]interface{}{}
	if f.UserID != nil {
		conds["user_id"] = *f.UserID
	}
	if f.Action != "" {
		conds["action"] = f.Action
	}
	if f.EntityType != "" {
		conds["entity_type"] = f.EntityType
	}
	if f.EntityID != nil {
		conds["entity_id"] = *f.EntityID
	}
	if len(conds) > 0 {
		db = db.Where(conds)
	}
	if f.StartTime != nil {
		db = db.Where("created_at >= ?", *f.StartTime)
	}
	if f.EndTime != nil {
		db = db.Where("created_at < ?", *f.EndTime)
	}
	return db
}

// AuditLogRepository stores the append-only audit trail. Reads are scoped
// to the request's lab; retention cleanup is not.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// WithTx binds the repository to tx so entries commit with the change they describe
func (r *AuditLogRepository) WithTx(tx *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: tx}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditLogRepository) visible(ctx context.Context) *gorm.DB {
	return ApplyLabFilter(ctx, r.db.WithContext(ctx).Model(&domain.AuditLog{}))
}

// List returns one page of matching entries, newest first, with the total match count
func (r *AuditLogRepository) List(ctx context.Context, filter *AuditLogFilter, page, pageSize int) ([]domain.AuditLog, int64, error) {
	query := r.visible(ctx).Scopes(filter.scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.AuditLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	return entries, total, err
}

// ListAll returns at most limit matching entries, newest first
func (r *AuditLogRepository) ListAll(ctx context.Context, filter *AuditLogFilter, limit int) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	err := r.visible(ctx).Scopes(filter.scope).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	return r.ListAll(ctx, &AuditLogFilter{EntityType: entityType, EntityID: &entityID}, limit)
}

// TimeBounds reports the oldest and newest visible timestamps, or nils when there are none
func (r *AuditLogRepository) TimeBounds(ctx context.Context) (*time.Time, *time.Time, error) {
	edge := func(order string) (*time.Time, error) {
		var stamps []time.Time
		if err := r.visible(ctx).Order(order).Limit(1).Pluck("created_at", &stamps).Error; err != nil {
			return nil, err
		}
		if len(stamps) == 0 {
			return nil, nil
		}
		return &stamps[0], nil
	}
	oldest, err := edge("created_at ASC")
	if err != nil || oldest == nil {
		return nil, nil, err
	}
	newest, err := edge("created_at DESC")
	if err != nil {
		return nil, nil, err
	}
	return oldest, newest, nil
}

// DeleteOlderThan purges entries created before cutoff in every lab
func (r *AuditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.AuditLog{})
	return res.RowsAffected, res.Error
}
