package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *TicketRepository) WithTx(tx *gorm.DB) *TicketRepository {
	return &TicketRepository{db: tx}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	return r.db.WithContext(ctx).Omit("Comments").Create(ticket).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx)).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	if err := query.First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns tickets of the request's lab, newest first
func (r *TicketRepository) List(ctx context.Context, status *domain.TicketStatus) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx)).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error {
	return r.db.WithContext(ctx).Model(&domain.SupportTicket{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *TicketRepository) AddComment(ctx context.Context, comment *domain.TicketComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Touch bumps updated_at so recently discussed tickets surface
func (r *TicketRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.SupportTicket{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
