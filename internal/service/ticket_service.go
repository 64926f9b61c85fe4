package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TicketService handles support tickets raised by lab users
type TicketService struct {
	db           *gorm.DB
	ticketRepo   *repository.TicketRepository
	auditService *AuditLogService
	logger       *zap.Logger
}

func NewTicketService(db *gorm.DB, ticketRepo *repository.TicketRepository, auditService *AuditLogService, logger *zap.Logger) *TicketService {
	return &TicketService{
		db:           db,
		ticketRepo:   ticketRepo,
		auditService: auditService,
		logger:       logger,
	}
}

// List returns the tickets of the active lab; super admins without a lab see all
func (s *TicketService) List(ctx context.Context, status *domain.TicketStatus) ([]domain.TicketDTO, error) {
	tickets, err := s.ticketRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	dtos := make([]domain.TicketDTO, len(tickets))
	for i := range tickets {
		dtos[i] = mapper.ToTicketDTO(&tickets[i])
	}
	return dtos, nil
}

func (s *TicketService) Create(ctx context.Context, req *domain.CreateTicketRequest) (*domain.TicketDTO, error) {
	labID, err := requireLab(ctx)
	if err != nil {
		return nil, err
	}
	userCtx, err := authorUser(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &domain.SupportTicket{
		LabID:    labID,
		UserID:   userCtx.UserID,
		UserName: userCtx.FullName,
		Title:    strings.TrimSpace(req.Title),
		Message:  strings.TrimSpace(req.Message),
		Status:   domain.TicketStatusOpen,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ticketRepo.WithTx(tx).Create(ctx, ticket); err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(labID),
			Action:     domain.ActionTicketCreate,
			EntityType: domain.EntityTicket,
			EntityID:   uuidPtr(ticket.ID),
			Note:       ticket.Title,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("support ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("lab_id", labID.String()))

	dto := mapper.ToTicketDTO(ticket)
	return &dto, nil
}

func (s *TicketService) UpdateStatus(ctx context.Context, id uuid.UUID, req *domain.UpdateTicketStatusRequest) (*domain.TicketDTO, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTicketNotFound)
	}
	previous := ticket.Status

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ticketRepo.WithTx(tx).UpdateStatus(ctx, ticket.ID, req.Status); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(ticket.LabID),
			Action:     domain.ActionTicketStatus,
			EntityType: domain.EntityTicket,
			EntityID:   uuidPtr(ticket.ID),
			Before:     map[string]domain.TicketStatus{"status": previous},
			After:      map[string]domain.TicketStatus{"status": req.Status},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, ticket.ID)
}

// AddComment appends a reply from the caller
func (s *TicketService) AddComment(ctx context.Context, id uuid.UUID, req *domain.CreateTicketCommentRequest) (*domain.TicketDTO, error) {
	userCtx, err := authorUser(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTicketNotFound)
	}

	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		UserID:   userCtx.UserID,
		UserName: userCtx.FullName,
		Message:  strings.TrimSpace(req.Message),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ticketRepo.WithTx(tx)
		if err := repo.AddComment(ctx, comment); err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		if err := repo.Touch(ctx, ticket.ID); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(ticket.LabID),
			Action:     domain.ActionTicketComment,
			EntityType: domain.EntityTicket,
			EntityID:   uuidPtr(ticket.ID),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.get(ctx, ticket.ID)
}

func (s *TicketService) get(ctx context.Context, id uuid.UUID) (*domain.TicketDTO, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTicketNotFound)
	}
	dto := mapper.ToTicketDTO(ticket)
	return &dto, nil
}
