package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/export"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxAuditExportRows caps how many entries one export may contain
const MaxAuditExportRows = 10000

// AuditLogService records and queries the audit trail
type AuditLogService struct {
	auditRepo *repository.AuditLogRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo *repository.AuditLogRepository, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// AuditEntry is the input for one audit record. The acting user and request
// metadata are taken from the context unless UserID is set.
type AuditEntry struct {
	LabID      *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Note       string
	Before     interface{}
	After      interface{}

	UserID   *uuid.UUID
	UserName string
}

// Record appends an entry. Pass the mutation's transaction so the entry
// commits or rolls back with it; a nil tx writes directly.
func (s *AuditLogService) Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error {
	log := &domain.AuditLog{
		LabID:       entry.LabID,
		UserID:      entry.UserID,
		UserName:    entry.UserName,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Note:        entry.Note,
		BeforeState: marshalState(entry.Before),
		AfterState:  marshalState(entry.After),
		CreatedAt:   s.now().UTC(),
	}

	if log.UserID == nil {
		if userCtx, ok := auth.FromContext(ctx); ok && userCtx != nil {
			if !userCtx.IsSystem {
				id := userCtx.UserID
				log.UserID = &id
			}
			log.UserName = userCtx.FullName
		}
	}

	meta := auth.RequestMetaFromContext(ctx)
	log.IPAddress = meta.IPAddress
	log.UserAgent = meta.UserAgent
	log.RequestID = meta.RequestID

	repo := s.auditRepo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Create(ctx, log); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func marshalState(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// AuditQuery holds the raw filter parameters of an audit listing
type AuditQuery struct {
	EntityType string
	EntityID   *uuid.UUID
	Action     string
	UserID     *uuid.UUID
	DateFrom   string
	DateTo     string
	Page       int
	PageSize   int
}

// List returns a page of audit entries, newest first
func (s *AuditLogService) List(ctx context.Context, q AuditQuery) (*domain.PaginatedResponse, error) {
	filter, err := buildAuditFilter(q)
	if err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(q.Page, q.PageSize, 50)
	logs, total, err := s.auditRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// ListForExport returns up to MaxAuditExportRows filtered entries
func (s *AuditLogService) ListForExport(ctx context.Context, q AuditQuery) ([]domain.AuditLog, error) {
	filter, err := buildAuditFilter(q)
	if err != nil {
		return nil, err
	}
	logs, err := s.auditRepo.ListAll(ctx, filter, MaxAuditExportRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

// Export renders the filtered entries as an XLSX workbook
func (s *AuditLogService) Export(ctx context.Context, q AuditQuery) ([]byte, error) {
	logs, err := s.ListForExport(ctx, q)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}
	data, err := export.AuditWorkbook(dtos)
	if err != nil {
		return nil, fmt.Errorf("failed to build audit export: %w", err)
	}
	return data, nil
}

// ListByEntity returns the history of one entity
func (s *AuditLogService) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLogDTO, error) {
	logs, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}
	return dtos, nil
}

// Range returns the first and last months that have entries
func (s *AuditLogService) Range(ctx context.Context) (*domain.AuditRangeDTO, error) {
	first, last, err := s.auditRepo.TimeBounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit range: %w", err)
	}
	dto := &domain.AuditRangeDTO{}
	if first != nil {
		minMonth := first.UTC().Format(monthLayout)
		dto.MinMonth = &minMonth
	}
	if last != nil {
		maxMonth := last.UTC().Format(monthLayout)
		dto.MaxMonth = &maxMonth
	}
	return dto, nil
}

// PurgeOlderThan deletes entries older than the retention window
func (s *AuditLogService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	return s.auditRepo.DeleteOlderThan(ctx, cutoff)
}

const monthLayout = "2006-01"

func buildAuditFilter(q AuditQuery) (*repository.AuditLogFilter, error) {
	filter := &repository.AuditLogFilter{
		UserID:     q.UserID,
		Action:     strings.TrimSpace(q.Action),
		EntityType: strings.TrimSpace(q.EntityType),
		EntityID:   q.EntityID,
	}

	from, err := parseRangeBound(q.DateFrom, false)
	if err != nil {
		return nil, err
	}
	to, err := parseRangeBound(q.DateTo, true)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, ErrInvalidDateRange
	}
	filter.StartTime = from
	filter.EndTime = to
	return filter, nil
}

// parseRangeBound accepts YYYY-MM, YYYY-MM-DD or RFC3339. Upper bounds are
// returned exclusive: the start of the following month or day, or one
// nanosecond past an exact instant.
func parseRangeBound(value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(monthLayout, value, time.UTC); err == nil {
		if upper {
			t = t.AddDate(0, 1, 0)
		}
		return &t, nil
	}
	if t, err := time.ParseInLocation(mapper.DateLayout, value, time.UTC); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		if upper {
			t = t.Add(time.Nanosecond)
		}
		return &t, nil
	}
	return nil, ErrInvalidDateRange
}
