package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DocumentUpload is a file attached to a lot
type DocumentUpload struct {
	FileName     string
	ContentType  string
	Description  string
	IsQCDocument bool
	Data         io.Reader
}

// DocumentService stores lot documents such as certificates of analysis
type DocumentService struct {
	db           *gorm.DB
	documentRepo *repository.DocumentRepository
	lotRepo      *repository.LotRepository
	store        storage.Store
	auditService *AuditLogService
	logger       *zap.Logger
}

func NewDocumentService(
	db *gorm.DB,
	documentRepo *repository.DocumentRepository,
	lotRepo *repository.LotRepository,
	store storage.Store,
	auditService *AuditLogService,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		db:           db,
		documentRepo: documentRepo,
		lotRepo:      lotRepo,
		store:        store,
		auditService: auditService,
		logger:       logger,
	}
}

// Upload writes the file to the document store and records it. The stored
// object is removed again if the database insert fails.
func (s *DocumentService) Upload(ctx context.Context, lotID uuid.UUID, upload DocumentUpload) (*domain.DocumentDTO, error) {
	if s.store == nil {
		return nil, ErrDocumentStoreUnavailable
	}
	userCtx, err := authorUser(ctx)
	if err != nil {
		return nil, err
	}
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}

	fileName := filepath.Base(strings.ReplaceAll(strings.TrimSpace(upload.FileName), "\\", "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, ErrInvalidInput
	}
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc := &domain.Document{
		LabID:        lot.LabID,
		LotID:        lot.ID,
		FileName:     fileName,
		ContentType:  contentType,
		Description:  strings.TrimSpace(upload.Description),
		IsQCDocument: upload.IsQCDocument,
		UploadedBy:   userCtx.UserID,
	}
	doc.ID = uuid.New()
	doc.StoragePath = storage.DocumentKey(lot.LabID, lot.ID, doc.ID, fileName)

	size, err := s.store.Put(ctx, doc.StoragePath, contentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	doc.Size = size

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.documentRepo.WithTx(tx).Create(ctx, doc); err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(lot.LabID),
			Action:     domain.ActionDocumentUpload,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(lot.ID),
			Note:       fileName,
			After:      mapper.ToDocumentDTO(doc),
		})
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, doc.StoragePath); delErr != nil {
			s.logger.Warn("failed to remove orphaned document",
				zap.String("key", doc.StoragePath),
				zap.Error(delErr))
		}
		return nil, err
	}

	dto := mapper.ToDocumentDTO(doc)
	return &dto, nil
}

// ListByLot returns the documents of a lot, newest first
func (s *DocumentService) ListByLot(ctx context.Context, lotID uuid.UUID) ([]domain.DocumentDTO, error) {
	if _, err := s.lotRepo.GetByID(ctx, lotID); err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	docs, err := s.documentRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	dtos := make([]domain.DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = mapper.ToDocumentDTO(&docs[i])
	}
	return dtos, nil
}

// Download opens a document's content; the caller closes the reader
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	if s.store == nil {
		return nil, nil, ErrDocumentStoreUnavailable
	}
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, ErrDocumentNotFound)
	}
	reader, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("document content missing", zap.String("document_id", doc.ID.String()))
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, reader, nil
}

// Delete removes the record and then the stored content
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, ErrDocumentNotFound)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.documentRepo.WithTx(tx).Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      uuidPtr(doc.LabID),
			Action:     domain.ActionDocumentDelete,
			EntityType: domain.EntityLot,
			EntityID:   uuidPtr(doc.LotID),
			Note:       doc.FileName,
			Before:     mapper.ToDocumentDTO(doc),
		})
	})
	if err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			s.logger.Warn("failed to delete document content",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}
