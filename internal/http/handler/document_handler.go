package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labaid/labaid-api/internal/service"
	"go.uber.org/zap"
)

// DocumentHandler handles lot document uploads and downloads
type DocumentHandler struct {
	documentService *service.DocumentService
	maxUploadBytes  int64
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, maxUploadSizeMB int64, logger *zap.Logger) *DocumentHandler {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 25
	}
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadSizeMB << 20,
		logger:          logger,
	}
}

// Upload godoc
// @Summary Upload lot document
// @Description Attaches a file such as a certificate of analysis to a lot
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Lot ID"
// @Param file formData file true "File"
// @Param description formData string false "Description"
// @Param isQcDocument formData bool false "Counts as QC documentation"
// @Success 201 {object} domain.DocumentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	lotID, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleServiceError(w, h.logger, service.ErrDocumentTooLarge, "upload document")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		handleServiceError(w, h.logger, service.ErrDocumentTooLarge, "upload document")
		return
	}

	isQC, _ := strconv.ParseBool(r.FormValue("isQcDocument"))
	doc, err := h.documentService.Upload(r.Context(), lotID, service.DocumentUpload{
		FileName:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Description:  r.FormValue("description"),
		IsQCDocument: isQC,
		Data:         file,
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "upload document")
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// ListByLot godoc
// @Summary List lot documents
// @Tags Documents
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {array} domain.DocumentDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /lots/{id}/documents [get]
func (h *DocumentHandler) ListByLot(w http.ResponseWriter, r *http.Request) {
	lotID, ok := parseUUIDParam(w, r, "id", "lot")
	if !ok {
		return
	}
	docs, err := h.documentService.ListByLot(r.Context(), lotID)
	if err != nil {
		handleServiceError(w, h.logger, err, "list documents")
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

// Download godoc
// @Summary Download document
// @Tags Documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "document")
	if !ok {
		return
	}

	doc, content, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "download document")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if doc.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		h.logger.Warn("document download interrupted",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err))
	}
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "document")
	if !ok {
		return
	}
	if err := h.documentService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
