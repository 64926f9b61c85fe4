package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartRequest builds an upload request; an empty fileName omits the file part
func multipartRequest(t *testing.T, ctx context.Context, lotID, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("description", "Certificate of analysis"))
	require.NoError(t, mw.WriteField("isQcDocument", "true"))
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/lots/"+lotID+"/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", lotID)
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func TestDocumentHandler_Upload(t *testing.T) {
	h := setupHandlers(t)
	tech := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD56", "BV421")
	lot, _ := testutil.CreateTestLot(t, h.db, antibody, "D-1", domain.QCStatusPending, nil, 1)

	t.Run("created", func(t *testing.T) {
		rr := serve(h.document.Upload, multipartRequest(t, ctx, lot.ID.String(), "coa.pdf", []byte("%PDF-1.7")))

		require.Equal(t, http.StatusCreated, rr.Code)
		var doc domain.DocumentDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
		assert.Equal(t, "coa.pdf", doc.FileName)
		assert.Equal(t, "Certificate of analysis", doc.Description)
		assert.True(t, doc.IsQCDocument)
		assert.Equal(t, int64(8), doc.Size)

		list := serve(h.document.ListByLot, newRequest(ctx, http.MethodGet, "/api/lots/x/documents", nil,
			map[string]string{"id": lot.ID.String()}))
		require.Equal(t, http.StatusOK, list.Code)
		var docs []domain.DocumentDTO
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
		assert.Len(t, docs, 1)

		download := serve(h.document.Download, newRequest(ctx, http.MethodGet, "/api/documents/x/download", nil,
			map[string]string{"id": doc.ID.String()}))
		require.Equal(t, http.StatusOK, download.Code)
		assert.Equal(t, "%PDF-1.7", download.Body.String())
		assert.Contains(t, download.Header().Get("Content-Disposition"), "coa.pdf")
	})

	t.Run("missing file", func(t *testing.T) {
		rr := serve(h.document.Upload, multipartRequest(t, ctx, lot.ID.String(), "", nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "File is required", decodeAPIError(t, rr).Detail)
	})

	t.Run("file over the limit", func(t *testing.T) {
		big := bytes.Repeat([]byte("x"), (1<<20)+512)
		rr := serve(h.document.Upload, multipartRequest(t, ctx, lot.ID.String(), "scan.pdf", big))

		require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Equal(t, domain.ErrorTypeTooLarge, decodeAPIError(t, rr).Type)
	})

	t.Run("not a multipart body", func(t *testing.T) {
		req := newRequest(ctx, http.MethodPost, "/api/lots/x/documents", map[string]string{"a": "b"},
			map[string]string{"id": lot.ID.String()})
		rr := serve(h.document.Upload, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
