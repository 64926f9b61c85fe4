package service_test

import (
	"io"
	"strings"
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_UploadDownloadDelete(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD10", "PE")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "D-1", domain.QCStatusPending, nil, 1)

	doc, err := env.documents.Upload(ctx, lot.ID, service.DocumentUpload{
		FileName:     `C:\scans\coa.PDF`,
		ContentType:  "application/pdf",
		Description:  " certificate ",
		IsQCDocument: true,
		Data:         strings.NewReader("%PDF-1.7 content"),
	})
	require.NoError(t, err)
	assert.Equal(t, "coa.PDF", doc.FileName)
	assert.Equal(t, "certificate", doc.Description)
	assert.Equal(t, int64(len("%PDF-1.7 content")), doc.Size)
	assert.Equal(t, tech.ID, doc.UploadedBy)

	docs, err := env.documents.ListByLot(ctx, lot.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	meta, reader, err := env.documents.Download(ctx, doc.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 content", string(content))
	assert.Equal(t, "application/pdf", meta.ContentType)

	require.NoError(t, env.documents.Delete(ctx, doc.ID))
	_, _, err = env.documents.Download(ctx, doc.ID)
	assert.ErrorIs(t, err, service.ErrDocumentNotFound)

	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionDocumentUpload))
	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionDocumentDelete))
}

func TestDocumentService_RejectsOtherLabsLot(t *testing.T) {
	env := newTestEnv(t)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD10", "PE")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "D-2", domain.QCStatusPending, nil, 1)

	other := testutil.CreateTestLab(t, env.db, "Other")
	outsider := testutil.CreateTestUser(t, env.db, other, domain.RoleTech)

	_, err := env.documents.Upload(testutil.ContextFor(outsider), lot.ID, service.DocumentUpload{
		FileName: "x.pdf",
		Data:     strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, service.ErrLotNotFound)
}

func TestDocumentService_SystemIdentityCannotUpload(t *testing.T) {
	env := newTestEnv(t)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD11", "PE")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "D-4", domain.QCStatusPending, nil, 1)

	_, err := env.documents.Upload(testutil.SystemContextForLab(env.lab), lot.ID, service.DocumentUpload{
		FileName: "coa.pdf",
		Data:     strings.NewReader("%PDF"),
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	var count int64
	require.NoError(t, env.db.Model(&domain.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDocumentService_RejectsEmptyFileName(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD10", "PE")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "D-3", domain.QCStatusPending, nil, 1)

	_, err := env.documents.Upload(testutil.ContextFor(tech), lot.ID, service.DocumentUpload{
		FileName: "  ",
		Data:     strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
