package service_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotService_Create(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD45", "V500")

	expiration := "2030-06-30"
	created, err := env.lots.Create(ctx, &domain.CreateLotRequest{
		AntibodyID:     antibody.ID,
		LotNumber:      " 9087 ",
		VendorBarcode:  "0123456789",
		ExpirationDate: &expiration,
		Quantity:       4,
	})
	require.NoError(t, err)

	assert.Equal(t, "9087", created.Lot.LotNumber)
	assert.Equal(t, domain.QCStatusPending, created.Lot.QCStatus)
	require.NotNil(t, created.Lot.ExpirationDate)
	assert.Equal(t, expiration, *created.Lot.ExpirationDate)
	assert.Equal(t, int64(4), created.Lot.Counts.Sealed)
	require.Len(t, created.Vials, 4)
	for _, v := range created.Vials {
		assert.Nil(t, v.LocationCellID)
	}

	t.Run("duplicate lot number for the same antibody", func(t *testing.T) {
		_, err := env.lots.Create(ctx, &domain.CreateLotRequest{AntibodyID: antibody.ID, LotNumber: "9087", Quantity: 1})
		assert.ErrorIs(t, err, service.ErrDuplicateLot)
	})

	t.Run("invalid expiration date", func(t *testing.T) {
		bad := "30/06/2030"
		_, err := env.lots.Create(ctx, &domain.CreateLotRequest{AntibodyID: antibody.ID, LotNumber: "X", ExpirationDate: &bad, Quantity: 1})
		assert.ErrorIs(t, err, service.ErrInvalidExpirationDate)
	})

	t.Run("antibody of another lab", func(t *testing.T) {
		other := testutil.CreateTestLab(t, env.db, "Elsewhere")
		foreign := testutil.CreateTestAntibody(t, env.db, other, "CD2", "PE")
		_, err := env.lots.Create(ctx, &domain.CreateLotRequest{AntibodyID: foreign.ID, LotNumber: "F1", Quantity: 1})
		assert.ErrorIs(t, err, service.ErrAntibodyNotFound)
	})

	t.Run("barcode lookup finds the lot", func(t *testing.T) {
		found, err := env.lots.FindByBarcode(ctx, "0123456789")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, created.Lot.ID, found[0].ID)

		none, err := env.lots.FindByBarcode(ctx, "nope")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("receive adds sealed vials", func(t *testing.T) {
		received, err := env.lots.Receive(ctx, created.Lot.ID, &domain.ReceiveVialsRequest{Quantity: 2})
		require.NoError(t, err)
		assert.Len(t, received.Vials, 2)
		assert.Equal(t, int64(6), received.Lot.Counts.Sealed)
	})
}

func TestLotService_CreateRequiresLab(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD3", "FITC")

	_, err := env.lots.Create(testutil.ContextFor(admin), &domain.CreateLotRequest{AntibodyID: antibody.ID, LotNumber: "A", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrLabRequired)

	created, err := env.lots.Create(testutil.ContextForLab(admin, env.lab), &domain.CreateLotRequest{AntibodyID: antibody.ID, LotNumber: "A", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, env.lab.ID, created.Lot.LabID)
}

func TestLotService_UpdateQCStatus(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD56", "BV421")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "QC-1", domain.QCStatusPending, nil, 1)

	t.Run("tech cannot change QC", func(t *testing.T) {
		_, err := env.lots.UpdateQCStatus(testutil.ContextFor(tech), lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusApproved})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("approval records the approver", func(t *testing.T) {
		updated, err := env.lots.UpdateQCStatus(testutil.ContextFor(supervisor), lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusApproved})
		require.NoError(t, err)
		assert.Equal(t, domain.QCStatusApproved, updated.QCStatus)
		require.NotNil(t, updated.QCApprovedBy)
		assert.Equal(t, supervisor.ID, *updated.QCApprovedBy)
		assert.NotNil(t, updated.QCApprovedAt)
	})

	t.Run("failing clears the approval", func(t *testing.T) {
		updated, err := env.lots.UpdateQCStatus(testutil.ContextFor(supervisor), lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusFailed})
		require.NoError(t, err)
		assert.Equal(t, domain.QCStatusFailed, updated.QCStatus)
		assert.Nil(t, updated.QCApprovedBy)
		assert.Nil(t, updated.QCApprovedAt)
	})

	assert.Equal(t, int64(2), countAudit(t, env.db, domain.ActionLotQC))
}

func TestLotService_ApprovalNeedsQCDocumentWhenRequired(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD16", "PE-Cy7")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "DOC-1", domain.QCStatusPending, nil, 1)

	settings := domain.DefaultLabSettings()
	settings.QCDocRequired = true
	testutil.UpdateLabSettings(t, env.db, env.lab, settings)

	_, err := env.lots.UpdateQCStatus(ctx, lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusApproved})
	require.ErrorIs(t, err, service.ErrQCDocumentRequired)

	_, err = env.documents.Upload(ctx, lot.ID, service.DocumentUpload{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Data:        strings.NewReader("not a certificate"),
	})
	require.NoError(t, err)
	_, err = env.lots.UpdateQCStatus(ctx, lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusApproved})
	require.ErrorIs(t, err, service.ErrQCDocumentRequired)

	_, err = env.documents.Upload(ctx, lot.ID, service.DocumentUpload{
		FileName:     "coa.pdf",
		ContentType:  "application/pdf",
		IsQCDocument: true,
		Data:         strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)

	updated, err := env.lots.UpdateQCStatus(ctx, lot.ID, &domain.UpdateQCStatusRequest{Status: domain.QCStatusApproved})
	require.NoError(t, err)
	assert.True(t, updated.HasQCDocument)
	assert.Equal(t, int64(2), updated.DocumentCount)
}

func TestLotService_ArchiveRetiresVials(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Box", 1, 3)
	created := receiveInto(t, env, ctx, unit.ID, "ARC-1", 3)

	_, err := env.vials.Deplete(ctx, created.Vials[0].ID)
	require.NoError(t, err)

	archived, err := env.lots.Archive(ctx, created.Lot.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.Zero(t, archived.Counts.Sealed)
	assert.Equal(t, int64(1), archived.Counts.Depleted)

	vials, err := env.vials.List(ctx, &repository.VialFilter{LotID: &created.Lot.ID})
	require.NoError(t, err)
	statuses := map[domain.VialStatus]int{}
	for _, v := range vials {
		statuses[v.Status]++
		assert.Nil(t, v.LocationCellID)
	}
	assert.Equal(t, map[domain.VialStatus]int{domain.VialStatusDepleted: 1, domain.VialStatusArchived: 2}, statuses)

	grid, err := env.storage.Grid(ctx, unit.ID)
	require.NoError(t, err)
	assert.Zero(t, grid.Unit.Occupied)

	_, err = env.lots.Archive(ctx, created.Lot.ID)
	assert.ErrorIs(t, err, service.ErrLotArchived)
	_, err = env.lots.Receive(ctx, created.Lot.ID, &domain.ReceiveVialsRequest{Quantity: 1})
	assert.ErrorIs(t, err, service.ErrLotArchived)

	listed, err := env.lots.List(ctx, &repository.LotFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
	listed, err = env.lots.List(ctx, &repository.LotFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestLotService_DepleteAll(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Box", 2, 2)
	created := receiveInto(t, env, ctx, unit.ID, "DEP-1", 3)

	_, err := env.vials.Open(ctx, created.Vials[0].ID, &domain.OpenVialRequest{Force: true})
	require.NoError(t, err)

	lot, err := env.lots.DepleteAll(ctx, created.Lot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), lot.Counts.Depleted)
	assert.Zero(t, lot.Counts.Sealed+lot.Counts.Opened)
	assert.False(t, lot.IsArchived)

	grid, err := env.storage.Grid(ctx, unit.ID)
	require.NoError(t, err)
	assert.Zero(t, grid.Unit.Occupied)
}

func TestLotService_NotFound(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	_, err := env.lots.GetByID(testutil.ContextFor(tech), uuid.New())
	assert.ErrorIs(t, err, service.ErrLotNotFound)
}
