package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotHandler_Create(t *testing.T) {
	h := setupHandlers(t)
	tech := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD3", "FITC")
	expiration := "2030-06-30"

	body := domain.CreateLotRequest{
		AntibodyID:     antibody.ID,
		LotNumber:      "L-100",
		ExpirationDate: &expiration,
		Quantity:       3,
	}

	t.Run("created", func(t *testing.T) {
		rr := serve(h.lot.Create, newRequest(ctx, http.MethodPost, "/api/lots", body, nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		var created domain.LotWithVialsDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "L-100", created.Lot.LotNumber)
		assert.Equal(t, domain.QCStatusPending, created.Lot.QCStatus)
		require.NotNil(t, created.Lot.ExpirationDate)
		assert.Equal(t, expiration, *created.Lot.ExpirationDate)
		assert.Len(t, created.Vials, 3)
	})

	t.Run("duplicate lot number", func(t *testing.T) {
		rr := serve(h.lot.Create, newRequest(ctx, http.MethodPost, "/api/lots", body, nil))

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, domain.ErrorTypeConflict, decodeAPIError(t, rr).Type)
	})

	t.Run("bad expiration date", func(t *testing.T) {
		bad := "2030-13-01"
		invalid := body
		invalid.LotNumber = "L-101"
		invalid.ExpirationDate = &bad
		rr := serve(h.lot.Create, newRequest(ctx, http.MethodPost, "/api/lots", invalid, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeAPIError(t, rr).Errors, "expirationDate")
	})

	t.Run("zero quantity", func(t *testing.T) {
		invalid := body
		invalid.LotNumber = "L-102"
		invalid.Quantity = 0
		rr := serve(h.lot.Create, newRequest(ctx, http.MethodPost, "/api/lots", invalid, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeAPIError(t, rr).Errors, "quantity")
	})

	t.Run("unknown antibody", func(t *testing.T) {
		missing := body
		missing.AntibodyID = uuid.New()
		missing.LotNumber = "L-103"
		rr := serve(h.lot.Create, newRequest(ctx, http.MethodPost, "/api/lots", missing, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestVialHandler_Move(t *testing.T) {
	h := setupHandlers(t)
	tech := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD20", "APC")
	_, vials := testutil.CreateTestLot(t, h.db, antibody, "M-1", domain.QCStatusApproved, nil, 2)
	unit := &domain.StorageUnit{LabID: h.lab.ID, Name: "Rack", Rows: 1, Cols: 2, IsActive: true}
	require.NoError(t, h.db.Create(unit).Error)

	t.Run("duplicate vial ids", func(t *testing.T) {
		rr := serve(h.vial.Move, newRequest(ctx, http.MethodPost, "/api/vials/move", domain.MoveVialsRequest{
			VialIDs:      []uuid.UUID{vials[0].ID, vials[0].ID},
			TargetUnitID: unit.ID,
			Mode:         domain.MoveModeAuto,
		}, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		apiErr := decodeAPIError(t, rr)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Equal(t, "Must not contain duplicates", apiErr.Errors["vialIds"])
	})

	t.Run("depleted vial", func(t *testing.T) {
		require.NoError(t, h.db.Model(&domain.Vial{}).Where("id = ?", vials[1].ID).
			Update("status", domain.VialStatusDepleted).Error)

		rr := serve(h.vial.Move, newRequest(ctx, http.MethodPost, "/api/vials/move", domain.MoveVialsRequest{
			VialIDs:      []uuid.UUID{vials[1].ID},
			TargetUnitID: unit.ID,
			Mode:         domain.MoveModeAuto,
		}, nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestVialHandler_Open(t *testing.T) {
	h := setupHandlers(t)
	tech := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD19", "PE")
	_, pending := testutil.CreateTestLot(t, h.db, antibody, "P-1", domain.QCStatusPending, nil, 1)
	_, approved := testutil.CreateTestLot(t, h.db, antibody, "A-1", domain.QCStatusApproved, nil, 1)

	t.Run("invalid id", func(t *testing.T) {
		rr := serve(h.vial.Open, newRequest(ctx, http.MethodPost, "/api/vials/x/open", nil,
			map[string]string{"id": "not-a-uuid"}))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid vial ID format", decodeAPIError(t, rr).Detail)
	})

	t.Run("pending lot needs force", func(t *testing.T) {
		rr := serve(h.vial.Open, newRequest(ctx, http.MethodPost, "/api/vials/x/open", nil,
			map[string]string{"id": pending[0].ID.String()}))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("tech cannot force", func(t *testing.T) {
		rr := serve(h.vial.Open, newRequest(ctx, http.MethodPost, "/api/vials/x/open",
			domain.OpenVialRequest{Force: true}, map[string]string{"id": pending[0].ID.String()}))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("approved lot opens without a body", func(t *testing.T) {
		rr := serve(h.vial.Open, newRequest(ctx, http.MethodPost, "/api/vials/x/open", nil,
			map[string]string{"id": approved[0].ID.String()}))

		require.Equal(t, http.StatusOK, rr.Code)
		var vial domain.VialDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &vial))
		assert.Equal(t, domain.VialStatusOpened, vial.Status)
	})

	t.Run("opening twice conflicts", func(t *testing.T) {
		rr := serve(h.vial.Open, newRequest(ctx, http.MethodPost, "/api/vials/x/open", nil,
			map[string]string{"id": approved[0].ID.String()}))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestDashboardHandler_InventoryExport(t *testing.T) {
	h := setupHandlers(t)
	user := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleReadOnly)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD45", "APC")
	testutil.CreateTestLot(t, h.db, antibody, "X-1", domain.QCStatusApproved, testutil.Date(90), 2)

	rr := serve(h.dashboard.InventoryExport, newRequest(testutil.ContextFor(user), http.MethodGet,
		"/api/dashboard/inventory/export", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "inventory-")
	assert.Equal(t, "PK", rr.Body.String()[:2])
}

func TestDashboardHandler_Summary(t *testing.T) {
	h := setupHandlers(t)
	user := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleReadOnly)
	antibody := testutil.CreateTestAntibody(t, h.db, h.lab, "CD8", "PerCP")
	testutil.CreateTestLot(t, h.db, antibody, "S-1", domain.QCStatusPending, testutil.Date(90), 1)

	rr := serve(h.dashboard.Summary, newRequest(testutil.ContextFor(user), http.MethodGet, "/api/dashboard/summary", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var summary domain.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.PendingQC)
}
