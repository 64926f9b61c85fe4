package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditHandler_List(t *testing.T) {
	h := setupHandlers(t)
	supervisor := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	rr := serve(h.storage.CreateUnit, newRequest(ctx, http.MethodPost, "/api/storage/units",
		domain.CreateStorageUnitRequest{Name: "Rack", Rows: 1, Cols: 1}, nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	var unit domain.StorageUnitDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &unit))

	t.Run("filtered by entity", func(t *testing.T) {
		rr := serve(h.audit.List, newRequest(ctx, http.MethodGet,
			"/api/audit?entityType=storage_unit&entityId="+unit.ID.String(), nil, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var page struct {
			Data  []domain.AuditLogDTO `json:"data"`
			Total int64                `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, domain.ActionStorageCreate, page.Data[0].Action)
		assert.Equal(t, supervisor.FullName, page.Data[0].UserName)
	})

	t.Run("bad entity id", func(t *testing.T) {
		rr := serve(h.audit.List, newRequest(ctx, http.MethodGet, "/api/audit?entityId=abc", nil, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid entity ID format", decodeAPIError(t, rr).Detail)
	})

	t.Run("unparseable date", func(t *testing.T) {
		rr := serve(h.audit.List, newRequest(ctx, http.MethodGet, "/api/audit?dateFrom=last-week", nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("reversed range", func(t *testing.T) {
		rr := serve(h.audit.List, newRequest(ctx, http.MethodGet,
			"/api/audit?dateFrom=2024-05-01&dateTo=2024-04-01", nil, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("entity history", func(t *testing.T) {
		rr := serve(h.audit.EntityHistory, newRequest(ctx, http.MethodGet, "/api/audit/entity/storage_unit/x", nil,
			map[string]string{"entityType": domain.EntityStorageUnit, "entityId": unit.ID.String()}))

		require.Equal(t, http.StatusOK, rr.Code)
		var logs []domain.AuditLogDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &logs))
		assert.Len(t, logs, 1)
	})

	t.Run("export", func(t *testing.T) {
		rr := serve(h.audit.Export, newRequest(ctx, http.MethodGet, "/api/audit/export", nil, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "audit-")
	})
}
