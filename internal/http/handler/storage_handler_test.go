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

func TestStorageHandler_CreateUnit(t *testing.T) {
	h := setupHandlers(t)
	supervisor := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	t.Run("created with a full grid", func(t *testing.T) {
		rr := serve(h.storage.CreateUnit, newRequest(ctx, http.MethodPost, "/api/storage/units",
			domain.CreateStorageUnitRequest{Name: "Fridge A", Rows: 2, Cols: 3, Temperature: "4C"}, nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		var unit domain.StorageUnitDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &unit))
		assert.Equal(t, "Fridge A", unit.Name)
		assert.Equal(t, 2, unit.Rows)
		assert.Equal(t, 3, unit.Cols)
	})

	t.Run("too many rows", func(t *testing.T) {
		rr := serve(h.storage.CreateUnit, newRequest(ctx, http.MethodPost, "/api/storage/units",
			domain.CreateStorageUnitRequest{Name: "Freezer", Rows: 27, Cols: 3}, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		apiErr := decodeAPIError(t, rr)
		assert.Equal(t, "Must be at most 26", apiErr.Errors["rows"])
	})

	t.Run("missing name", func(t *testing.T) {
		rr := serve(h.storage.CreateUnit, newRequest(ctx, http.MethodPost, "/api/storage/units",
			domain.CreateStorageUnitRequest{Rows: 1, Cols: 1}, nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "name is required", decodeAPIError(t, rr).Errors["name"])
	})
}

func TestStorageHandler_Grid(t *testing.T) {
	h := setupHandlers(t)
	supervisor := testutil.CreateTestUser(t, h.db, h.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	rr := serve(h.storage.CreateUnit, newRequest(ctx, http.MethodPost, "/api/storage/units",
		domain.CreateStorageUnitRequest{Name: "Box 1", Rows: 1, Cols: 2}, nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	var unit domain.StorageUnitDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &unit))

	rr = serve(h.storage.Grid, newRequest(ctx, http.MethodGet, "/api/storage/units/x/grid", nil,
		map[string]string{"id": unit.ID.String()}))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(h.storage.Grid, newRequest(ctx, http.MethodGet, "/api/storage/units/x/grid", nil,
		map[string]string{"id": "bogus"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
