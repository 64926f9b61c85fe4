package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUnit(t *testing.T, env *testEnv, ctx context.Context, name string, rows, cols int) *domain.StorageUnitDTO {
	t.Helper()
	unit, err := env.storage.CreateUnit(ctx, &domain.CreateStorageUnitRequest{
		Name: name,
		Rows: rows,
		Cols: cols,
	})
	require.NoError(t, err)
	return unit
}

// cellID finds a cell of a unit by label
func cellID(t *testing.T, env *testEnv, ctx context.Context, unitID uuid.UUID, label string) uuid.UUID {
	t.Helper()
	grid, err := env.storage.Grid(ctx, unitID)
	require.NoError(t, err)
	for _, c := range grid.Cells {
		if c.Label == label {
			return c.ID
		}
	}
	t.Fatalf("cell %s not found", label)
	return uuid.Nil
}

func receiveInto(t *testing.T, env *testEnv, ctx context.Context, unitID uuid.UUID, lotNumber string, quantity int) *domain.LotWithVialsDTO {
	t.Helper()
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD3", "FITC")
	created, err := env.lots.Create(ctx, &domain.CreateLotRequest{
		AntibodyID:    antibody.ID,
		LotNumber:     lotNumber,
		Quantity:      quantity,
		StorageUnitID: &unitID,
	})
	require.NoError(t, err)
	return created
}

func TestStorageService_CreateUnitBuildsGrid(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	unit := createUnit(t, env, ctx, "Box 1", 2, 3)
	assert.Equal(t, 6, unit.Capacity)
	assert.Equal(t, int64(0), unit.Occupied)

	grid, err := env.storage.Grid(ctx, unit.ID)
	require.NoError(t, err)
	require.Len(t, grid.Cells, 6)

	labels := make([]string, len(grid.Cells))
	for i, c := range grid.Cells {
		labels[i] = c.Label
		assert.Nil(t, c.Vial)
	}
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, labels)
	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionStorageCreate))
}

func TestStorageService_LotIntakeFillsFirstFreeCells(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Box 1", 2, 2)

	created := receiveInto(t, env, ctx, unit.ID, "L-100", 3)
	require.Len(t, created.Vials, 3)

	labels := []string{}
	for _, v := range created.Vials {
		labels = append(labels, v.LocationLabel)
		assert.Equal(t, domain.VialStatusSealed, v.Status)
	}
	assert.ElementsMatch(t, []string{"A1", "A2", "B1"}, labels)

	grid, err := env.storage.Grid(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), grid.Unit.Occupied)
	require.NotNil(t, grid.Cells[0].Vial)
	assert.Equal(t, "CD3", grid.Cells[0].Vial.AntibodyTarget)
	assert.Equal(t, "L-100", grid.Cells[0].Vial.LotNumber)
	assert.Nil(t, grid.Cells[3].Vial)
}

func TestStorageService_LotIntakeWithoutRoomCreatesNothing(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Tiny", 1, 2)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD4", "PE")

	_, err := env.lots.Create(ctx, &domain.CreateLotRequest{
		AntibodyID:    antibody.ID,
		LotNumber:     "L-1",
		Quantity:      3,
		StorageUnitID: &unit.ID,
	})
	require.ErrorIs(t, err, service.ErrInsufficientSpace)

	var lots, vials int64
	env.db.Model(&domain.Lot{}).Count(&lots)
	env.db.Model(&domain.Vial{}).Count(&vials)
	assert.Zero(t, lots)
	assert.Zero(t, vials)
	assert.Zero(t, countAudit(t, env.db, domain.ActionLotCreate))
}

func TestStorageService_StorageDisabled(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Box", 2, 2)

	settings := domain.DefaultLabSettings()
	settings.StorageEnabled = false
	testutil.UpdateLabSettings(t, env.db, env.lab, settings)

	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD8", "APC")
	_, err := env.lots.Create(ctx, &domain.CreateLotRequest{
		AntibodyID:    antibody.ID,
		LotNumber:     "L-2",
		Quantity:      1,
		StorageUnitID: &unit.ID,
	})
	assert.ErrorIs(t, err, service.ErrStorageDisabled)

	t.Run("unit writes are refused", func(t *testing.T) {
		_, err := env.storage.CreateUnit(ctx, &domain.CreateStorageUnitRequest{Name: "Other", Rows: 1, Cols: 1})
		assert.ErrorIs(t, err, service.ErrStorageDisabled)

		_, err = env.storage.UpdateUnit(ctx, unit.ID, &domain.UpdateStorageUnitRequest{Rows: intPtr(3)})
		assert.ErrorIs(t, err, service.ErrStorageDisabled)

		err = env.storage.DeleteUnit(ctx, unit.ID)
		assert.ErrorIs(t, err, service.ErrStorageDisabled)
	})

	t.Run("reads still work", func(t *testing.T) {
		grid, err := env.storage.Grid(ctx, unit.ID)
		require.NoError(t, err)
		assert.Len(t, grid.Cells, 4)
	})
}

func TestStorageService_UpdateUnitResize(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Rack", 2, 2)
	created := receiveInto(t, env, ctx, unit.ID, "L-3", 1)

	t.Run("grow adds cells", func(t *testing.T) {
		updated, err := env.storage.UpdateUnit(ctx, unit.ID, &domain.UpdateStorageUnitRequest{Rows: intPtr(3), Cols: intPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Capacity)

		grid, err := env.storage.Grid(ctx, unit.ID)
		require.NoError(t, err)
		assert.Len(t, grid.Cells, 9)
		assert.Equal(t, "C3", grid.Cells[8].Label)
	})

	t.Run("shrink over an occupied cell is refused", func(t *testing.T) {
		_, err := env.vials.Move(ctx, &domain.MoveVialsRequest{
			VialIDs:      []uuid.UUID{created.Vials[0].ID},
			TargetUnitID: unit.ID,
			Mode:         domain.MoveModePick,
			CellIDs:      []uuid.UUID{cellID(t, env, ctx, unit.ID, "C3")},
		})
		require.NoError(t, err)

		_, err = env.storage.UpdateUnit(ctx, unit.ID, &domain.UpdateStorageUnitRequest{Rows: intPtr(2)})
		assert.ErrorIs(t, err, service.ErrResizeOccupied)
	})

	t.Run("rename keeps the grid", func(t *testing.T) {
		updated, err := env.storage.UpdateUnit(ctx, unit.ID, &domain.UpdateStorageUnitRequest{Name: strPtr("Rack A")})
		require.NoError(t, err)
		assert.Equal(t, "Rack A", updated.Name)
		assert.Equal(t, 9, updated.Capacity)
		assert.Equal(t, int64(1), updated.Occupied)
	})
}

func TestStorageService_DeleteUnit(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	full := createUnit(t, env, ctx, "Full", 1, 1)
	receiveInto(t, env, ctx, full.ID, "L-4", 1)
	assert.ErrorIs(t, env.storage.DeleteUnit(ctx, full.ID), service.ErrUnitNotEmpty)

	empty := createUnit(t, env, ctx, "Empty", 1, 1)
	require.NoError(t, env.storage.DeleteUnit(ctx, empty.ID))
	_, err := env.storage.Grid(ctx, empty.ID)
	assert.ErrorIs(t, err, service.ErrStorageUnitNotFound)
}

func TestStorageService_Search(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)
	unit := createUnit(t, env, ctx, "Freezer", 2, 2)
	created := receiveInto(t, env, ctx, unit.ID, "L-5", 2)

	locations, err := env.storage.Search(ctx, created.Lot.AntibodyID)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	for _, loc := range locations {
		assert.Equal(t, "Freezer", loc.StorageUnitName)
		assert.Equal(t, "L-5", loc.LotNumber)
	}
}

func TestStorageService_OtherLabUnitIsHidden(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	unit := createUnit(t, env, testutil.ContextFor(supervisor), "Box", 1, 1)

	otherLab := testutil.CreateTestLab(t, env.db, "Other Lab")
	outsider := testutil.CreateTestUser(t, env.db, otherLab, domain.RoleSupervisor)

	_, err := env.storage.Grid(testutil.ContextFor(outsider), unit.ID)
	assert.ErrorIs(t, err, service.ErrStorageUnitNotFound)
}

func strPtr(s string) *string { return &s }
