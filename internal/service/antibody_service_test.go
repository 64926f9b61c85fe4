package service_test

import (
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAntibodyService_CreateEnsuresFluorochrome(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	_, err := env.fluorochrome.Create(ctx, &domain.CreateFluorochromeRequest{Name: "FITC", Color: "#00FF00"})
	require.NoError(t, err)

	first, err := env.antibodies.Create(ctx, &domain.CreateAntibodyRequest{Target: "CD3", Fluorochrome: "fitc"})
	require.NoError(t, err)
	assert.Equal(t, "FITC", first.Fluorochrome, "stored spelling is reused")
	assert.Equal(t, "#00ff00", first.FluorochromeColor)
	assert.Equal(t, "CD3-FITC", first.DisplayName)
	assert.Equal(t, domain.DesignationRUO, first.Designation)

	second, err := env.antibodies.Create(ctx, &domain.CreateAntibodyRequest{Target: "CD4", Fluorochrome: "BV605", Designation: domain.DesignationIVD})
	require.NoError(t, err)
	assert.Equal(t, service.DefaultFluorochromeColor("BV605"), second.FluorochromeColor)

	fluorochromes, err := env.fluorochrome.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fluorochromes, 2)

	_, err = env.fluorochrome.Create(ctx, &domain.CreateFluorochromeRequest{Name: "bv605", Color: "#123456"})
	assert.ErrorIs(t, err, service.ErrDuplicateFluorochrome)
}

func TestFluorochromeService_DeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	_, err := env.antibodies.Create(ctx, &domain.CreateAntibodyRequest{Target: "CD8", Fluorochrome: "APC"})
	require.NoError(t, err)
	spare, err := env.fluorochrome.Create(ctx, &domain.CreateFluorochromeRequest{Name: "PE", Color: "#ff8800"})
	require.NoError(t, err)

	fluorochromes, err := env.fluorochrome.List(ctx)
	require.NoError(t, err)
	for _, f := range fluorochromes {
		if f.Name == "APC" {
			assert.ErrorIs(t, env.fluorochrome.Delete(ctx, f.ID), service.ErrFluorochromeInUse)
		}
	}
	require.NoError(t, env.fluorochrome.Delete(ctx, spare.ID))
}

func TestAntibodyService_StockLevels(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD20", "PE")
	antibody.LowStockThreshold = intPtr(3)
	antibody.ApprovedLowThreshold = intPtr(1)
	require.NoError(t, env.db.Save(antibody).Error)

	_, approved := testutil.CreateTestLot(t, env.db, antibody, "A-1", domain.QCStatusApproved, nil, 2)
	testutil.CreateTestLot(t, env.db, antibody, "P-1", domain.QCStatusPending, nil, 2)

	_, err := env.vials.Open(ctx, approved[0].ID, &domain.OpenVialRequest{})
	require.NoError(t, err)

	dto, err := env.antibodies.GetByID(ctx, antibody.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), dto.Counts.Sealed)
	assert.Equal(t, int64(1), dto.Counts.Opened)
	assert.Equal(t, int64(4), dto.StockCount)
	assert.Equal(t, int64(2), dto.ApprovedStockCount)
	assert.False(t, dto.IsLowStock)
	assert.False(t, dto.IsApprovedLow)

	t.Run("sealed-only counting", func(t *testing.T) {
		settings := domain.DefaultLabSettings()
		settings.SealedCountsOnly = true
		testutil.UpdateLabSettings(t, env.db, env.lab, settings)
		t.Cleanup(func() { testutil.UpdateLabSettings(t, env.db, env.lab, domain.DefaultLabSettings()) })

		dto, err := env.antibodies.GetByID(ctx, antibody.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), dto.StockCount)
		assert.Equal(t, int64(1), dto.ApprovedStockCount)
		assert.True(t, dto.IsLowStock)
		assert.True(t, dto.IsApprovedLow)

		low, err := env.antibodies.ListLowStock(ctx, env.lab.ID)
		require.NoError(t, err)
		require.Len(t, low, 1)
		assert.Equal(t, antibody.ID, low[0].ID)
	})

	t.Run("negative threshold clears it", func(t *testing.T) {
		updated, err := env.antibodies.Update(ctx, antibody.ID, &domain.UpdateAntibodyRequest{
			LowStockThreshold: intPtr(-1),
			StabilityDays:     intPtr(0),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.LowStockThreshold)
		assert.Nil(t, updated.StabilityDays)
		assert.False(t, updated.IsLowStock)
		require.NotNil(t, updated.ApprovedLowThreshold)
	})
}

func TestAntibodyService_ArchivedLotsDoNotCount(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD34", "PE")
	lot, _ := testutil.CreateTestLot(t, env.db, antibody, "OLD", domain.QCStatusApproved, nil, 2)
	lot.IsArchived = true
	require.NoError(t, env.db.Omit("Antibody").Save(lot).Error)

	dto, err := env.antibodies.GetByID(ctx, antibody.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dto.Counts.Sealed)
	assert.Zero(t, dto.StockCount)
}

func TestAntibodyService_ListAndArchive(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	ctx := testutil.ContextFor(supervisor)

	keep, err := env.antibodies.Create(ctx, &domain.CreateAntibodyRequest{Target: "CD3", Fluorochrome: "FITC", Clone: "UCHT1"})
	require.NoError(t, err)
	drop, err := env.antibodies.Create(ctx, &domain.CreateAntibodyRequest{Target: "CD14", Fluorochrome: "PE"})
	require.NoError(t, err)

	archived, err := env.antibodies.Archive(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	active, err := env.antibodies.List(ctx, &repository.AntibodyFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	all, err := env.antibodies.List(ctx, &repository.AntibodyFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := env.antibodies.List(ctx, &repository.AntibodyFilter{Search: "ucht"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, keep.ID, found[0].ID)

	_, err = env.lots.Create(ctx, &domain.CreateLotRequest{AntibodyID: drop.ID, LotNumber: "Z", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrAntibodyInactive)
}

func TestAntibodyService_LabIsolation(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD5", "PE")

	other := testutil.CreateTestLab(t, env.db, "Other")
	outsider := testutil.CreateTestUser(t, env.db, other, domain.RoleLabAdmin)

	_, err := env.antibodies.GetByID(testutil.ContextFor(outsider), antibody.ID)
	assert.ErrorIs(t, err, service.ErrAntibodyNotFound)

	list, err := env.antibodies.List(testutil.ContextFor(outsider), nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.antibodies.GetByID(testutil.ContextFor(supervisor), antibody.ID)
	assert.NoError(t, err)
}

func TestAntibodyService_ListSorted(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)
	for _, target := range []string{"CD4", "CD19", "CD8"} {
		testutil.CreateTestAntibody(t, env.db, env.lab, target, "PE")
	}

	targets := func(dtos []domain.AntibodyDTO) []string {
		out := make([]string, len(dtos))
		for i, d := range dtos {
			out[i] = d.Target
		}
		return out
	}

	byDefault, err := env.antibodies.List(ctx, &repository.AntibodyFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"CD19", "CD4", "CD8"}, targets(byDefault))

	desc, err := env.antibodies.List(ctx, &repository.AntibodyFilter{
		Sort: &repository.SortConfig{Field: "target", Order: repository.SortOrderDesc},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CD8", "CD4", "CD19"}, targets(desc))

	unknownField, err := env.antibodies.List(ctx, &repository.AntibodyFilter{
		Sort: &repository.SortConfig{Field: "target; DROP TABLE antibodies", Order: repository.SortOrderAsc},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CD19", "CD4", "CD8"}, targets(unknownField))
}
