package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setVialStatus(t *testing.T, db *gorm.DB, vial domain.Vial, status domain.VialStatus, openExpiration *time.Time) {
	t.Helper()
	updates := map[string]interface{}{"status": status}
	if openExpiration != nil {
		updates["open_expiration"] = *openExpiration
	}
	require.NoError(t, db.Model(&domain.Vial{}).Where("id = ?", vial.ID).Updates(updates).Error)
}

func TestDashboardService_SummaryForLab(t *testing.T) {
	env := newTestEnv(t)

	cd3 := testutil.CreateTestAntibody(t, env.db, env.lab, "CD3", "FITC")
	expired, _ := testutil.CreateTestLot(t, env.db, cd3, "EXP", domain.QCStatusApproved, testutil.Date(-5), 1)
	_, goneVials := testutil.CreateTestLot(t, env.db, cd3, "GONE", domain.QCStatusApproved, testutil.Date(-3), 1)
	setVialStatus(t, env.db, goneVials[0], domain.VialStatusDepleted, nil)
	expiring, _ := testutil.CreateTestLot(t, env.db, cd3, "SOON", domain.QCStatusApproved, testutil.Date(10), 2)
	pending, _ := testutil.CreateTestLot(t, env.db, cd3, "FAR", domain.QCStatusPending, testutil.Date(200), 1)
	_, openVials := testutil.CreateTestLot(t, env.db, cd3, "OPEN", domain.QCStatusApproved, testutil.Date(100), 1)
	setVialStatus(t, env.db, openVials[0], domain.VialStatusOpened, testutil.Date(-1))

	cd4 := testutil.CreateTestAntibody(t, env.db, env.lab, "CD4", "PE")
	cd4.LowStockThreshold = intPtr(5)
	cd4.ApprovedLowThreshold = intPtr(5)
	require.NoError(t, env.db.Save(cd4).Error)
	testutil.CreateTestLot(t, env.db, cd4, "LOW", domain.QCStatusApproved, nil, 1)

	summary, err := env.dashboard.SummaryForLab(context.Background(), env.lab.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ExpiredLots, "depleted lots are not reported")
	assert.Equal(t, 1, summary.ExpiredOpenVials)
	assert.Equal(t, 1, summary.ExpiringLots)
	assert.Equal(t, 1, summary.PendingQC)
	assert.Equal(t, 1, summary.LowStock)
	assert.Equal(t, 1, summary.ApprovedLow)
	assert.Equal(t, 30, summary.ExpiryWarnDays)
	assert.True(t, summary.HasAlerts())

	kinds := make([]domain.PriorityKind, len(summary.Priorities))
	for i, p := range summary.Priorities {
		kinds[i] = p.Kind
	}
	assert.Equal(t, []domain.PriorityKind{
		domain.PriorityExpiredLot,
		domain.PriorityExpiredOpenVial,
		domain.PriorityPendingQC,
		domain.PriorityLowStock,
		domain.PriorityApprovedLow,
		domain.PriorityExpiringLot,
	}, kinds)

	assert.Equal(t, expired.ID, summary.Priorities[0].EntityID)
	assert.Equal(t, "CD3-FITC lot EXP", summary.Priorities[0].Title)
	assert.Equal(t, openVials[0].ID, summary.Priorities[1].EntityID)
	assert.Equal(t, pending.ID, summary.Priorities[2].EntityID)
	assert.Equal(t, cd4.ID, summary.Priorities[3].EntityID)
	assert.Nil(t, summary.Priorities[3].DueDate)
	assert.Equal(t, expiring.ID, summary.Priorities[5].EntityID)
}

func TestDashboardService_SeverityOutranksDueDateAndTitle(t *testing.T) {
	env := newTestEnv(t)

	cd5 := testutil.CreateTestAntibody(t, env.db, env.lab, "CD5", "FITC")
	expired, _ := testutil.CreateTestLot(t, env.db, cd5, "EXP", domain.QCStatusApproved, testutil.Date(-1), 1)
	_, openVials := testutil.CreateTestLot(t, env.db, cd5, "OPEN", domain.QCStatusApproved, testutil.Date(100), 1)
	setVialStatus(t, env.db, openVials[0], domain.VialStatusOpened, testutil.Date(-20))

	zzz := testutil.CreateTestAntibody(t, env.db, env.lab, "ZZZ", "PE")
	zzz.LowStockThreshold = intPtr(5)
	require.NoError(t, env.db.Save(zzz).Error)
	testutil.CreateTestLot(t, env.db, zzz, "Z-1", domain.QCStatusApproved, nil, 1)

	aaa := testutil.CreateTestAntibody(t, env.db, env.lab, "AAA", "APC")
	aaa.ApprovedLowThreshold = intPtr(5)
	require.NoError(t, env.db.Save(aaa).Error)
	testutil.CreateTestLot(t, env.db, aaa, "A-1", domain.QCStatusApproved, nil, 1)

	summary, err := env.dashboard.SummaryForLab(context.Background(), env.lab.ID)
	require.NoError(t, err)
	require.Len(t, summary.Priorities, 4)

	assert.Equal(t, domain.PriorityExpiredLot, summary.Priorities[0].Kind)
	assert.Equal(t, expired.ID, summary.Priorities[0].EntityID)
	assert.Equal(t, domain.PriorityExpiredOpenVial, summary.Priorities[1].Kind)
	assert.Equal(t, openVials[0].ID, summary.Priorities[1].EntityID)
	assert.Equal(t, domain.PriorityLowStock, summary.Priorities[2].Kind)
	assert.Equal(t, zzz.ID, summary.Priorities[2].EntityID)
	assert.Equal(t, domain.PriorityApprovedLow, summary.Priorities[3].Kind)
	assert.Equal(t, aaa.ID, summary.Priorities[3].EntityID)
}

func TestDashboardService_EmptyLab(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	summary, err := env.dashboard.Summary(testutil.ContextFor(tech))
	require.NoError(t, err)
	assert.Equal(t, env.lab.ID, summary.LabID)
	assert.Empty(t, summary.Priorities)
	assert.False(t, summary.HasAlerts())
}

func TestDashboardService_SuperAdminNeedsLab(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)

	_, err := env.dashboard.Summary(testutil.ContextFor(admin))
	assert.ErrorIs(t, err, service.ErrLabRequired)

	summary, err := env.dashboard.Summary(testutil.ContextForLab(admin, env.lab))
	require.NoError(t, err)
	assert.Equal(t, env.lab.ID, summary.LabID)
}

func TestDashboardService_InventoryExport(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	antibody := testutil.CreateTestAntibody(t, env.db, env.lab, "CD7", "APC")
	testutil.CreateTestLot(t, env.db, antibody, "X-1", domain.QCStatusApproved, testutil.Date(60), 2)

	data, err := env.dashboard.InventoryExport(testutil.ContextFor(tech))
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "PK", string(data[:2]))
}
