package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAudit(t *testing.T, db *gorm.DB, lab *domain.Lab, action string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&domain.AuditLog{
		LabID:      &lab.ID,
		Action:     action,
		EntityType: domain.EntityLot,
		CreatedAt:  at,
	}).Error)
}

func TestAuditLogService_RecordTakesActorFromContext(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := auth.WithRequestMeta(testutil.ContextFor(tech), auth.RequestMeta{
		IPAddress: "10.0.0.7",
		RequestID: "req-1",
	})
	entityID := uuid.New()

	err := env.audit.Record(ctx, nil, service.AuditEntry{
		LabID:      &env.lab.ID,
		Action:     domain.ActionLotCreate,
		EntityType: domain.EntityLot,
		EntityID:   &entityID,
		After:      map[string]string{"lotNumber": "42"},
	})
	require.NoError(t, err)

	history, err := env.audit.ListByEntity(ctx, domain.EntityLot, entityID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	entry := history[0]
	require.NotNil(t, entry.UserID)
	assert.Equal(t, tech.ID, *entry.UserID)
	assert.Equal(t, tech.FullName, entry.UserName)
	assert.Equal(t, "10.0.0.7", entry.IPAddress)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.JSONEq(t, `{"lotNumber":"42"}`, string(entry.AfterState))
	assert.Empty(t, entry.BeforeState)
}

func TestAuditLogService_RecordRollsBackWithTransaction(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := testutil.ContextFor(tech)

	_ = env.db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, env.audit.Record(ctx, tx, service.AuditEntry{
			LabID:      &env.lab.ID,
			Action:     domain.ActionLotArchive,
			EntityType: domain.EntityLot,
		}))
		return assert.AnError
	})
	assert.Zero(t, countAudit(t, env.db, domain.ActionLotArchive))
}

func TestAuditLogService_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)
	ctx := testutil.ContextFor(admin)

	seedAudit(t, env.db, env.lab, domain.ActionLotCreate, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	seedAudit(t, env.db, env.lab, domain.ActionLotQC, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
	seedAudit(t, env.db, env.lab, domain.ActionLotCreate, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))
	other := testutil.CreateTestLab(t, env.db, "Other")
	seedAudit(t, env.db, other, domain.ActionLotCreate, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("newest first and lab scoped", func(t *testing.T) {
		page, err := env.audit.List(ctx, service.AuditQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		logs := page.Data.([]domain.AuditLogDTO)
		require.Len(t, logs, 3)
		assert.Equal(t, "2024-05-02T09:00:00Z", logs[0].CreatedAt)
	})

	t.Run("month range is inclusive", func(t *testing.T) {
		page, err := env.audit.List(ctx, service.AuditQuery{DateFrom: "2024-03", DateTo: "2024-03"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("day range and action", func(t *testing.T) {
		page, err := env.audit.List(ctx, service.AuditQuery{Action: domain.ActionLotCreate, DateFrom: "2024-03-01", DateTo: "2024-05-02"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := env.audit.List(ctx, service.AuditQuery{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Data.([]domain.AuditLogDTO), 1)
	})

	t.Run("invalid ranges", func(t *testing.T) {
		_, err := env.audit.List(ctx, service.AuditQuery{DateFrom: "March"})
		assert.ErrorIs(t, err, service.ErrInvalidDateRange)
		_, err = env.audit.List(ctx, service.AuditQuery{DateFrom: "2024-06", DateTo: "2024-05"})
		assert.ErrorIs(t, err, service.ErrInvalidDateRange)
	})

	t.Run("range covers the lab's months", func(t *testing.T) {
		r, err := env.audit.Range(ctx)
		require.NoError(t, err)
		require.NotNil(t, r.MinMonth)
		require.NotNil(t, r.MaxMonth)
		assert.Equal(t, "2024-03", *r.MinMonth)
		assert.Equal(t, "2024-05", *r.MaxMonth)
	})

	t.Run("export renders a workbook", func(t *testing.T) {
		data, err := env.audit.Export(ctx, service.AuditQuery{DateFrom: "2024-03"})
		require.NoError(t, err)
		assert.Equal(t, "PK", string(data[:2]))
	})
}

func TestAuditLogService_RangeWithoutEntries(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)

	r, err := env.audit.Range(testutil.ContextFor(admin))
	require.NoError(t, err)
	assert.Nil(t, r.MinMonth)
	assert.Nil(t, r.MaxMonth)
}

func TestAuditLogService_PurgeOlderThan(t *testing.T) {
	env := newTestEnv(t)
	seedAudit(t, env.db, env.lab, domain.ActionLotCreate, time.Now().UTC().AddDate(0, 0, -400))
	seedAudit(t, env.db, env.lab, domain.ActionLotCreate, time.Now().UTC().AddDate(0, 0, -10))

	removed, err := env.audit.PurgeOlderThan(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = env.audit.PurgeOlderThan(context.Background(), 365)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionLotCreate))
}
