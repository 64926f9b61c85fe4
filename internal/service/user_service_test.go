package service_test

import (
	"context"
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	env := newTestEnv(t)
	labAdmin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)
	ctx := testutil.ContextFor(labAdmin)

	created, err := env.users.Create(ctx, &domain.CreateUserRequest{
		Email:    "New.Tech@Example.org",
		FullName: " New Tech ",
		Role:     domain.RoleTech,
	})
	require.NoError(t, err)
	assert.Equal(t, "new.tech@example.org", created.User.Email)
	assert.Equal(t, "New Tech", created.User.FullName)
	assert.True(t, created.User.MustChangePassword)
	require.NotNil(t, created.User.LabID)
	assert.Equal(t, env.lab.ID, *created.User.LabID)
	assert.Len(t, created.TemporaryPassword, 12)

	resp, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: "new.tech@example.org", Password: created.TemporaryPassword})
	require.NoError(t, err)
	assert.True(t, resp.User.MustChangePassword)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "NEW.TECH@example.org", FullName: "Again", Role: domain.RoleTech})
		assert.ErrorIs(t, err, service.ErrDuplicateEmail)
	})

	t.Run("lab admin cannot create super admins", func(t *testing.T) {
		_, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "root@example.org", FullName: "Root", Role: domain.RoleSuperAdmin})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("lab admin cannot target another lab", func(t *testing.T) {
		other := testutil.CreateTestLab(t, env.db, "Other")
		_, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "x@example.org", FullName: "X", Role: domain.RoleTech, LabID: &other.ID})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestUserService_CreateAsSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)
	ctx := testutil.ContextFor(admin)

	_, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "a@example.org", FullName: "A", Role: domain.RoleTech})
	assert.ErrorIs(t, err, service.ErrLabRequired)

	created, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "a@example.org", FullName: "A", Role: domain.RoleTech, LabID: &env.lab.ID})
	require.NoError(t, err)
	assert.Equal(t, env.lab.ID, *created.User.LabID)

	root, err := env.users.Create(ctx, &domain.CreateUserRequest{Email: "root@example.org", FullName: "Root", Role: domain.RoleSuperAdmin, LabID: &env.lab.ID})
	require.NoError(t, err)
	assert.Nil(t, root.User.LabID, "super admins belong to no lab")
}

func TestUserService_Update(t *testing.T) {
	env := newTestEnv(t)
	labAdmin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	ctx := testutil.ContextFor(labAdmin)

	role := domain.RoleSupervisor
	updated, err := env.users.Update(ctx, tech.ID, &domain.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupervisor, updated.Role)

	inactive := false
	updated, err = env.users.Update(ctx, tech.ID, &domain.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = env.users.Update(ctx, labAdmin.ID, &domain.UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, service.ErrCannotDeactivateSelf)

	superRole := domain.RoleSuperAdmin
	_, err = env.users.Update(ctx, tech.ID, &domain.UpdateUserRequest{Role: &superRole})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	other := testutil.CreateTestLab(t, env.db, "Other")
	stranger := testutil.CreateTestUser(t, env.db, other, domain.RoleTech)
	_, err = env.users.Update(ctx, stranger.ID, &domain.UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	assert.Equal(t, int64(2), countAudit(t, env.db, domain.ActionUserUpdate))
}

func TestUserService_PromotionToSuperAdminDropsLab(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	superRole := domain.RoleSuperAdmin
	updated, err := env.users.Update(testutil.ContextFor(admin), tech.ID, &domain.UpdateUserRequest{Role: &superRole})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, updated.Role)
	assert.Nil(t, updated.LabID)

	var stored domain.User
	require.NoError(t, env.db.First(&stored, "id = ?", tech.ID).Error)
	assert.Nil(t, stored.LabID)

	var entry domain.AuditLog
	require.NoError(t, env.db.Where("action = ?", domain.ActionUserUpdate).First(&entry).Error)
	require.NotNil(t, entry.LabID)
	assert.Equal(t, env.lab.ID, *entry.LabID)
}

func TestUserService_ResetPassword(t *testing.T) {
	env := newTestEnv(t)
	labAdmin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	reset, err := env.users.ResetPassword(testutil.ContextFor(labAdmin), tech.ID)
	require.NoError(t, err)
	assert.True(t, reset.User.MustChangePassword)

	_, err = env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: testutil.TestPassword})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: reset.TemporaryPassword})
	assert.NoError(t, err)
}

func TestUserService_ListIsLabScoped(t *testing.T) {
	env := newTestEnv(t)
	labAdmin := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleLabAdmin)
	testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	other := testutil.CreateTestLab(t, env.db, "Other")
	testutil.CreateTestUser(t, env.db, other, domain.RoleTech)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)

	mine, err := env.users.List(testutil.ContextFor(labAdmin), &repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := env.users.List(testutil.ContextFor(admin), &repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
