package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := env.auth.Login(context.Background(), &domain.LoginRequest{
			Email:    strings.ToUpper(tech.Email),
			Password: testutil.TestPassword,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Greater(t, resp.ExpiresIn, int64(0))
		assert.Equal(t, tech.ID, resp.User.ID)
		assert.NotNil(t, resp.User.LastLoginAt)
		assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionUserLogin))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: "nope-nope"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: "ghost@labaid.test", Password: testutil.TestPassword})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		idle := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
		require.NoError(t, env.db.Model(idle).Update("is_active", false).Error)
		_, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: idle.Email, Password: testutil.TestPassword})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginSuspendedLab(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)

	_, err := env.labs.Suspend(testutil.ContextFor(admin), env.lab.ID)
	require.NoError(t, err)

	_, err = env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: testutil.TestPassword})
	assert.ErrorIs(t, err, service.ErrLabSuspended)

	resp, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: admin.Email, Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Nil(t, resp.User.LabID)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	supervisor := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleSupervisor)
	admin := testutil.CreateTestUser(t, env.db, nil, domain.RoleSuperAdmin)

	me, err := env.auth.Me(testutil.ContextFor(supervisor))
	require.NoError(t, err)
	assert.Equal(t, supervisor.Email, me.User.Email)
	require.NotNil(t, me.Lab)
	assert.Equal(t, "Flow Lab", me.Lab.Name)
	assert.True(t, me.Lab.Settings.StorageEnabled)

	me, err = env.auth.Me(testutil.ContextFor(admin))
	require.NoError(t, err)
	assert.Nil(t, me.Lab)

	me, err = env.auth.Me(testutil.ContextForLab(admin, env.lab))
	require.NoError(t, err)
	require.NotNil(t, me.Lab)
	assert.Equal(t, env.lab.ID, me.Lab.ID)

	_, err = env.auth.Me(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)
	require.NoError(t, env.db.Model(tech).Update("must_change_password", true).Error)
	ctx := testutil.ContextFor(tech)

	err := env.auth.ChangePassword(ctx, &domain.ChangePasswordRequest{CurrentPassword: "wrong-password", NewPassword: "brand-new-secret"})
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	err = env.auth.ChangePassword(ctx, &domain.ChangePasswordRequest{CurrentPassword: testutil.TestPassword, NewPassword: testutil.TestPassword})
	assert.ErrorIs(t, err, service.ErrPasswordUnchanged)

	require.NoError(t, env.auth.ChangePassword(ctx, &domain.ChangePasswordRequest{CurrentPassword: testutil.TestPassword, NewPassword: "brand-new-secret"}))

	resp, err := env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: "brand-new-secret"})
	require.NoError(t, err)
	assert.False(t, resp.User.MustChangePassword)
	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionUserChangePassword))

	_, err = env.auth.Login(context.Background(), &domain.LoginRequest{Email: tech.Email, Password: testutil.TestPassword})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	tech := testutil.CreateTestUser(t, env.db, env.lab, domain.RoleTech)

	require.NoError(t, env.auth.Logout(testutil.ContextFor(tech)))
	assert.Equal(t, int64(1), countAudit(t, env.db, domain.ActionUserLogout))
}
