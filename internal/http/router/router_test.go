package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/http/handler"
	"github.com/labaid/labaid-api/internal/http/middleware"
	"github.com/labaid/labaid-api/internal/http/router"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/storage"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testAPIKey = "router-test-api-key"

type api struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	cfg := &config.Config{
		App:       config.AppConfig{Name: "labaid", Environment: "test"},
		Auth:      config.AuthConfig{JWTSecret: "router-test-secret-long-enough-for-hs256", Issuer: "labaid-test", TokenTTLMinutes: 15, BcryptCost: 4, TempPasswordLength: 12},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	labRepo := repository.NewLabRepository(db)
	userRepo := repository.NewUserRepository(db)
	fluorochromeRepo := repository.NewFluorochromeRepository(db)
	antibodyRepo := repository.NewAntibodyRepository(db)
	lotRepo := repository.NewLotRepository(db)
	vialRepo := repository.NewVialRepository(db)
	storageRepo := repository.NewStorageRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	tokens := auth.NewTokenIssuer(&cfg.Auth)
	auditService := service.NewAuditLogService(repository.NewAuditLogRepository(db), logger)
	authService := service.NewAuthService(db, userRepo, labRepo, tokens, auditService, &cfg.Auth, logger)
	userService := service.NewUserService(db, userRepo, labRepo, auditService, &cfg.Auth, logger)
	labService := service.NewLabService(db, labRepo, auditService, logger)
	fluorochromeService := service.NewFluorochromeService(db, fluorochromeRepo, antibodyRepo, auditService, logger)
	antibodyService := service.NewAntibodyService(db, antibodyRepo, vialRepo, labRepo, fluorochromeRepo, fluorochromeService, auditService, logger)
	storageService := service.NewStorageService(db, storageRepo, vialRepo, labRepo, fluorochromeRepo, auditService, logger)
	lotService := service.NewLotService(db, lotRepo, antibodyRepo, vialRepo, documentRepo, labRepo, storageService, auditService, logger)
	vialService := service.NewVialService(db, vialRepo, storageRepo, storageService, auditService, logger)
	ticketService := service.NewTicketService(db, repository.NewTicketRepository(db), auditService, logger)
	documentService := service.NewDocumentService(db, documentRepo, lotRepo, store, auditService, logger)
	dashboardService := service.NewDashboardService(labRepo, lotRepo, vialRepo, antibodyService, lotService, logger)

	rt := router.NewRouter(
		cfg,
		logger,
		db,
		nil,
		auth.NewMiddleware(tokens, userRepo, testAPIKey, logger),
		middleware.NewLabFilterMiddleware(labRepo, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		router.Handlers{
			Auth:         handler.NewAuthHandler(authService, logger),
			User:         handler.NewUserHandler(userService, logger),
			Lab:          handler.NewLabHandler(labService, logger),
			Fluorochrome: handler.NewFluorochromeHandler(fluorochromeService, logger),
			Antibody:     handler.NewAntibodyHandler(antibodyService, logger),
			Lot:          handler.NewLotHandler(lotService, logger),
			Vial:         handler.NewVialHandler(vialService, logger),
			Storage:      handler.NewStorageHandler(storageService, logger),
			Audit:        handler.NewAuditHandler(auditService, logger),
			Ticket:       handler.NewTicketHandler(ticketService, logger),
			Document:     handler.NewDocumentHandler(documentService, 5, logger),
			Dashboard:    handler.NewDashboardHandler(dashboardService, logger),
		},
	)
	return &api{t: t, db: db, handler: rt.Setup()}
}

func (a *api) do(method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *api) login(user *domain.User) string {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/api/auth/login", "", domain.LoginRequest{Email: user.Email, Password: testutil.TestPassword}, nil)
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
	var resp domain.LoginResponse
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.AccessToken
}

func errorType(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	return apiErr.Type
}

func TestRouter_Health(t *testing.T) {
	a := newAPI(t)

	rr := a.do(http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = a.do(http.MethodGet, "/health/ready", "", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(http.MethodGet, "/health/db", "", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "max_open_connections")
}

func TestRouter_Authentication(t *testing.T) {
	a := newAPI(t)
	lab := testutil.CreateTestLab(t, a.db, "Flow Lab")
	tech := testutil.CreateTestUser(t, a.db, lab, domain.RoleTech)

	t.Run("no credentials", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/auth/me", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/auth/me", a.login(tech), nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var me domain.MeDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
		assert.Equal(t, tech.ID, me.User.ID)
	})

	t.Run("api key", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/labs", "", nil, map[string]string{"x-api-key": testAPIKey})
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = a.do(http.MethodGet, "/api/labs", "", nil, map[string]string{"x-api-key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deactivated user loses access", func(t *testing.T) {
		other := testutil.CreateTestUser(t, a.db, lab, domain.RoleTech)
		token := a.login(other)
		require.NoError(t, a.db.Model(other).Update("is_active", false).Error)

		rr := a.do(http.MethodGet, "/api/lots", token, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("suspended lab is refused", func(t *testing.T) {
		suspended := testutil.CreateTestLab(t, a.db, "Closed Lab")
		member := testutil.CreateTestUser(t, a.db, suspended, domain.RoleLabAdmin)
		token := a.login(member)
		require.NoError(t, a.db.Model(suspended).Update("is_active", false).Error)

		rr := a.do(http.MethodGet, "/api/lots", token, nil, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRouter_PasswordChangeRequired(t *testing.T) {
	a := newAPI(t)
	lab := testutil.CreateTestLab(t, a.db, "Flow Lab")
	user := testutil.CreateTestUser(t, a.db, lab, domain.RoleTech)
	require.NoError(t, a.db.Model(user).Update("must_change_password", true).Error)
	token := a.login(user)

	rr := a.do(http.MethodGet, "/api/lots", token, nil, nil)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, domain.ErrorTypePasswordChangeRequired, errorType(t, rr))

	rr = a.do(http.MethodGet, "/api/auth/me", token, nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(http.MethodPost, "/api/auth/change-password", token,
		domain.ChangePasswordRequest{CurrentPassword: testutil.TestPassword, NewPassword: "a-brand-new-password"}, nil)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = a.do(http.MethodGet, "/api/lots", token, nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_Permissions(t *testing.T) {
	a := newAPI(t)
	lab := testutil.CreateTestLab(t, a.db, "Flow Lab")
	readOnly := a.login(testutil.CreateTestUser(t, a.db, lab, domain.RoleReadOnly))
	tech := a.login(testutil.CreateTestUser(t, a.db, lab, domain.RoleTech))
	supervisor := a.login(testutil.CreateTestUser(t, a.db, lab, domain.RoleSupervisor))

	unit := domain.CreateStorageUnitRequest{Name: "Fridge", Rows: 2, Cols: 2}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
	}{
		{"read only can read lots", http.MethodGet, "/api/lots", readOnly, nil, http.StatusOK},
		{"read only can read audit", http.MethodGet, "/api/audit", readOnly, nil, http.StatusOK},
		{"read only cannot create lots", http.MethodPost, "/api/lots", readOnly, domain.CreateLotRequest{}, http.StatusForbidden},
		{"tech cannot manage storage", http.MethodPost, "/api/storage/units", tech, unit, http.StatusForbidden},
		{"tech cannot manage users", http.MethodGet, "/api/auth/users", tech, nil, http.StatusForbidden},
		{"supervisor manages storage", http.MethodPost, "/api/storage/units", supervisor, unit, http.StatusCreated},
		{"supervisor cannot change lab settings", http.MethodPatch, "/api/labs/" + lab.ID.String() + "/settings", supervisor, domain.UpdateLabSettingsRequest{}, http.StatusForbidden},
		{"supervisor cannot create labs", http.MethodPost, "/api/labs", supervisor, domain.CreateLabRequest{Name: "New"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := a.do(tt.method, tt.path, tt.token, tt.body, nil)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestRouter_LabFilter(t *testing.T) {
	a := newAPI(t)
	lab := testutil.CreateTestLab(t, a.db, "Flow Lab")
	other := testutil.CreateTestLab(t, a.db, "Other Lab")
	tech := a.login(testutil.CreateTestUser(t, a.db, lab, domain.RoleTech))
	admin := a.login(testutil.CreateTestUser(t, a.db, nil, domain.RoleSuperAdmin))

	antibody := testutil.CreateTestAntibody(t, a.db, other, "CD3", "FITC")
	testutil.CreateTestLot(t, a.db, antibody, "O-1", domain.QCStatusApproved, nil, 1)

	t.Run("member cannot pick another lab", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/lots", tech, nil, map[string]string{middleware.LabHeader: other.ID.String()})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("member may name their own lab", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/lots?labId="+lab.ID.String(), tech, nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("super admin selects a lab", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/lots", admin, nil, map[string]string{middleware.LabHeader: other.ID.String()})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "O-1")
	})

	t.Run("malformed lab id", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/lots", admin, nil, map[string]string{middleware.LabHeader: "lab-1"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown lab", func(t *testing.T) {
		rr := a.do(http.MethodGet, "/api/lots", admin, nil,
			map[string]string{middleware.LabHeader: "5f0c6f8e-0000-4000-8000-000000000001"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
