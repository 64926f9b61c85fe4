package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/http/handler"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/storage"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type handlers struct {
	db  *gorm.DB
	lab *domain.Lab

	auth      *handler.AuthHandler
	antibody  *handler.AntibodyHandler
	lot       *handler.LotHandler
	vial      *handler.VialHandler
	storage   *handler.StorageHandler
	audit     *handler.AuditHandler
	document  *handler.DocumentHandler
	dashboard *handler.DashboardHandler
}

func setupHandlers(t *testing.T) *handlers {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	authCfg := &config.AuthConfig{
		JWTSecret:          "handler-test-secret-long-enough-for-hs256",
		Issuer:             "labaid-test",
		TokenTTLMinutes:    15,
		BcryptCost:         4,
		TempPasswordLength: 12,
	}

	labRepo := repository.NewLabRepository(db)
	userRepo := repository.NewUserRepository(db)
	fluorochromeRepo := repository.NewFluorochromeRepository(db)
	antibodyRepo := repository.NewAntibodyRepository(db)
	lotRepo := repository.NewLotRepository(db)
	vialRepo := repository.NewVialRepository(db)
	storageRepo := repository.NewStorageRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	auditService := service.NewAuditLogService(repository.NewAuditLogRepository(db), logger)
	authService := service.NewAuthService(db, userRepo, labRepo, auth.NewTokenIssuer(authCfg), auditService, authCfg, logger)
	fluorochromeService := service.NewFluorochromeService(db, fluorochromeRepo, antibodyRepo, auditService, logger)
	antibodyService := service.NewAntibodyService(db, antibodyRepo, vialRepo, labRepo, fluorochromeRepo, fluorochromeService, auditService, logger)
	storageService := service.NewStorageService(db, storageRepo, vialRepo, labRepo, fluorochromeRepo, auditService, logger)
	lotService := service.NewLotService(db, lotRepo, antibodyRepo, vialRepo, documentRepo, labRepo, storageService, auditService, logger)
	vialService := service.NewVialService(db, vialRepo, storageRepo, storageService, auditService, logger)
	documentService := service.NewDocumentService(db, documentRepo, lotRepo, store, auditService, logger)
	dashboardService := service.NewDashboardService(labRepo, lotRepo, vialRepo, antibodyService, lotService, logger)

	return &handlers{
		db:        db,
		lab:       testutil.CreateTestLab(t, db, "Flow Lab"),
		auth:      handler.NewAuthHandler(authService, logger),
		antibody:  handler.NewAntibodyHandler(antibodyService, logger),
		lot:       handler.NewLotHandler(lotService, logger),
		vial:      handler.NewVialHandler(vialService, logger),
		storage:   handler.NewStorageHandler(storageService, logger),
		audit:     handler.NewAuditHandler(auditService, logger),
		document:  handler.NewDocumentHandler(documentService, 1, logger),
		dashboard: handler.NewDashboardHandler(dashboardService, logger),
	}
}

// newRequest builds a request with a JSON body, an authenticated context and chi URL params
func newRequest(ctx context.Context, method, target string, body interface{}, params map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	return apiErr
}
