package service_test

import (
	"testing"

	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/labaid/labaid-api/internal/service"
	"github.com/labaid/labaid-api/internal/storage"
	"github.com/labaid/labaid-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires every service against one in-memory database
type testEnv struct {
	db  *gorm.DB
	lab *domain.Lab

	auth         *service.AuthService
	users        *service.UserService
	labs         *service.LabService
	fluorochrome *service.FluorochromeService
	antibodies   *service.AntibodyService
	lots         *service.LotService
	vials        *service.VialService
	storage      *service.StorageService
	audit        *service.AuditLogService
	tickets      *service.TicketService
	documents    *service.DocumentService
	dashboard    *service.DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	authCfg := &config.AuthConfig{
		JWTSecret:          "test-secret-that-is-long-enough-for-hs256",
		Issuer:             "labaid-test",
		TokenTTLMinutes:    60,
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
	auditRepo := repository.NewAuditLogRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	env := &testEnv{db: db}
	env.audit = service.NewAuditLogService(auditRepo, logger)
	env.auth = service.NewAuthService(db, userRepo, labRepo, auth.NewTokenIssuer(authCfg), env.audit, authCfg, logger)
	env.users = service.NewUserService(db, userRepo, labRepo, env.audit, authCfg, logger)
	env.labs = service.NewLabService(db, labRepo, env.audit, logger)
	env.fluorochrome = service.NewFluorochromeService(db, fluorochromeRepo, antibodyRepo, env.audit, logger)
	env.antibodies = service.NewAntibodyService(db, antibodyRepo, vialRepo, labRepo, fluorochromeRepo, env.fluorochrome, env.audit, logger)
	env.storage = service.NewStorageService(db, storageRepo, vialRepo, labRepo, fluorochromeRepo, env.audit, logger)
	env.lots = service.NewLotService(db, lotRepo, antibodyRepo, vialRepo, documentRepo, labRepo, env.storage, env.audit, logger)
	env.vials = service.NewVialService(db, vialRepo, storageRepo, env.storage, env.audit, logger)
	env.tickets = service.NewTicketService(db, ticketRepo, env.audit, logger)
	env.documents = service.NewDocumentService(db, documentRepo, lotRepo, store, env.audit, logger)
	env.dashboard = service.NewDashboardService(labRepo, lotRepo, vialRepo, env.antibodies, env.lots, logger)

	env.lab = testutil.CreateTestLab(t, db, "Flow Lab")
	return env
}

// countAudit counts audit rows with the given action
func countAudit(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.AuditLog{}).Where("action = ?", action).Count(&n).Error)
	return n
}

func intPtr(v int) *int { return &v }
