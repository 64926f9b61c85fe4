package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/database"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "correct-horse-battery"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// Each test gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=on", name, uuid.NewString()[:8])

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateTestLab creates an active lab with default settings
func CreateTestLab(t *testing.T, db *gorm.DB, name string) *domain.Lab {
	t.Helper()
	lab := &domain.Lab{
		Name:     name,
		IsActive: true,
		Settings: domain.DefaultLabSettings(),
	}
	require.NoError(t, db.Create(lab).Error)
	return lab
}

// UpdateLabSettings overwrites the settings of a lab
func UpdateLabSettings(t *testing.T, db *gorm.DB, lab *domain.Lab, settings domain.LabSettings) {
	t.Helper()
	lab.Settings = settings
	require.NoError(t, db.Save(lab).Error)
}

// CreateTestUser creates an active user with TestPassword. Pass a nil lab for a super admin.
func CreateTestUser(t *testing.T, db *gorm.DB, lab *domain.Lab, role domain.UserRole) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(TestPassword, 4)
	require.NoError(t, err)

	user := &domain.User{
		Email:        fmt.Sprintf("%s-%s@labaid.test", role, uuid.NewString()[:8]),
		FullName:     fmt.Sprintf("Test %s", role),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if lab != nil {
		user.LabID = &lab.ID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// ContextFor returns a request context authenticated as user and scoped to the user's lab
func ContextFor(user *domain.User) context.Context {
	ctx := auth.WithUserContext(context.Background(), auth.NewUserContext(user))
	return auth.WithLabFilter(ctx, &auth.LabFilter{LabID: user.LabID})
}

// ContextForLab returns a context authenticated as user with lab selected explicitly
func ContextForLab(user *domain.User, lab *domain.Lab) context.Context {
	ctx := auth.WithUserContext(context.Background(), auth.NewUserContext(user))
	labID := lab.ID
	return auth.WithLabFilter(ctx, &auth.LabFilter{LabID: &labID, Selected: true})
}

// SystemContextForLab returns a context authenticated with the admin API key, lab selected
func SystemContextForLab(lab *domain.Lab) context.Context {
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:   auth.SystemUserID,
		FullName: "System",
		Role:     domain.RoleSuperAdmin,
		IsSystem: true,
	})
	labID := lab.ID
	return auth.WithLabFilter(ctx, &auth.LabFilter{LabID: &labID, Selected: true})
}

// CreateTestAntibody creates an active antibody in a lab
func CreateTestAntibody(t *testing.T, db *gorm.DB, lab *domain.Lab, target, fluorochrome string) *domain.Antibody {
	t.Helper()
	antibody := &domain.Antibody{
		LabID:        lab.ID,
		Target:       target,
		Fluorochrome: fluorochrome,
		Designation:  domain.DesignationRUO,
		IsActive:     true,
	}
	require.NoError(t, db.Create(antibody).Error)
	return antibody
}

// CreateTestLot creates a lot with count sealed, unplaced vials
func CreateTestLot(t *testing.T, db *gorm.DB, antibody *domain.Antibody, lotNumber string, qc domain.QCStatus, expiration *time.Time, count int) (*domain.Lot, []domain.Vial) {
	t.Helper()
	lot := &domain.Lot{
		LabID:          antibody.LabID,
		AntibodyID:     antibody.ID,
		LotNumber:      lotNumber,
		ExpirationDate: expiration,
		QCStatus:       qc,
	}
	require.NoError(t, db.Create(lot).Error)

	vials := make([]domain.Vial, count)
	for i := range vials {
		vials[i] = domain.Vial{
			LabID:      lot.LabID,
			LotID:      lot.ID,
			AntibodyID: lot.AntibodyID,
			Status:     domain.VialStatusSealed,
			ReceivedAt: time.Now().UTC(),
		}
	}
	if count > 0 {
		require.NoError(t, db.Omit("Lot", "LocationCell").Create(&vials).Error)
	}
	return lot, vials
}

// Date returns midnight UTC of the day offset by days from today
func Date(days int) *time.Time {
	y, m, d := time.Now().UTC().Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &t
}
