//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/toypas/internal/domain/runs"
	"github.com/MGTheTrain/toypas/internal/pkg/config"
	"github.com/MGTheTrain/toypas/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB      *gorm.DB
	RunRepo runs.RunRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	err = Migrate(db)
	require.NoError(t, err, "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)
	runRepo, err := NewGormRunRepository(db, logger)
	require.NoError(t, err, "Failed to create run repository")

	return &TestContext{
		DB:      db,
		RunRepo: runRepo,
	}
}

// CreateTestRun creates a succeeded run of the given kind
func CreateTestRun(t *testing.T, kind, name string) *runs.RunMeta {
	t.Helper()

	if name == "" {
		name = "test-run"
	}

	return &runs.RunMeta{
		ID:              uuid.NewString(),
		DateTimeCreated: time.Now(),
		Kind:            kind,
		Name:            name,
		Parameter:       10,
		Duration:        time.Millisecond,
		Status:          runs.StatusSucceeded,
		Result:          "ok",
	}
}
