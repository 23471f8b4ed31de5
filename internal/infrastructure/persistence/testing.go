//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/request-signer/internal/domain/signing"
	"github.com/MGTheTrain/request-signer/internal/pkg/config"
	"github.com/MGTheTrain/request-signer/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB         *gorm.DB
	RecordRepo signing.SignatureRecordRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

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

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	recordRepo, err := NewGormSignatureRecordRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create signature record repository")

	return &TestContext{
		DB:         db,
		RecordRepo: recordRepo,
	}
}

// CreateTestRecord creates a valid signature record for operation and endpoint
func CreateTestRecord(t *testing.T, operation, endpoint string, created time.Time) *signing.SignatureRecord {
	t.Helper()

	bodyHash := "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"
	timestamp := "2024-01-01T00:00:00+07:00"
	return &signing.SignatureRecord{
		ID:              uuid.NewString(),
		Operation:       operation,
		HTTPMethod:      "POST",
		Endpoint:        endpoint,
		Timestamp:       timestamp,
		BodyHashHex:     bodyHash,
		CanonicalString: "POST:" + endpoint + ":" + bodyHash + ":" + timestamp,
		SignatureBase64: "c2lnbmF0dXJl",
		DateTimeCreated: created,
		Valid:           true,
	}
}
