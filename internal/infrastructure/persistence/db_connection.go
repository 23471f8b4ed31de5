package persistence

import (
	"fmt"
	"log"
	"strings"

	"github.com/MGTheTrain/request-signer/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/request-signer/internal/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteInMemoryDSN = ":memory:"

// NewDBConnection opens the signature record store described by settings.
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	switch settings.Type {
	case config.PostgresDbType:
		return openPostgres(settings)
	case config.SqliteDbType:
		return openSQLite(settings.DSN)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

// openPostgres connects to the server and, when a database name is configured,
// creates it if needed and reconnects to it.
func openPostgres(settings config.DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if settings.Name == "" {
		return db, nil
	}

	// CREATE DATABASE fails when the database exists; the reconnect below reports real problems.
	_ = db.Exec("CREATE DATABASE " + quoteIdentifier(settings.Name)).Error
	if err := CloseDB(db); err != nil {
		return nil, fmt.Errorf("failed to close bootstrap connection: %w", err)
	}

	dsn := fmt.Sprintf("%s dbname=%s", settings.DSN, settings.Name)
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database '%s': %w", settings.Name, err)
	}
	return db, nil
}

func openSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = sqliteInMemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if dsn != sqliteInMemoryDSN {
		return db, nil
	}

	// Every pooled connection to :memory: opens its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// quoteIdentifier renders name as a double-quoted SQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Migrate creates or updates the signature_records table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SignatureRecordModel{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CloseDB releases the pool behind db.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase removes a PostgreSQL database created for integration tests.
func DropDatabase(adminDSN, dbName string) error {
	db, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() {
		if err := CloseDB(db); err != nil {
			log.Printf("Warning: failed to close database connection: %v", err)
		}
	}()

	if err := db.Exec("DROP DATABASE IF EXISTS " + quoteIdentifier(dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}
	return nil
}
