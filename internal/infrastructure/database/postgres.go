package database

import (
	"fmt"
	"time"

	"github.com/sangkips/laundromart-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// zapWriter routes gorm's logger through the global zap logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	zap.S().Debugf(format, args...)
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.New(zapWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	}
}

// Open connects to the configured database driver.
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg.Path, debug)
	case "postgres", "":
		return NewPostgresDB(cfg, debug)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zap.S().Infow("connected to database", "driver", "postgres", "host", cfg.Host, "name", cfg.Name)
	return db, nil
}

// NewSQLiteDB opens a single-connection SQLite database, used for local runs
// and tests. Foreign keys are enforced and writers wait on the busy lock.
func NewSQLiteDB(path string, debug bool) (*gorm.DB, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	zap.S().Infow("connected to database", "driver", "sqlite", "path", path)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
