package database

import (
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewReadDB wraps the gorm connection pool for hand-written report queries.
func NewReadDB(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver := "sqlite3"
	if db.Dialector.Name() == "postgres" {
		driver = "postgres"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}
