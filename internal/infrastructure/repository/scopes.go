package repository

import (
	"strings"
	"time"

	"github.com/sangkips/laundromart-api/pkg/pagination"
	"gorm.io/gorm"
)

// SearchScope matches term case-insensitively against any of the columns.
// LOWER/LIKE keeps the query portable between PostgreSQL and SQLite.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			conds[i] = "LOWER(" + c + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// DateRangeScope bounds column to [from, to).
func DateRangeScope(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where(column+" < ?", to.UTC())
		}
		return db
	}
}

// Paginate applies offset and limit for page-based pagination.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
