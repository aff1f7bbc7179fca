package service

import (
	"errors"
	"time"

	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/pagination"
	"gorm.io/gorm"
)

// storeError translates repository sentinels into API errors. Anything else
// passes through unchanged.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domainRepo.ErrReferenceMissing):
		return apperror.NewNotFoundError(resource)
	case errors.Is(err, domainRepo.ErrStateChanged):
		return apperror.NewConflictError(resource + " was changed by another request")
	case errors.Is(err, domainRepo.ErrHasDependents):
		return apperror.NewConflictError(resource + " still has dependent records")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflictError(resource + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.NewConflictError(resource + " references a missing or in-use record")
	}
	return err
}

// clock is swapped in tests.
type clock func() time.Time

func systemClock() time.Time { return time.Now() }

func dateOrToday(d *time.Time, now time.Time) time.Time {
	if d == nil || d.IsZero() {
		return now.UTC()
	}
	return d.UTC()
}

func pageParams(p *pagination.PaginationParams) *pagination.PaginationParams {
	if p == nil {
		p = pagination.DefaultPagination()
	}
	p.Validate()
	return p
}
