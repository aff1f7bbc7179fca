package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
)

// IdempotencyRepository defines operations for idempotency key management
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve claims the key for an in-flight request. It returns false when
	// a live entry already holds the key; an entry expired at now is replaced.
	Reserve(ctx context.Context, key *entity.IdempotencyKey, now time.Time) (bool, error)
	// Complete stores the response for a reserved key.
	Complete(ctx context.Context, key *entity.IdempotencyKey) error
	// Release drops a reservation that never completed.
	Release(ctx context.Context, key string, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
