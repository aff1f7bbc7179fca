package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND user_id = ?", key, userID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey, now time.Time) (bool, error) {
	reserved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("key = ? AND user_id = ? AND expires_at < ?", ikey.Key, ikey.UserID, now).
			Delete(&entity.IdempotencyKey{}).Error
		if err != nil {
			return err
		}

		// The (key, user_id) unique index decides between racing requests.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ikey)
		if res.Error != nil {
			return res.Error
		}
		reserved = res.RowsAffected == 1
		return nil
	})
	return reserved, err
}

func (r *idempotencyRepository) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	res := r.db.WithContext(ctx).Model(&entity.IdempotencyKey{}).
		Where("key = ? AND user_id = ?", ikey.Key, ikey.UserID).
		Updates(map[string]interface{}{
			"endpoint":      ikey.Endpoint,
			"response_code": ikey.ResponseCode,
			"response_body": ikey.ResponseBody,
			"expires_at":    ikey.ExpiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStateChanged
	}
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, key string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("key = ? AND user_id = ? AND response_code = 0", key, userID).
		Delete(&entity.IdempotencyKey{}).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
