package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyLease is how long a reservation blocks retries when the
	// first request never finishes
	IdempotencyLease     = time.Minute
	maxIdempotencyKeyLen = 255
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo  repository.IdempotencyRepository
	TTL   time.Duration
	Lease time.Duration
	Now   func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a POST is retried with the
// same key. The key is reserved before the handler runs, so a concurrent
// retry gets 409 instead of a second write. Only successful responses are
// stored; a failed attempt releases the key so it can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}
	if cfg.Lease <= 0 {
		cfg.Lease = IdempotencyLease
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		v, ok := c.Get(ContextUserID)
		if !ok {
			c.Next()
			return
		}
		userID, ok := v.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()
		now := cfg.Now()
		existing, err := cfg.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			zap.L().Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired(now) {
			if existing.Endpoint != endpoint {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				c.Abort()
				return
			}
			if existing.IsPending() {
				inFlight(c)
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:       key,
			UserID:    userID,
			Endpoint:  endpoint,
			ExpiresAt: now.Add(cfg.Lease).UTC(),
		}
		reserved, err := cfg.Repo.Reserve(ctx, ikey, now)
		if err != nil {
			zap.L().Warn("idempotency reserve failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			inFlight(c)
			return
		}

		// the outcome is recorded even if the client has gone away
		storeCtx := context.WithoutCancel(ctx)
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := cfg.Repo.Release(storeCtx, key, userID); err != nil {
				zap.L().Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
			}
		}()

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		ikey.ResponseCode = status
		ikey.ResponseBody = blw.body.String()
		ikey.ExpiresAt = cfg.Now().Add(cfg.TTL).UTC()
		if err := cfg.Repo.Complete(storeCtx, ikey); err != nil {
			zap.L().Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
			return
		}
		completed = true
	}
}

func inFlight(c *gin.Context) {
	c.Header("Retry-After", "1")
	response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still being processed")
	c.Abort()
}
