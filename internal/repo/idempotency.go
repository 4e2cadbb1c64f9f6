// Package repo is the thin persistence layer over a GORM handle, one file
// per concern. This file stores and recalls Idempotency-Key results so a
// retried save can be answered without a second append.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-caddy-backend/internal/domain"
)

// ErrDuplicate reports an insert against a key that already holds a result.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency fetches the live record for key. Blank keys and expired
// rows both read as ErrNotFound; callers cannot tell them apart and have no
// reason to.
func GetIdempotency(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	q := db.WithContext(ctx).Where("key = ? AND expires_at > ?", key, now)
	if err := q.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency records a completed save under key for ttl. A second
// insert on the same key reports ErrDuplicate, which callers treat as an
// already-won race rather than a failure.
func CreateIdempotency(ctx context.Context, db *gorm.DB, key string, shotSeq int64, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		Key:       key,
		ShotSeq:   shotSeq,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	err := db.WithContext(ctx).Create(rec).Error
	switch {
	case err == nil:
		return rec, nil
	case isUniqueViolation(err):
		return nil, ErrDuplicate
	default:
		return nil, err
	}
}

// isUniqueViolation matches GORM's translated error plus the plain-text
// variants glebarez/sqlite produces for UNIQUE constraint failures.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "constraint failed: unique")
}
