// Package repo is the thin persistence layer over a GORM handle, one file
// per concern. This file holds the repository functions for the shot log.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. No
// business logic lives here, only append/read persistence and query
// composition.
//
// Error semantics:
//   - The shot log has no not-found case: an empty log is a valid, empty
//     slice, never an error.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - AppendShot(ctx, db, shot) -> error
//     Inserts one ShotResult row at the end of the log. The hidden seq
//     column is assigned by the database; duplicate client ids are fine.
//
//   - ListShots(ctx, db) -> []domain.ShotResult, error
//     Returns the full log in append order (seq ascending).
//
//   - CountShots(ctx, db) -> (int64, error)
//     Returns the number of recorded shots.
//
// Usage:
//
//	// Within a service layer transaction
//	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
//	    if err := repo.AppendShot(ctx, tx, &shot); err != nil {
//	        return err
//	    }
//	    log, err := repo.ListShots(ctx, tx)
//	    ...
//	})
//
// This repository is designed to be wrapped by a higher-level service
// (see services.ShotService) which owns transactional append semantics.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-caddy-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// AppendShot inserts one shot at the end of the log. The database assigns
// the next seq value; shot.Seq is populated on return. CreatedAt is set to
// UTC if the caller left it zero. Client ids are stored as given, including
// duplicates. On failure, it returns a DB error.
func AppendShot(ctx context.Context, db *gorm.DB, shot *domain.ShotResult) error {
	if shot.CreatedAt.IsZero() {
		shot.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(shot).Error
}

// ListShots returns every recorded shot in append order (seq ascending).
// It returns an empty slice when nothing has been recorded. On DB error,
// it returns the error.
func ListShots(ctx context.Context, db *gorm.DB) ([]domain.ShotResult, error) {
	out := make([]domain.ShotResult, 0, 16)
	err := db.WithContext(ctx).
		Order("seq asc").
		Find(&out).Error
	return out, err
}

// CountShots returns the total number of recorded shots.
// On DB error, it returns the error.
func CountShots(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ShotResult{}).
		Count(&total).Error
	return total, err
}
