// Package repo is the thin persistence layer over a GORM handle, one file
// per concern. This file carries the small aggregate queries the health
// endpoint reports.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-caddy-backend/internal/domain"
)

// ShotsStats returns aggregate metadata for the shot log: the total number of
// recorded shots and the CreatedAt timestamp of the most recent one.
//
// It executes two lightweight queries against the shot_results table. When
// nothing has been recorded, the returned count is 0 and lastRecorded is nil.
//
// Return values:
//   - count:        total recorded shots
//   - lastRecorded: pointer to the newest CreatedAt, or nil if no rows
//   - err:          database error, if any
func ShotsStats(ctx context.Context, db *gorm.DB) (count int64, lastRecorded *time.Time, err error) {
	if count, err = CountShots(ctx, db); err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	err = db.WithContext(ctx).
		Model(&domain.ShotResult{}).
		Select("created_at").
		Order("seq DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
