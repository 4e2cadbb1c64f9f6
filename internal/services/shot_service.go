// Package services – ShotService
//
// This file implements ShotService, the owner of the append-only shot log.
// Record appends a shot and reads the full log back inside one transaction,
// so the returned log always reflects the state the moment after the append.
// Client ids are opaque labels: duplicates are accepted, and ordering comes
// solely from insertion order.
//
// Service-level behavior is deliberately thin; persistence details live in
// the repo package behind the ShotRepo interface so tests and the router can
// swap implementations.
package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-caddy-backend/internal/domain"
)

// shotsRecorded counts shots successfully appended over the process lifetime.
var shotsRecorded = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "caddy_shots_recorded_total",
		Help: "Total number of shot results recorded.",
	},
)

func init() {
	prometheus.MustRegister(shotsRecorded)
}

// ShotRepo defines the repository contract required by ShotService.
// Implementations are responsible for persistence of the shot log.
type ShotRepo interface {
	// AppendShot inserts a shot at the tail of the log.
	AppendShot(ctx context.Context, db *gorm.DB, shot *domain.ShotResult) error

	// ListShots returns the whole log in insertion order.
	ListShots(ctx context.Context, db *gorm.DB) ([]domain.ShotResult, error)
}

// ShotService provides append and list operations over the shot log.
type ShotService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the shot repository used by this service.
	Repo ShotRepo
}

// NewShotService constructs a ShotService backed by db and r.
func NewShotService(db *gorm.DB, r ShotRepo) *ShotService {
	return &ShotService{DB: db, Repo: r}
}

// Record appends shot to the log and returns the full log including it.
// The append and the read-back run in a single transaction so concurrent
// saves each observe their own shot in the log they get back.
func (s *ShotService) Record(ctx context.Context, shot *domain.ShotResult) ([]domain.ShotResult, error) {
	tr := otel.Tracer("services/ShotService")
	ctx, span := tr.Start(ctx, "Record",
		trace.WithAttributes(
			attribute.Int("shot.id", shot.ID),
			attribute.String("shot.club", shot.Club),
		),
	)
	defer span.End()

	var shots []domain.ShotResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.AppendShot(ctx, tx, shot); err != nil {
			return err
		}
		items, err := s.Repo.ListShots(ctx, tx)
		if err != nil {
			return err
		}
		shots = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	shotsRecorded.Inc()
	return shots, nil
}

// List returns the full shot log in insertion order.
func (s *ShotService) List(ctx context.Context) ([]domain.ShotResult, error) {
	tr := otel.Tracer("services/ShotService")
	ctx, span := tr.Start(ctx, "List")
	defer span.End()

	return s.Repo.ListShots(ctx, s.DB)
}
