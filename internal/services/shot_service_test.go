package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-caddy-backend/internal/domain"
	"github.com/tbourn/go-caddy-backend/internal/repo"
)

// ---------- test helpers ----------

func newShotDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:shotsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// gormShotRepo proxies the repo free functions, mirroring the production shim.
type gormShotRepo struct{}

func (gormShotRepo) AppendShot(ctx context.Context, db *gorm.DB, shot *domain.ShotResult) error {
	return repo.AppendShot(ctx, db, shot)
}

func (gormShotRepo) ListShots(ctx context.Context, db *gorm.DB) ([]domain.ShotResult, error) {
	return repo.ListShots(ctx, db)
}

// listFailRepo appends for real but fails the read-back, to exercise rollback.
var errListFail = errors.New("list-fail")

type listFailRepo struct{}

func (listFailRepo) AppendShot(ctx context.Context, db *gorm.DB, shot *domain.ShotResult) error {
	return repo.AppendShot(ctx, db, shot)
}

func (listFailRepo) ListShots(ctx context.Context, db *gorm.DB) ([]domain.ShotResult, error) {
	return nil, errListFail
}

// ---------- Record() ----------

func TestShotService_Record_AppendsAndReturnsFullLog(t *testing.T) {
	db := newShotDB(t, &domain.ShotResult{})
	s := NewShotService(db, gormShotRepo{})

	base := testutil.ToFloat64(shotsRecorded)

	first := &domain.ShotResult{
		ID:               7,
		IntendedDistance: 150,
		Club:             "7-iron",
		Contact:          domain.Contact{Toe: 1},
		Result:           domain.Result{Short: 1},
	}
	log1, err := s.Record(context.Background(), first)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if len(log1) != 1 {
		t.Fatalf("expected 1 shot after first record, got %d", len(log1))
	}
	if log1[0].ID != 7 || log1[0].Club != "7-iron" || log1[0].Contact.Toe != 1 || log1[0].Result.Short != 1 {
		t.Fatalf("first shot round-trip mismatch: %#v", log1[0])
	}

	second := &domain.ShotResult{ID: 3, IntendedDistance: 95, Club: "pw"}
	log2, err := s.Record(context.Background(), second)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if len(log2) != 2 {
		t.Fatalf("expected 2 shots after second record, got %d", len(log2))
	}
	// Insertion order, not id order.
	if log2[0].ID != 7 || log2[1].ID != 3 {
		t.Fatalf("log order = [%d, %d]; want [7, 3]", log2[0].ID, log2[1].ID)
	}

	if got := testutil.ToFloat64(shotsRecorded) - base; got != 2 {
		t.Fatalf("shots recorded counter delta = %v; want 2", got)
	}
}

func TestShotService_Record_DuplicateClientIDsAccepted(t *testing.T) {
	db := newShotDB(t, &domain.ShotResult{})
	s := NewShotService(db, gormShotRepo{})

	for i := 0; i < 2; i++ {
		if _, err := s.Record(context.Background(), &domain.ShotResult{ID: 1, Club: "driver"}); err != nil {
			t.Fatalf("Record #%d error: %v", i+1, err)
		}
	}

	log, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(log) != 2 || log[0].ID != 1 || log[1].ID != 1 {
		t.Fatalf("expected two shots with client id 1, got %#v", log)
	}
	if log[0].Seq >= log[1].Seq {
		t.Fatalf("seq not increasing: %d then %d", log[0].Seq, log[1].Seq)
	}
}

func TestShotService_Record_AppendError_MissingTable(t *testing.T) {
	db := newShotDB(t /* no migrations */)
	s := NewShotService(db, gormShotRepo{})

	base := testutil.ToFloat64(shotsRecorded)
	if _, err := s.Record(context.Background(), &domain.ShotResult{ID: 1}); err == nil {
		t.Fatalf("expected error due to missing shot_results table")
	}
	if got := testutil.ToFloat64(shotsRecorded) - base; got != 0 {
		t.Fatalf("counter moved on failed record: %v", got)
	}
}

func TestShotService_Record_RollsBackOnListError(t *testing.T) {
	db := newShotDB(t, &domain.ShotResult{})
	s := NewShotService(db, listFailRepo{})

	_, err := s.Record(context.Background(), &domain.ShotResult{ID: 4, Club: "9-iron"})
	if !errors.Is(err, errListFail) {
		t.Fatalf("expected list-fail error, got %v", err)
	}

	// The append must have been rolled back with the failed read-back.
	count, err := repo.CountShots(context.Background(), db)
	if err != nil {
		t.Fatalf("CountShots error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave 0 shots, got %d", count)
	}
}

// ---------- List() ----------

func TestShotService_List_EmptyLogIsNonNil(t *testing.T) {
	db := newShotDB(t, &domain.ShotResult{})
	s := NewShotService(db, gormShotRepo{})

	log, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if log == nil {
		t.Fatalf("expected non-nil empty log")
	}
	if len(log) != 0 {
		t.Fatalf("expected empty log, got %d items", len(log))
	}
}

func TestShotService_List_InsertionOrder(t *testing.T) {
	db := newShotDB(t, &domain.ShotResult{})
	s := NewShotService(db, gormShotRepo{})

	ids := []int{9, 2, 5}
	for _, id := range ids {
		if err := repo.AppendShot(context.Background(), db, &domain.ShotResult{ID: id}); err != nil {
			t.Fatalf("seed shot %d: %v", id, err)
		}
	}

	log, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(log) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(log))
	}
	for i, id := range ids {
		if log[i].ID != id {
			t.Fatalf("log[%d].ID = %d; want %d", i, log[i].ID, id)
		}
	}
}
