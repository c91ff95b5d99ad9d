package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/equicharts/race-results-tracker/constants"
	"github.com/equicharts/race-results-tracker/internal/common"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, _, err := Open(context.Background(), common.DatabaseConfig{DSN: ":memory:"}, logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { Close(db, nil, logger) })
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func testRepo(t *testing.T) JobRepository {
	t.Helper()
	return NewJobRepository(testDB(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRebind(t *testing.T) {
	db := &DB{dialect: DialectSQLite}
	got := db.Rebind(`UPDATE jobs SET status = $1 WHERE id = $12`)
	want := `UPDATE jobs SET status = ? WHERE id = ?`
	if got != want {
		t.Errorf("Rebind = %q, want %q", got, want)
	}

	pg := &DB{dialect: DialectPostgres}
	q := `SELECT 1 WHERE x = $1`
	if pg.Rebind(q) != q {
		t.Errorf("postgres Rebind changed query")
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	job, err := repo.Create(ctx, "Aqueduct charts", "uploads/abc.pdf", "csv")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != string(constants.JobStatusProcessing) {
		t.Errorf("status = %q", job.Status)
	}

	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Aqueduct charts" || got.PDFPath != "uploads/abc.pdf" || got.Format != "csv" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.DownloadURL != nil || got.ErrorMessage != nil || got.CompletedAt != nil {
		t.Errorf("fresh job has terminal fields set: %+v", got)
	}
	if !got.CreatedAt.Equal(job.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, job.CreatedAt)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := testRepo(t)
	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkCompleted(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	job, err := repo.Create(ctx, "t", "uploads/a.pdf", "csv")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkCompleted(ctx, job.ID, "https://example.com/signed", "outputs/job-x.csv", "worker-2"); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(constants.JobStatusCompleted) {
		t.Errorf("status = %q", got.Status)
	}
	if got.DownloadURL == nil || *got.DownloadURL != "https://example.com/signed" {
		t.Errorf("download_url = %v", got.DownloadURL)
	}
	if got.OutputPath == nil || *got.OutputPath != "outputs/job-x.csv" {
		t.Errorf("output_path = %v", got.OutputPath)
	}
	if got.WorkerID == nil || *got.WorkerID != "worker-2" {
		t.Errorf("worker_id = %v", got.WorkerID)
	}
	if got.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	if err := repo.MarkCompleted(ctx, uuid.New(), "x", "y", "w"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}
}

func TestMarkFailed(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	job, err := repo.Create(ctx, "t", "uploads/a.pdf", "xlsx")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkFailed(ctx, job.ID, "no race header found", "worker-1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(constants.JobStatusFailed) {
		t.Errorf("status = %q", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "no race header found" {
		t.Errorf("error_message = %v", got.ErrorMessage)
	}
	if got.WorkerID == nil || *got.WorkerID != "worker-1" {
		t.Errorf("worker_id = %v", got.WorkerID)
	}
}

func TestListPagination(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Create(ctx, "t", "uploads/a.pdf", "csv"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := repo.List(ctx, 0, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("len(page) = %d", len(page))
	}

	rest, err := repo.List(ctx, 3, 3)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("len(rest) = %d", len(rest))
	}

	seen := map[uuid.UUID]bool{}
	for _, j := range append(page, rest...) {
		if seen[j.ID] {
			t.Errorf("duplicate job %s across pages", j.ID)
		}
		seen[j.ID] = true
	}
}

func TestListOrdersSubsecondTies(t *testing.T) {
	db := testDB(t)
	repo := NewJobRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	insert := func(id uuid.UUID, at time.Time) {
		t.Helper()
		_, err := db.ExecContext(ctx, db.Rebind(
			`INSERT INTO jobs (id, title, pdf_path, format, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`),
			id.String(), "t", "uploads/a.pdf", "csv", "processing",
			at.Format(timeLayout))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	// .5s vs .51s: a trimming layout renders ".5Z" and ".51Z", which sort
	// backwards as text.
	older := uuid.New()
	newer := uuid.New()
	insert(older, base.Add(500*time.Millisecond))
	insert(newer, base.Add(510*time.Millisecond))

	jobs, err := repo.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d", len(jobs))
	}
	if jobs[0].ID != newer || jobs[1].ID != older {
		t.Errorf("order = [%s, %s], want newest first", jobs[0].ID, jobs[1].ID)
	}
}

func TestTimeLayoutFixedWidth(t *testing.T) {
	a := time.Date(2025, 1, 1, 12, 0, 0, 500_000_000, time.UTC).Format(timeLayout)
	b := time.Date(2025, 1, 1, 12, 0, 0, 510_000_000, time.UTC).Format(timeLayout)
	if len(a) != len(b) {
		t.Fatalf("layout not fixed width: %q vs %q", a, b)
	}
	if !(a < b) {
		t.Errorf("text order broken: %q should sort before %q", a, b)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	job, err := repo.Create(ctx, "t", "uploads/a.pdf", "csv")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, job.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
	if err := repo.Delete(ctx, job.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}
