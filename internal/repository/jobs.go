package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/equicharts/race-results-tracker/constants"
	"github.com/equicharts/race-results-tracker/internal/common"
	"github.com/equicharts/race-results-tracker/internal/entity"
)

type JobRepository interface {
	Create(ctx context.Context, title, pdfPath, format string) (*entity.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	List(ctx context.Context, offset, limit int) ([]*entity.Job, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, downloadURL, outputPath, workerID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, message, workerID string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewJobRepository(db *DB, log *slog.Logger) JobRepository {
	return &jobRepo{db: db, log: log}
}

// Fixed-width so the text column sorts chronologically; RFC3339Nano trims
// trailing fractional zeros and breaks lexicographic ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (r *jobRepo) Create(ctx context.Context, title, pdfPath, format string) (*entity.Job, error) {
	job := &entity.Job{
		ID:        uuid.New(),
		Title:     title,
		PDFPath:   pdfPath,
		Format:    format,
		Status:    string(constants.JobStatusProcessing),
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO jobs (id, title, pdf_path, format, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`),
		job.ID.String(), job.Title, job.PDFPath, job.Format, job.Status,
		job.CreatedAt.Format(timeLayout))
	if err != nil {
		r.log.Error("job create failed", "title", title, "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to create job", err)
	}
	r.log.Info("job created", "job_id", job.ID, "pdf_path", pdfPath, "format", format)
	return job, nil
}

func (r *jobRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(
		`SELECT id, title, pdf_path, format, status, download_url, output_path,
		        error_message, worker_id, created_at, completed_at
		 FROM jobs WHERE id = $1`), id.String())
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		r.log.Error("job get failed", "job_id", id, "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to get job", err)
	}
	return job, nil
}

func (r *jobRepo) List(ctx context.Context, offset, limit int) ([]*entity.Job, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(
		`SELECT id, title, pdf_path, format, status, download_url, output_path,
		        error_message, worker_id, created_at, completed_at
		 FROM jobs ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`), limit, offset)
	if err != nil {
		r.log.Error("job list failed", "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to list jobs", err)
	}
	defer rows.Close()

	jobs := make([]*entity.Job, 0, limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to list jobs", err)
	}
	return jobs, nil
}

func (r *jobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, downloadURL, outputPath, workerID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE jobs SET status = $1, download_url = $2, output_path = $3,
		        worker_id = $4, completed_at = $5
		 WHERE id = $6`),
		string(constants.JobStatusCompleted), downloadURL, outputPath, workerID,
		time.Now().UTC().Format(timeLayout), id.String())
	if err != nil {
		r.log.Error("job mark completed failed", "job_id", id, "err", err)
		return common.NewAppError("DB_ERROR", "failed to update job", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	r.log.Info("job completed", "job_id", id)
	return nil
}

func (r *jobRepo) MarkFailed(ctx context.Context, id uuid.UUID, message, workerID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE jobs SET status = $1, error_message = $2, worker_id = $3,
		        completed_at = $4
		 WHERE id = $5`),
		string(constants.JobStatusFailed), message, workerID,
		time.Now().UTC().Format(timeLayout), id.String())
	if err != nil {
		r.log.Error("job mark failed failed", "job_id", id, "err", err)
		return common.NewAppError("DB_ERROR", "failed to update job", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	r.log.Warn("job failed", "job_id", id, "error", message)
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM jobs WHERE id = $1`), id.String())
	if err != nil {
		r.log.Error("job delete failed", "job_id", id, "err", err)
		return common.NewAppError("DB_ERROR", "failed to delete job", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	r.log.Info("job deleted", "job_id", id)
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewAppError("DB_ERROR", "failed to read rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.Job, error) {
	var (
		job          entity.Job
		id           string
		downloadURL  sql.NullString
		outputPath   sql.NullString
		errorMessage sql.NullString
		workerID     sql.NullString
		createdAt    string
		completedAt  sql.NullString
	)
	err := row.Scan(&id, &job.Title, &job.PDFPath, &job.Format, &job.Status,
		&downloadURL, &outputPath, &errorMessage, &workerID, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}
	job.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	job.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, err
	}
	if downloadURL.Valid {
		job.DownloadURL = &downloadURL.String
	}
	if outputPath.Valid {
		job.OutputPath = &outputPath.String
	}
	if errorMessage.Valid {
		job.ErrorMessage = &errorMessage.String
	}
	if workerID.Valid {
		job.WorkerID = &workerID.String
	}
	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, err
		}
		job.CompletedAt = &t
	}
	return &job, nil
}
