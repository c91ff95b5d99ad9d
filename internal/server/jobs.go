package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/equicharts/race-results-tracker/internal/async"
	"github.com/equicharts/race-results-tracker/internal/common"
	"github.com/equicharts/race-results-tracker/internal/entity"
	"github.com/equicharts/race-results-tracker/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

const createJobSchema = `{
	"type": "object",
	"required": ["title", "pdf_path"],
	"properties": {
		"title":    {"type": "string", "minLength": 1, "maxLength": 255},
		"pdf_path": {"type": "string", "minLength": 1},
		"format":   {"type": "string", "enum": ["csv", "xlsx"]}
	},
	"additionalProperties": false
}`

var createJobValidator = mustCompileSchema(createJobSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader([]byte(src))); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	return compiler.MustCompile("schema.json")
}

// Remover is the slice of the object store the handler needs for cleanup.
type Remover interface {
	Remove(ctx context.Context, paths []string) error
}

// JobsHandler serves the /jobs resource.
type JobsHandler struct {
	jobs   repository.JobRepository
	queue  async.Queue
	store  Remover
	logger *slog.Logger
}

func NewJobsHandler(jobs repository.JobRepository, queue async.Queue, store Remover, logger *slog.Logger) *JobsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobsHandler{jobs: jobs, queue: queue, store: store, logger: logger}
}

func (h *JobsHandler) Register(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.delete)
	})
}

type createJobRequest struct {
	Title   string `json:"title"`
	PDFPath string `json:"pdf_path"`
	Format  string `json:"format"`
}

func (h *JobsHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if err := createJobValidator.Validate(payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createJobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	job, err := h.jobs.Create(r.Context(), req.Title, req.PDFPath, req.Format)
	if err != nil {
		h.logger.Error("create job failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	if err := h.queue.Enqueue(r.Context(), async.Job{JobID: job.ID, SubmittedAt: time.Now()}); err != nil {
		h.logger.Error("enqueue failed", "job_id", job.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to enqueue job")
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

type listJobsResponse struct {
	Jobs     []*entity.Job `json:"jobs"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	NextPage *int          `json:"next_page,omitempty"`
}

func (h *JobsHandler) list(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	// Fetch one extra row to learn whether another page exists.
	jobs, err := h.jobs.List(r.Context(), (page-1)*limit, limit+1)
	if err != nil {
		h.logger.Error("list jobs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	resp := listJobsResponse{Jobs: jobs, Page: page, Limit: limit}
	if len(jobs) > limit {
		resp.Jobs = jobs[:limit]
		next := page + 1
		resp.NextPage = &next
	}
	if resp.Jobs == nil {
		resp.Jobs = []*entity.Job{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *JobsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("get job failed", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("get job failed", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}

	// Object cleanup is best effort; the row goes away regardless. A
	// completed job also owns a generated output object.
	paths := []string{job.PDFPath}
	if job.OutputPath != nil {
		paths = append(paths, *job.OutputPath)
	}
	if err := h.store.Remove(r.Context(), paths); err != nil {
		h.logger.Warn("failed to remove stored objects", "job_id", id, "error", err)
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil && !errors.Is(err, common.ErrNotFound) {
		h.logger.Error("delete job failed", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
