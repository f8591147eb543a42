package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
	"go-review-pipeline/internal/pipeline"
	"go-review-pipeline/internal/store"
	"go-review-pipeline/pkg/router"
)

// Route patterns served by the handler.
const (
	JobsPath       = "/api/v1/jobs"
	JobPath        = "/api/v1/jobs/*"
	JobErrorsPath  = "/api/v1/jobs/*/errors"
	JobFilesPath   = "/api/v1/jobs/*/files"
	JobMetricsPath = "/api/v1/jobs/*/metrics"
)

// Runner executes review fetches. *pipeline.Pipeline implements it.
type Runner interface {
	FetchProducts(ctx context.Context, skus []string, opts model.FetchOptions) (*pipeline.Result, error)
	FetchAll(ctx context.Context, opts model.FetchOptions) (*pipeline.Result, error)
}

// Handler serves the job API.
type Handler struct {
	store      *store.Store
	runner     Runner
	jobTimeout time.Duration
	logger     *slog.Logger
	jobs       sync.WaitGroup
}

func New(st *store.Store, runner Runner, jobTimeout time.Duration) *Handler {
	return &Handler{
		store:      st,
		runner:     runner,
		jobTimeout: jobTimeout,
		logger:     slog.Default(),
	}
}

// Wait blocks until every started job has finished.
func (h *Handler) Wait() {
	h.jobs.Wait()
}

// CreateJob creates a new review fetch job
// @Summary Create a new job
// @Description Validate a fetch request, store it and run it in the background
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body model.JobSpec true "Fetch request"
// @Success 200 {object} map[string]interface{} "Job created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var spec model.JobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, errors.InvalidInput("invalid JSON payload"))
		return
	}
	if err := pipeline.ValidateJobSpec(spec); err != nil {
		writeError(w, err)
		return
	}

	jobID := uuid.New().String()
	if err := h.store.SaveJob(r.Context(), jobID, spec); err != nil {
		h.logger.Error("Failed to save job", "job_id", jobID, "error", err)
		writeError(w, err)
		return
	}

	h.jobs.Add(1)
	go func() {
		defer h.jobs.Done()
		h.runJob(jobID, spec)
	}()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Job created successfully",
		"jobID":     jobID,
		"status":    store.StatusPending,
		"createdAt": time.Now().UTC(),
	})
}

func (h *Handler) runJob(jobID string, spec model.JobSpec) {
	ctx, cancel := context.WithTimeout(context.Background(), h.jobTimeout)
	defer cancel()
	// ledger writes must survive the job deadline
	bg := context.Background()
	logger := h.logger.With("job_id", jobID, "mode", spec.Mode)

	if err := h.store.UpdateJobStatus(bg, jobID, store.StatusRunning); err != nil {
		logger.Error("Failed to mark job running", "error", err)
	}

	var (
		result *pipeline.Result
		err    error
	)
	switch spec.Mode {
	case model.JobModeAll:
		result, err = h.runner.FetchAll(ctx, spec.FetchOptions())
	default:
		result, err = h.runner.FetchProducts(ctx, spec.SKUs, spec.FetchOptions())
	}

	recorded := 0
	if result != nil {
		outputs := make([]model.OutputFile, len(result.Outputs))
		for i, out := range result.Outputs {
			out.JobID = jobID
			outputs[i] = out
		}
		if serr := h.store.SaveOutputFiles(bg, jobID, outputs); serr != nil {
			logger.Error("Failed to save output files", "error", serr)
		}
		if serr := h.store.SaveMetrics(bg, jobID, result.Metrics); serr != nil {
			logger.Error("Failed to save metrics", "error", serr)
		}
		for _, detail := range result.Metrics.Errors {
			if serr := h.store.SaveJobError(bg, jobID, detail); serr != nil {
				logger.Error("Failed to save job error", "error", serr)
			}
			recorded++
		}
	}

	status := store.StatusCompleted
	if err != nil {
		status = store.StatusFailed
		if recorded == 0 {
			detail := model.ErrorDetail{Code: errors.GetCode(err), Message: err.Error(), Timestamp: time.Now().UTC()}
			if serr := h.store.SaveJobError(bg, jobID, detail); serr != nil {
				logger.Error("Failed to save job error", "error", serr)
			}
		}
		logger.Error("Job failed", "error", err)
	} else {
		logger.Info("Job completed", "files", len(result.Outputs))
	}
	if serr := h.store.UpdateJobStatus(bg, jobID, status); serr != nil {
		logger.Error("Failed to update job status", "error", serr)
	}
}

// ListJobs retrieves all jobs
// @Summary List all jobs
// @Description Get a list of all fetch jobs with their current status
// @Tags jobs
// @Produce json
// @Success 200 {array} store.Job "List of jobs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetJob retrieves a specific job
// @Summary Get job
// @Description Retrieve the request and status of a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} store.Job "Job details"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, JobPath, 0)
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// GetJobErrors retrieves errors for a job
// @Summary Get job errors
// @Description Retrieve all errors recorded while the job ran
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job errors"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/errors [get]
func (h *Handler) GetJobErrors(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, JobErrorsPath, 0)
	if _, err := h.store.GetJob(r.Context(), jobID); err != nil {
		writeError(w, err)
		return
	}
	jobErrors, err := h.store.GetJobErrors(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id": jobID,
		"errors": jobErrors,
		"count":  len(jobErrors),
	})
}

// GetJobFiles retrieves the artifacts written by a job
// @Summary Get job files
// @Description Retrieve the product review files a job wrote
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job files"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /jobs/{id}/files [get]
func (h *Handler) GetJobFiles(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, JobFilesPath, 0)
	if _, err := h.store.GetJob(r.Context(), jobID); err != nil {
		writeError(w, err)
		return
	}
	files, err := h.store.GetOutputFiles(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id": jobID,
		"files":  files,
		"count":  len(files),
	})
}

// GetJobMetrics retrieves the run metrics of a job
// @Summary Get job metrics
// @Description Retrieve per-stage counts and durations of a finished job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.RunMetrics "Job metrics"
// @Failure 404 {object} map[string]interface{} "Metrics not found"
// @Router /jobs/{id}/metrics [get]
func (h *Handler) GetJobMetrics(w http.ResponseWriter, r *http.Request) {
	jobID := router.PathParam(r, JobMetricsPath, 0)
	metrics, err := h.store.GetMetrics(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]any{
		"error": err.Error(),
		"code":  code,
	})
}
