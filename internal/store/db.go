package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// Job statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is a stored fetch job.
type Job struct {
	ID        string        `json:"id"`
	Spec      model.JobSpec `json:"spec"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// JobError is one failure recorded for a job.
type JobError struct {
	Stage     string    `json:"stage,omitempty"`
	SKU       string    `json:"sku,omitempty"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the sqlite job ledger of the HTTP API.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		mode TEXT,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS job_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		stage TEXT,
		sku TEXT,
		code TEXT,
		error_message TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS output_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		sku TEXT,
		path TEXT,
		review_count INTEGER,
		review_average REAL
	);`,
	`CREATE TABLE IF NOT EXISTS job_metrics (
		job_id TEXT PRIMARY KEY,
		metrics TEXT,
		updated_at DATETIME
	);`,
}

// Open connects to the database at path and creates missing tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.DatabaseError("open "+path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.DatabaseError("create tables", err)
		}
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveJob stores a new pending job.
func (s *Store) SaveJob(ctx context.Context, jobID string, spec model.JobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return errors.Wrap(err, "encode job spec")
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx, `INSERT INTO jobs (id, mode, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, string(spec.Mode), string(specJSON), StatusPending, now, now)
	if err != nil {
		return errors.DatabaseError("save job "+jobID, err)
	}
	return nil
}

// UpdateJobStatus updates job status
func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, s.now(), jobID)
	if err != nil {
		return errors.DatabaseError("update job "+jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("job " + jobID)
	}
	return nil
}

// SaveJobError records an error for a job
func (s *Store) SaveJobError(ctx context.Context, jobID string, detail model.ErrorDetail) error {
	created := detail.Timestamp
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO job_errors (job_id, stage, sku, code, error_message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, detail.Stage, detail.SKU, detail.Code, detail.Message, created)
	if err != nil {
		return errors.DatabaseError("save job error", err)
	}
	return nil
}

// SaveOutputFiles records the artifacts a job wrote.
func (s *Store) SaveOutputFiles(ctx context.Context, jobID string, files []model.OutputFile) error {
	if len(files) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("begin output files", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO output_files (job_id, sku, path, review_count, review_average) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.DatabaseError("prepare output files", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, jobID, f.SKU, f.Path, f.ReviewCount, f.ReviewAverage); err != nil {
			return errors.DatabaseError("save output file "+f.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("commit output files", err)
	}
	return nil
}

// SaveMetrics stores the run metrics of a job, replacing earlier ones.
func (s *Store) SaveMetrics(ctx context.Context, jobID string, metrics model.RunMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return errors.Wrap(err, "encode metrics")
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO job_metrics (job_id, metrics, updated_at) VALUES (?, ?, ?)`,
		jobID, string(data), s.now())
	if err != nil {
		return errors.DatabaseError("save metrics", err)
	}
	return nil
}

// ListJobs returns all jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, spec, status, created_at, updated_at FROM jobs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.DatabaseError("list jobs", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("list jobs", err)
	}
	return jobs, nil
}

// GetJob fetches full job spec and status
func (s *Store) GetJob(ctx context.Context, jobID string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID)
	job, err := scanJob(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("job " + jobID)
	}
	return job, err
}

// GetJobErrors lists the errors of a job in the order they were recorded.
func (s *Store) GetJobErrors(ctx context.Context, jobID string) ([]JobError, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT stage, sku, code, error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, errors.DatabaseError("get job errors", err)
	}
	defer rows.Close()

	out := []JobError{}
	for rows.Next() {
		var e JobError
		if err := rows.Scan(&e.Stage, &e.SKU, &e.Code, &e.Message, &e.CreatedAt); err != nil {
			return nil, errors.DatabaseError("scan job error", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("get job errors", err)
	}
	return out, nil
}

// GetOutputFiles lists the artifacts of a job ordered by sku.
func (s *Store) GetOutputFiles(ctx context.Context, jobID string) ([]model.OutputFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sku, path, review_count, review_average FROM output_files WHERE job_id = ? ORDER BY sku`, jobID)
	if err != nil {
		return nil, errors.DatabaseError("get output files", err)
	}
	defer rows.Close()

	out := []model.OutputFile{}
	for rows.Next() {
		f := model.OutputFile{JobID: jobID}
		if err := rows.Scan(&f.SKU, &f.Path, &f.ReviewCount, &f.ReviewAverage); err != nil {
			return nil, errors.DatabaseError("scan output file", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("get output files", err)
	}
	return out, nil
}

// GetMetrics returns the stored run metrics of a job.
func (s *Store) GetMetrics(ctx context.Context, jobID string) (*model.RunMetrics, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT metrics FROM job_metrics WHERE job_id = ?`, jobID).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("metrics of job " + jobID)
	}
	if err != nil {
		return nil, errors.DatabaseError("get metrics", err)
	}
	var metrics model.RunMetrics
	if err := json.Unmarshal([]byte(data), &metrics); err != nil {
		return nil, errors.Wrap(err, "decode metrics")
	}
	return &metrics, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*Job, error) {
	var (
		job      Job
		specJSON string
	)
	if err := row.Scan(&job.ID, &specJSON, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.DatabaseError("scan job", err)
	}
	if err := json.Unmarshal([]byte(specJSON), &job.Spec); err != nil {
		return nil, errors.Wrap(err, "decode job spec")
	}
	return &job, nil
}
