package pipeline

import (
	"maps"
	"slices"
	"sync"
	"time"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

// Stage names used in metrics and error details.
const (
	StageRead      = "read"
	StageParse     = "parse"
	StageFilter    = "filter"
	StagePaginate  = "paginate"
	StageAggregate = "aggregate"
	StageWrite     = "write"
)

// Tracker collects metrics for one fetch run. Fan-out workers share it.
type Tracker struct {
	mu      sync.Mutex
	metrics model.RunMetrics
	now     func() time.Time
}

// NewTracker starts tracking a run.
func NewTracker(mode string) *Tracker {
	t := &Tracker{now: time.Now}
	t.metrics = model.RunMetrics{
		Mode:      mode,
		StartTime: t.now(),
		Stages:    make(map[string]model.StageMetrics),
	}
	return t
}

// StartStage marks the start of a stage; the returned func ends it with the
// number of records the stage produced.
func (t *Tracker) StartStage(stage string) func(records int) {
	start := t.now()
	return func(records int) {
		elapsed := t.now().Sub(start)
		t.mu.Lock()
		defer t.mu.Unlock()
		sm := t.metrics.Stages[stage]
		sm.Runs++
		sm.Duration += elapsed
		sm.RecordsProcessed += int64(records)
		t.metrics.Stages[stage] = sm
	}
}

// AddRowsRead counts raw rows returned by the reader.
func (t *Tracker) AddRowsRead(n int) {
	t.mu.Lock()
	t.metrics.RowsRead += int64(n)
	t.mu.Unlock()
}

// AddBundles counts bundles built for writing.
func (t *Tracker) AddBundles(n int) {
	t.mu.Lock()
	t.metrics.Bundles += int64(n)
	t.mu.Unlock()
}

// RecordFile counts one written artifact.
func (t *Tracker) RecordFile() {
	t.mu.Lock()
	t.metrics.FilesWritten++
	t.mu.Unlock()
}

// RecordError stores a failure for stage and sku.
func (t *Tracker) RecordError(stage, sku string, err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	sm := t.metrics.Stages[stage]
	sm.ErrorCount++
	t.metrics.Stages[stage] = sm
	t.metrics.ErrorCount++
	t.metrics.Errors = append(t.metrics.Errors, model.ErrorDetail{
		Stage:     stage,
		SKU:       sku,
		Code:      errors.GetCode(err),
		Message:   err.Error(),
		Timestamp: t.now(),
	})
}

// Finish closes the run and returns a copy of its metrics.
func (t *Tracker) Finish() model.RunMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics.EndTime = t.now()
	t.metrics.Duration = t.metrics.EndTime.Sub(t.metrics.StartTime)
	return t.snapshot()
}

// Snapshot returns a copy of the current metrics.
func (t *Tracker) Snapshot() model.RunMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Tracker) snapshot() model.RunMetrics {
	out := t.metrics
	out.Stages = maps.Clone(t.metrics.Stages)
	out.Errors = slices.Clone(t.metrics.Errors)
	return out
}
