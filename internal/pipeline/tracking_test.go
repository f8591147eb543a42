package pipeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-review-pipeline/internal/errors"
)

func TestTrackerRecordsStagesAndErrors(t *testing.T) {
	tracker := NewTracker("all")
	clock := time.Now()
	tracker.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	done := tracker.StartStage(StageRead)
	done(3)
	tracker.AddRowsRead(3)
	tracker.AddBundles(2)
	tracker.RecordFile()
	tracker.RecordError(StageWrite, "b2", errors.WriteError("b2-reviews.json", fmt.Errorf("disk full")))
	tracker.RecordError(StageWrite, "b3", nil)

	metrics := tracker.Finish()
	assert.Equal(t, "all", metrics.Mode)
	assert.Equal(t, int64(3), metrics.RowsRead)
	assert.Equal(t, int64(2), metrics.Bundles)
	assert.Equal(t, int64(1), metrics.FilesWritten)
	assert.Equal(t, int64(1), metrics.ErrorCount)

	read := metrics.Stages[StageRead]
	assert.Equal(t, int64(1), read.Runs)
	assert.Equal(t, int64(3), read.RecordsProcessed)
	assert.Equal(t, time.Second, read.Duration)

	require.Len(t, metrics.Errors, 1)
	assert.Equal(t, "b2", metrics.Errors[0].SKU)
	assert.Equal(t, errors.CodeWriteError, metrics.Errors[0].Code)
	assert.True(t, metrics.EndTime.After(metrics.StartTime))
}

func TestTrackerSnapshotIsACopy(t *testing.T) {
	tracker := NewTracker("products")
	tracker.StartStage(StageParse)(1)

	snap := tracker.Snapshot()
	tracker.StartStage(StageParse)(1)

	assert.Equal(t, int64(1), snap.Stages[StageParse].Runs)
	assert.Equal(t, int64(2), tracker.Snapshot().Stages[StageParse].Runs)
}

func TestTrackerConcurrentUse(t *testing.T) {
	tracker := NewTracker("products")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.StartStage(StageWrite)(1)
			tracker.RecordFile()
		}()
	}
	wg.Wait()

	metrics := tracker.Finish()
	assert.Equal(t, int64(50), metrics.FilesWritten)
	assert.Equal(t, int64(50), metrics.Stages[StageWrite].RecordsProcessed)
}
