package model

import "time"

// RunMetrics summarizes one fetch run
type RunMetrics struct {
	Mode         string                  `json:"mode"`
	StartTime    time.Time               `json:"start_time"`
	EndTime      time.Time               `json:"end_time"`
	Duration     time.Duration           `json:"duration"`
	RowsRead     int64                   `json:"rows_read"`
	Bundles      int64                   `json:"bundles"`
	FilesWritten int64                   `json:"files_written"`
	ErrorCount   int64                   `json:"error_count"`
	Stages       map[string]StageMetrics `json:"stages"`
	Errors       []ErrorDetail           `json:"errors,omitempty"`
}

// StageMetrics represents metrics for a specific pipeline stage
type StageMetrics struct {
	Runs             int64         `json:"runs"`
	Duration         time.Duration `json:"duration"`
	RecordsProcessed int64         `json:"records_processed"`
	ErrorCount       int64         `json:"error_count"`
}

// ErrorDetail represents a detailed error with context
type ErrorDetail struct {
	Stage     string    `json:"stage"`
	SKU       string    `json:"sku,omitempty"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
