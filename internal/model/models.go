package model

// JobMode selects which fetch a job runs
type JobMode string

const (
	JobModeProducts JobMode = "products"
	JobModeAll      JobMode = "all"
)

// JobSpec is the struct for POST /api/v1/jobs
type JobSpec struct {
	Mode     JobMode  `json:"mode"`
	SKUs     []string `json:"skus,omitempty"`
	Approved *bool    `json:"approved,omitempty"`
	Page     int      `json:"page,omitempty"`
	Length   *int     `json:"length,omitempty"`
}

// FetchOptions returns the filter part of the job.
func (j JobSpec) FetchOptions() FetchOptions {
	return FetchOptions{Approved: j.Approved, Page: j.Page, Length: j.Length}
}

// OutputFile is one artifact produced by a job
type OutputFile struct {
	JobID         string  `json:"job_id"`
	SKU           string  `json:"sku"`
	Path          string  `json:"path"`
	ReviewCount   int     `json:"review_count"`
	ReviewAverage float64 `json:"review_average"`
}
