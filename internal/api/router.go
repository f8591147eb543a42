package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-review-pipeline/docs"
	"go-review-pipeline/internal/api/handler"
	"go-review-pipeline/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST(handler.JobsPath, h.CreateJob)
	r.GET(handler.JobsPath, h.ListJobs)
	// More specific routes first
	r.GET(handler.JobErrorsPath, h.GetJobErrors)
	r.GET(handler.JobFilesPath, h.GetJobFiles)
	r.GET(handler.JobMetricsPath, h.GetJobMetrics)
	// Generic job route last
	r.GET(handler.JobPath, h.GetJob)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
