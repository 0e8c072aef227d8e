package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtsforge_parse_seconds",
		Help:    "Time spent parsing one declaration file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"library"})

	PassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtsforge_pass_seconds",
		Help:    "Time spent in one transformation pass.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pass"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtsforge_pipeline_seconds",
		Help:    "End-to-end transformation time per file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"library"})

	FilesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtsforge_files_processed_total",
		Help: "Total number of declaration files run through the pipeline.",
	})

	FileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtsforge_file_errors_total",
		Help: "Total number of files the pipeline failed on.",
	})

	WarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dtsforge_warnings_total",
		Help: "Total non-fatal anomalies recorded by passes.",
	}, []string{"pass"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dtsforge_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
