// Package app wires one seeding run: build the dataset, upload it, report the outcome.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/UnknownOlympus/daedalus/internal/dataset"
	"github.com/UnknownOlympus/daedalus/internal/lib/logger/sl"
	"github.com/UnknownOlympus/daedalus/internal/metrics"
	"github.com/UnknownOlympus/daedalus/internal/storage"
)

const (
	ExitOK              = 0
	ExitGenerationError = 1
)

// DatasetBuilder writes count records to path.
type DatasetBuilder interface {
	Build(ctx context.Context, path string, count int) (dataset.Summary, error)
}

// UploaderFactory creates the storage client. It runs after the dataset is written so that
// a construction failure is reported like any other upload failure.
type UploaderFactory func(ctx context.Context) (storage.Uploader, error)

// Deps groups everything one run needs.
type Deps struct {
	Log         *slog.Logger
	Out         io.Writer // status lines for the operator
	Builder     DatasetBuilder
	NewUploader UploaderFactory
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // may be nil when PushURL is empty
	PushURL     string
	PushJob     string
	Path        string // local dataset path, dataset.FileName when empty
}

// Run executes the batch and returns the process exit code.
//
// Upload failures are printed and logged but still yield ExitOK, so schedulers cannot see them
// from the exit status. Only a failure to write the dataset returns non-zero.
func Run(ctx context.Context, deps Deps) int {
	log := deps.Log.With(slog.String("op", "App.Run"), slog.String("division", "app"))
	start := time.Now()

	path := deps.Path
	if path == "" {
		path = dataset.FileName
	}

	summary, err := deps.Builder.Build(ctx, path, dataset.NumEmployees)
	if err != nil {
		log.ErrorContext(ctx, "Dataset generation failed", sl.Err(err))
		_, _ = fmt.Fprintf(deps.Out, "❌ Dataset generation failed: %v\n", err)
		return ExitGenerationError
	}
	_, _ = fmt.Fprintf(deps.Out, "✅ Generated %d employee records in %s\n", summary.Generated, path)

	result := upload(ctx, log, deps, path)

	deps.Metrics.Uploads.WithLabelValues(result.Outcome.String()).Inc()
	deps.Metrics.RunDuration.Observe(time.Since(start).Seconds())
	if result.Outcome == storage.OutcomeSuccess {
		deps.Metrics.LastSuccessfulRun.SetToCurrentTime()
	}

	if deps.PushURL != "" {
		if pushErr := metrics.Push(deps.PushURL, deps.PushJob, deps.Gatherer); pushErr != nil {
			log.WarnContext(ctx, "Metrics were not pushed", sl.Err(pushErr))
		}
	}

	log.InfoContext(ctx, "Run finished",
		"written", summary.Written, "dropped", summary.Dropped, "upload", result.Outcome.String())

	return ExitOK
}

func upload(ctx context.Context, log *slog.Logger, deps Deps, path string) storage.Result {
	uploader, err := deps.NewUploader(ctx)
	if err != nil {
		result := storage.Result{
			Outcome:   storage.OutcomeUnexpected,
			Bucket:    storage.BucketName,
			Key:       storage.ObjectKey,
			LocalPath: path,
			Err:       err,
		}
		storage.Report(ctx, log, deps.Out, result)

		return result
	}

	return storage.UploadAndReport(ctx, log, uploader, deps.Out, storage.BucketName, path, storage.ObjectKey)
}
