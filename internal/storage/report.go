package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/UnknownOlympus/daedalus/internal/lib/logger/sl"
)

// Result is the reported outcome of an upload.
type Result struct {
	Outcome   Outcome
	Bucket    string
	Key       string
	LocalPath string
	Err       error
}

// Message renders the status line shown to the operator.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("📤 File %s uploaded to %s in %s.", r.LocalPath, r.Key, r.Bucket)
	case OutcomePermissionDenied:
		return "❌ Upload failed: Access forbidden. Check your billing/account permissions."
	case OutcomeAPIError:
		return fmt.Sprintf("❌ Upload failed: %v", cause(r.Err))
	case OutcomeUnexpected:
		return fmt.Sprintf("❌ Unexpected error: %v", cause(r.Err))
	}

	return fmt.Sprintf("❌ Unexpected error: unknown outcome %s", r.Outcome)
}

// UploadAndReport performs a single upload attempt, prints its status line to out and
// logs it. Failures are reported, never retried and never returned.
func UploadAndReport(
	ctx context.Context,
	log *slog.Logger,
	uploader Uploader,
	out io.Writer,
	bucket, localPath, key string,
) Result {
	err := uploader.Upload(ctx, bucket, localPath, key)
	result := Result{
		Outcome:   Classify(err),
		Bucket:    bucket,
		Key:       key,
		LocalPath: localPath,
		Err:       err,
	}

	Report(ctx, log, out, result)

	return result
}

// Report prints the status line of result to out and logs it.
func Report(ctx context.Context, log *slog.Logger, out io.Writer, result Result) {
	log = log.With(slog.String("op", "Storage.Report"), slog.String("division", "storage"))

	if _, err := fmt.Fprintln(out, result.Message()); err != nil {
		log.WarnContext(ctx, "failed to print upload status", sl.Err(err))
	}

	if result.Outcome != OutcomeSuccess {
		log.ErrorContext(ctx, "Upload failed", "outcome", result.Outcome.String(),
			"bucket", result.Bucket, "key", result.Key, sl.Err(result.Err))
		return
	}
	log.InfoContext(ctx, "Upload finished", "bucket", result.Bucket, "key", result.Key)
}

// cause strips the storage.Error envelope so the message shows the backend's own detail.
func cause(err error) error {
	var storageErr *Error
	if errors.As(err, &storageErr) && storageErr.Err != nil {
		return storageErr.Err
	}

	return err
}
