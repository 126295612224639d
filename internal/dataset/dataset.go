// Package dataset drives one batch: generate, sanitize, filter and serialize employee records.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/daedalus/internal/metrics"
	"github.com/UnknownOlympus/daedalus/internal/models"
	"github.com/UnknownOlympus/daedalus/internal/sanitize"
)

const (
	// NumEmployees is how many records one run generates.
	NumEmployees = 100
	// FileName is the local dataset file.
	FileName = "employee_data.csv"
)

// RecordGenerator produces raw, unsanitized employee records.
type RecordGenerator interface {
	Generate() models.EmployeeRecord
	Collisions() int
}

// Summary describes a finished batch.
type Summary struct {
	Path      string
	Generated int
	Written   int
	Dropped   int
}

type Builder struct {
	log     *slog.Logger
	gen     RecordGenerator
	metrics *metrics.Metrics
}

func NewBuilder(log *slog.Logger, gen RecordGenerator, metrics *metrics.Metrics) *Builder {
	return &Builder{log: log, gen: gen, metrics: metrics}
}

func (b *Builder) initLogger(opn string) *slog.Logger {
	return b.log.With(
		slog.String("op", opn),
		slog.String("division", "dataset"),
	)
}

// Build generates count records into a CSV file at path. The file is flushed and closed
// on every return path, including a panicking generator.
func (b *Builder) Build(ctx context.Context, path string, count int) (summary Summary, err error) {
	const opn = "Dataset.Build"
	log := b.initLogger(opn)

	summary.Path = path
	collisionsBefore := b.gen.Collisions()

	file, err := os.Create(path)
	if err != nil {
		return summary, fmt.Errorf("failed to create dataset file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close dataset file %s: %w", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err = writer.Write(models.FieldNames); err != nil {
		return summary, fmt.Errorf("failed to write header: %w", err)
	}

	for range count {
		record := b.gen.Generate()
		summary.Generated++

		sanitize.Record(&record)
		values := record.Values()

		if !sanitize.Accept(values) {
			summary.Dropped++
			log.DebugContext(ctx, "record has an empty field, skipped", "email", record.Email)
			continue
		}

		if err = writer.Write(values); err != nil {
			return summary, fmt.Errorf("failed to write record %d: %w", summary.Generated, err)
		}
		summary.Written++
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return summary, fmt.Errorf("failed to flush dataset file %s: %w", path, err)
	}

	b.metrics.RecordsGenerated.Add(float64(summary.Generated))
	b.metrics.RecordsWritten.Add(float64(summary.Written))
	b.metrics.RecordsDropped.Add(float64(summary.Dropped))
	b.metrics.EmailCollisions.Add(float64(b.gen.Collisions() - collisionsBefore))

	if summary.Dropped != 0 {
		log.WarnContext(ctx, "Some generated records were dropped. For more information, enable debug mode",
			"value", summary.Dropped)
	}
	log.InfoContext(ctx, "Dataset written", "path", path, "records", summary.Written)

	return summary, nil
}

// WriteCSV serializes records with a header row, quoting fields only where needed.
// Records are written as given; callers sanitize and filter beforehand.
func WriteCSV(w io.Writer, records []models.EmployeeRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.FieldNames); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record.Values()); err != nil {
			return fmt.Errorf("failed to write record %s: %w", record.Email, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}

	return nil
}
