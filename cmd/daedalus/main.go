package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/daedalus/internal/app"
	"github.com/UnknownOlympus/daedalus/internal/config"
	"github.com/UnknownOlympus/daedalus/internal/dataset"
	"github.com/UnknownOlympus/daedalus/internal/fakedata"
	"github.com/UnknownOlympus/daedalus/internal/generator"
	"github.com/UnknownOlympus/daedalus/internal/metrics"
	"github.com/UnknownOlympus/daedalus/internal/storage"
	"github.com/UnknownOlympus/daedalus/internal/storage/miniostore"
	"github.com/UnknownOlympus/daedalus/internal/storage/s3store"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry so only batch metrics reach the Pushgateway
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	appMetrics := metrics.NewMetrics(reg)

	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = rand.Uint64() //nolint:gosec // synthetic data
	}
	gen := generator.New(fakedata.New(cfg.Seed), generator.NewSeeded(rngSeed))

	code := app.Run(ctx, app.Deps{
		Log:     logger,
		Out:     os.Stdout,
		Builder: dataset.NewBuilder(logger, gen, appMetrics),
		NewUploader: func(ctx context.Context) (storage.Uploader, error) {
			return newUploader(ctx, cfg.Storage)
		},
		Metrics:  appMetrics,
		Gatherer: reg,
		PushURL:  cfg.Metrics.PushgatewayURL,
		PushJob:  cfg.Metrics.Job,
	})

	stop()
	os.Exit(code)
}

// newUploader creates the storage backend selected by the configuration.
func newUploader(ctx context.Context, cfg config.StorageConfig) (storage.Uploader, error) {
	if cfg.Provider == config.ProviderMinio {
		client, err := miniostore.NewClient(miniostore.Options{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return miniostore.New(client), nil
	}

	client, err := s3store.NewClient(ctx, s3store.Options{
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return nil, err
	}

	return s3store.New(client), nil
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs go to stderr; stdout carries the operator status lines.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
