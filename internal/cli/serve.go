package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tarefas-api/internal/config"
	"github.com/BuzzLyutic/tarefas-api/internal/logger"
	"github.com/BuzzLyutic/tarefas-api/internal/metrics"
	"github.com/BuzzLyutic/tarefas-api/internal/repo"
	"github.com/BuzzLyutic/tarefas-api/internal/server"
	"github.com/BuzzLyutic/tarefas-api/internal/service"
	"github.com/BuzzLyutic/tarefas-api/internal/telemetry"
)

func serve(ctx context.Context, configPath string, stdout, stderr io.Writer) error {
	// Загрузка конфигурации
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// Подключаем БД
	taskRepo, closeRepo, err := repo.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("Failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
		return err
	}
	defer closeRepo()
	log.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	if cfg.Tracing.Enabled {
		traceOut, closeTraceOut, err := traceWriter(cfg.Tracing.Output, stdout, stderr)
		if err != nil {
			return err
		}
		defer closeTraceOut()

		shutdown, err := telemetry.Setup(ctx, cfg.Tracing, traceOut, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	router := server.NewRouter(server.Deps{
		Config:  cfg,
		Service: service.NewTaskService(taskRepo),
		Logger:  log,
		Metrics: m,
	})

	return server.Run(ctx, cfg.Server, router, log)
}

// traceWriter выбирает, куда stdouttrace пишет спаны. По умолчанию stderr, чтобы не смешивать их с логом в stdout
func traceWriter(output string, stdout, stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stderr":
		return stderr, noop, nil
	case "stdout":
		return stdout, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open trace output: %w", err)
		}
		return f, f.Close, nil
	}
}
