package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tarefas-api/internal/config"
	"github.com/BuzzLyutic/tarefas-api/internal/handler"
	"github.com/BuzzLyutic/tarefas-api/internal/logger"
	"github.com/BuzzLyutic/tarefas-api/internal/metrics"
	"github.com/BuzzLyutic/tarefas-api/internal/service"
	"github.com/BuzzLyutic/tarefas-api/pkg/respond"
)

const MsgStorageUnavailable = "Error: Storage unavailable."

type Deps struct {
	Config  config.Config
	Service *service.TaskService
	Logger  *zap.Logger
	Metrics *metrics.Metrics // nil, если метрики выключены
}

// NewRouter собирает chi-роутер со всеми middleware и маршрутами
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	if d.Config.Tracing.Enabled {
		r.Use(otelchi.Middleware(d.Config.Tracing.ServiceName, otelchi.WithChiRoutes(r)))
	}
	r.Use(handler.Recover(d.Logger))

	// Должны быть заданы до Route, чтобы подроутеры их унаследовали
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", health(d.Service, d.Logger))
	if d.Metrics != nil {
		r.Handle(d.Config.Metrics.Path, d.Metrics.Handler())
	}

	tasks := handler.NewTaskHandler(d.Service, d.Logger, d.Config.Server.MaxBodyBytes)
	r.Route(d.Config.Server.BasePath, tasks.Routes)

	return r
}

func health(srv *service.TaskService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := srv.Ping(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			respond.Error(w, r, http.StatusServiceUnavailable, MsgStorageUnavailable)
			return
		}
		respond.Result(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
