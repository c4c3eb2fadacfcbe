package handler

import (
	"errors"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tarefas-api/internal/repo"
	"github.com/BuzzLyutic/tarefas-api/internal/service"
	"github.com/BuzzLyutic/tarefas-api/internal/validation"
	"github.com/BuzzLyutic/tarefas-api/pkg/respond"
)

const (
	MsgMethodNotAllowed = "Error: Method not allowed for this endpoint."
	MsgMalformedBody    = "Error: Request body is missing or malformed."
	MsgEndpointNotFound = "Error: The requested endpoint does not exist."
	MsgInternal         = "Error: Internal server error."
	MsgListFailed       = "Error listing tasks."
	MsgTaskDeleted      = "Task deleted successfully"
)

var (
	errMalformedBody = errors.New("malformed request body")
	errRouteNotFound = errors.New("route not found")
	errListTasks     = errors.New("list tasks")
)

// HandlerFunc - обработчик, который возвращает ошибку вместо того, чтобы писать ее сам
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Errors превращает HandlerFunc в http.HandlerFunc: любая ошибка классифицируется и уходит в конверте
func Errors(logger *zap.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			handleErrors(logger, w, r, err)
		}
	}
}

func handleErrors(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", code), zap.Error(err))
	}
	respond.Error(w, r, code, msg)
}

// classify - единственное место, где ошибка превращается в статус и текст для клиента
func classify(err error) (int, string) {
	var verr *validation.Error
	var argErr *service.ArgumentError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, MsgMalformedBody
	case errors.As(err, &argErr):
		return http.StatusBadRequest, argErr.Message
	case errors.Is(err, repo.ErrorNotFound):
		// отсутствующая задача - 400, а не 404
		return http.StatusBadRequest, service.MsgTaskNotFound
	case errors.Is(err, errRouteNotFound):
		return http.StatusNotFound, MsgEndpointNotFound
	case errors.Is(err, errListTasks):
		return http.StatusInternalServerError, MsgListFailed
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusNotFound, MsgEndpointNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// Recover - аналог middleware.Recoverer, но отвечает конвертом
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				respond.Error(w, r, http.StatusInternalServerError, MsgInternal)
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
