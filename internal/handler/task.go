package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tarefas-api/internal/model"
	"github.com/BuzzLyutic/tarefas-api/internal/service"
	"github.com/BuzzLyutic/tarefas-api/internal/validation"
	"github.com/BuzzLyutic/tarefas-api/pkg/respond"
)

type TaskHandler struct {
	service      *service.TaskService
	validator    *validation.Validator
	logger       *zap.Logger
	maxBodyBytes int64
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger, maxBodyBytes int64) *TaskHandler {
	return &TaskHandler{
		service:      srv,
		validator:    validation.New(),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// taskRequest - тело POST и PUT. ID из тела игнорируется
type taskRequest struct {
	Name         string      `json:"name" validate:"notblank"`
	DeliveryDate *model.Date `json:"deliveryDate" validate:"required"`
	Responsible  string      `json:"responsible" validate:"notblank"`
}

// Routes регистрирует маршруты задач на переданном роутере
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", Errors(h.logger, h.Create))
	r.Get("/", Errors(h.logger, h.List))
	r.Get("/{id}", Errors(h.logger, h.Get))
	r.Put("/{id}", Errors(h.logger, h.Update))
	r.Delete("/{id}", Errors(h.logger, h.Delete))
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) error {
	input, err := h.decodeTask(w, r)
	if err != nil {
		return err
	}

	task, err := h.service.Save(r.Context(), input)
	if err != nil {
		return err
	}

	respond.Result(w, r, http.StatusOK, task)
	return nil
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := taskID(r)
	if err != nil {
		return err
	}

	// Несуществующий id дает "Task not found" при любом теле, поэтому ищем задачу до разбора тела
	existing, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		return err
	}

	input, err := h.decodeTask(w, r)
	if err != nil {
		return err
	}
	existing.Apply(input)

	task, err := h.service.Save(r.Context(), existing)
	if err != nil {
		return err
	}

	respond.Result(w, r, http.StatusOK, task)
	return nil
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) error {
	tasks, err := h.service.ListAll(r.Context())
	if err != nil {
		return fmt.Errorf("%w: %w", errListTasks, err)
	}

	respond.Result(w, r, http.StatusOK, tasks)
	return nil
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := taskID(r)
	if err != nil {
		return err
	}

	task, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		return err
	}

	respond.Result(w, r, http.StatusOK, task)
	return nil
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := taskID(r)
	if err != nil {
		return err
	}

	// Сначала проверяем, что задача есть
	if _, err := h.service.FindByID(r.Context(), id); err != nil {
		return err
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		return err
	}

	respond.Result(w, r, http.StatusOK, MsgTaskDeleted)
	return nil
}

// decodeTask читает и валидирует тело запроса
func (h *TaskHandler) decodeTask(w http.ResponseWriter, r *http.Request) (model.Task, error) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	dec := json.NewDecoder(r.Body)

	var req *taskRequest
	if err := dec.Decode(&req); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if req == nil {
		return model.Task{}, fmt.Errorf("%w: null body", errMalformedBody)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.Task{}, fmt.Errorf("%w: unexpected data after json body", errMalformedBody)
	}

	if err := h.validator.Struct(req); err != nil {
		return model.Task{}, err
	}

	return model.Task{
		Name:         req.Name,
		DeliveryDate: *req.DeliveryDate,
		Responsible:  req.Responsible,
	}, nil
}

// taskID разбирает {id} из пути. Нечисловой id отвечает так же, как несуществующий маршрут
func taskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id %q", errRouteNotFound, raw)
	}
	return id, nil
}
