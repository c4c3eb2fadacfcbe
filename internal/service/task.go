package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BuzzLyutic/tarefas-api/internal/model"
	"github.com/BuzzLyutic/tarefas-api/internal/repo"
)

// MsgTaskNotFound - текст ошибки, который уходит клиенту
const MsgTaskNotFound = "Task not found"

// ArgumentError - отказ на уровне домена, клиент получает Message как есть
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func invalidArgument(msg string) error {
	return &ArgumentError{Message: msg}
}

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Save создает задачу (ID == 0) или перезаписывает существующую
func (s *TaskService) Save(ctx context.Context, t model.Task) (model.Task, error) {
	if err := s.validate(t); err != nil { // Валидация модели на корректность введенных данных
		return t, err
	}

	if t.ID == 0 {
		return s.repo.Create(ctx, t)
	}

	saved, err := s.repo.Update(ctx, t)
	if errors.Is(err, repo.ErrorNotFound) {
		return t, invalidArgument(MsgTaskNotFound)
	}
	return saved, err
}

// FindByID возвращает repo.ErrorNotFound, если задачи нет
func (s *TaskService) FindByID(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) ListAll(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return invalidArgument("Task name is required")
	}
	if !t.DeliveryDate.Valid {
		return invalidArgument("Task delivery date is required")
	}
	if strings.TrimSpace(t.Responsible) == "" {
		return invalidArgument("Task responsible is required")
	}
	return nil
}
