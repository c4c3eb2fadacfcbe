package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/tarefas-api/internal/model"
)

type TaskRepo struct { // Репозиторий для работы непосредственно с Postgres
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

// EnsureSchema создает таблицу, если ее еще нет
func (r *TaskRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create postgres schema: %w", err)
	}
	return nil
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	created, err := scanTask(r.pool.QueryRow(ctx, `
		INSERT INTO tasks (name, delivery_date, responsible)
		VALUES ($1, $2, $3)
		RETURNING id, name, delivery_date, responsible
	`, t.Name, t.DeliveryDate.Time, t.Responsible))
	return created, r.mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT id, name, delivery_date, responsible
		FROM tasks
		WHERE id = $1
	`, id))
	return t, r.mapError(err)
}

func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, delivery_date, responsible
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	updated, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET name = $2, delivery_date = $3, responsible = $4
		WHERE id = $1
		RETURNING id, name, delivery_date, responsible
	`, t.ID, t.Name, t.DeliveryDate.Time, t.Responsible))
	return updated, r.mapError(err)
}

// scanTask читает строку tasks; DATE приходит как time.Time
func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	var deliveryDate time.Time
	if err := row.Scan(&t.ID, &t.Name, &deliveryDate, &t.Responsible); err != nil {
		return model.Task{}, err
	}
	t.DeliveryDate = model.DateOf(deliveryDate)
	return t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
