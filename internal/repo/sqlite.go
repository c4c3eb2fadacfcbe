package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/BuzzLyutic/tarefas-api/internal/model"
)

// SQLiteTaskRepo - встраиваемое хранилище, удобно для локального запуска и тестов
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo открывает базу по пути (":memory:" тоже подходит) и создает таблицу
func NewSQLiteTaskRepo(ctx context.Context, path string) (*SQLiteTaskRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Одно соединение: SQLite не любит параллельную запись, а :memory: живет в пределах соединения
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteTaskRepo{db: db}, nil
}

func (r *SQLiteTaskRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (name, delivery_date, responsible)
		VALUES (?, ?, ?)
	`, t.Name, t.DeliveryDate, t.Responsible)
	if err != nil {
		return t, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return t, fmt.Errorf("get last insert id: %w", err)
	}
	t.ID = id
	return t, nil
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, delivery_date, responsible
		FROM tasks
		WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.DeliveryDate, &t.Responsible)

	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
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
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.DeliveryDate, &t.Responsible); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, delivery_date = ?, responsible = ?
		WHERE id = ?
	`, t.Name, t.DeliveryDate, t.Responsible, t.ID)
	if err != nil {
		return t, err
	}
	if err := checkAffected(res); err != nil {
		return t, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLiteTaskRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return ErrorNotFound
	}
	return nil
}
