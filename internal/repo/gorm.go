package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BuzzLyutic/tarefas-api/internal/model"
)

// GormTaskRepo - вариант хранилища через ORM, таблицу создает AutoMigrate
type GormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) *GormTaskRepo {
	return &GormTaskRepo{db: db}
}

func (r *GormTaskRepo) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.Task{}); err != nil {
		return fmt.Errorf("gorm automigrate: %w", err)
	}
	return nil
}

func (r *GormTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = 0
	err := r.db.WithContext(ctx).Create(&t).Error
	return t, r.mapError(err)
}

func (r *GormTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).First(&t, id).Error
	return t, r.mapError(err)
}

func (r *GormTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Task{ID: t.ID}).
		Select("name", "delivery_date", "responsible").
		Updates(t)
	if res.Error != nil {
		return t, r.mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return t, ErrorNotFound
	}
	return t, nil
}

func (r *GormTaskRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *GormTaskRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormTaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrorConflict
	}
	return err
}
