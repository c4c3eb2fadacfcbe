package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BuzzLyutic/tarefas-api/internal/config"
)

// Open выбирает реализацию хранилища по storage.driver, проверяет соединение и создает таблицу.
// Вторым значением возвращается функция закрытия ресурсов
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (TaskRepository, func(), error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Driver {
	case config.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse database url: %w", err)
		}
		if cfg.MaxConns > 0 {
			poolCfg.MaxConns = cfg.MaxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		r := NewTaskRepo(pool)
		if err := r.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := r.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("Successfully connected to the Database!", zap.String("driver", cfg.Driver))
		return r, pool.Close, nil

	case config.DriverGorm:
		db, err := gorm.Open(gormpg.Open(cfg.DatabaseURL), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open gorm postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get underlying sql.DB: %w", err)
		}
		if cfg.MaxConns > 0 {
			sqlDB.SetMaxOpenConns(int(cfg.MaxConns))
		}
		r := NewGormTaskRepo(db)
		if err := r.Ping(pingCtx); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := r.EnsureSchema(ctx); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("Successfully connected to the Database!", zap.String("driver", cfg.Driver))
		return r, func() { _ = sqlDB.Close() }, nil

	case config.DriverSQLite:
		r, err := NewSQLiteTaskRepo(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Opened SQLite database", zap.String("path", cfg.SQLitePath))
		return r, func() { _ = r.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
