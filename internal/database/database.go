// Package database handles database connections and migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cafehub/internal/config"
	"cafehub/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database connection instance.
var DB *gorm.DB

// SlowQueryThreshold is the duration after which a query is logged at warn level.
const SlowQueryThreshold = 200 * time.Millisecond

// gormLogger sends GORM output through slog so queries carry the request id.
type gormLogger struct {
	log   *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

// NewGormLogger returns a slog-backed GORM logger at warn level.
// Record-not-found is never logged as an error.
func NewGormLogger(l *slog.Logger) logger.Interface {
	return &gormLogger{log: l.With(slog.String("component", "gorm")), level: logger.Warn, slow: SlowQueryThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) emit(ctx context.Context, at logger.LogLevel, msg string, data ...interface{}) {
	if l.level < at {
		return
	}
	l.log.Log(ctx, slogLevel(at), fmt.Sprintf(msg, data...))
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Info, msg, data...)
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Warn, msg, data...)
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, logger.Error, msg, data...)
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var at logger.LogLevel
	msg := "query"
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		at, msg = logger.Error, "query failed"
	case l.slow > 0 && elapsed > l.slow:
		at, msg = logger.Warn, "slow query"
	default:
		at = logger.Info
	}
	if l.level < at {
		return
	}

	sql, rows := fc()
	attrs := []any{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	if at == logger.Error {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.log.Log(ctx, slogLevel(at), msg, attrs...)
}

func slogLevel(level logger.LogLevel) slog.Level {
	switch level {
	case logger.Error:
		return slog.LevelError
	case logger.Warn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// PostgresDSN builds a key/value libpq connection string from cfg.
func PostgresDSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, sslMode)
}

// Dialector picks the GORM driver for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		return postgres.Open(PostgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SQLiteDSN appends the pragma that makes SQLite enforce foreign keys.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Connect opens a database connection using the provided configuration and returns the gorm DB instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	dbInstance, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(middleware.Logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	middleware.Logger.Info("Database connected successfully", slog.String("driver", cfg.DBDriver))

	if err := configurePool(dbInstance, cfg); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	if err := Migrate(dbInstance); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	middleware.Logger.Info("Database migration completed")

	DB = dbInstance
	return DB, nil
}

// Migrate creates or updates the schema for every registered model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	maxOpen := cfg.DBMaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.DBMaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := cfg.DBConnMaxLifetimeMinutes
	if lifetime <= 0 {
		lifetime = 5
	}

	// SQLite serializes writers anyway; one connection avoids "database is locked".
	if cfg.DBDriver == "sqlite" {
		maxOpen, maxIdle = 1, 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Minute)
	return nil
}
