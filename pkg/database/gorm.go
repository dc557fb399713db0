package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/starwars-api/pkg/logger"
)

// PoolConfig tunes the connection pool behind the GORM handle.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
}

// DefaultPoolConfig returns the pool settings used by the API server.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		MaxRetries:      5,
		RetryDelay:      500 * time.Millisecond,
	}
}

// NewGormConnection opens a GORM PostgreSQL connection, retrying with
// exponential backoff while the database comes up.
func NewGormConnection(ctx context.Context, dsn string, pool PoolConfig, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	cfg := &gorm.Config{
		Logger:         NewGormLogger(logger.Logger, level),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error
	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		if attempt >= pool.MaxRetries {
			return nil, fmt.Errorf("failed to open database after %d attempts: %w", attempt+1, err)
		}
		delay := backoff(pool.RetryDelay, attempt)
		logger.Logger.Warn().Err(err).Int("attempt", attempt+1).Dur("retry_in", delay).Msg("Database not ready")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().Msg("Successfully connected to PostgreSQL database with GORM")
	return db, nil
}

func backoff(base time.Duration, attempt int) time.Duration {
	const maxDelay = 5 * time.Second
	d := base << attempt
	if d <= 0 || d > maxDelay {
		return maxDelay
	}
	return d
}

// GormLogger routes GORM's log output through zerolog.
type GormLogger struct {
	log           zerolog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a GORM logger backed by l.
func NewGormLogger(l zerolog.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{log: l, level: level, slowThreshold: 200 * time.Millisecond}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msgf(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msgf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msgf(msg, args...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.level >= gormlogger.Error && !isNotFound(err):
		l.log.Error().Err(err).Dur("duration", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm query error")
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.log.Warn().Dur("duration", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm slow query")
	case l.level >= gormlogger.Info:
		l.log.Debug().Dur("duration", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm query")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
