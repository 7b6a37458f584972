package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/infra/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// Query outcome label values.
const (
	queryOK    = "ok"
	querySlow  = "slow"
	queryError = "error"
)

// queryLogger sends GORM output to slog and times every statement.
// A missing row is an expected outcome of lookups and is never reported as an error.
type queryLogger struct {
	base  *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newQueryLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	ql := &queryLogger{base: base, level: logger.Warn, slow: defaultSlowQueryThreshold}
	if cfg == nil {
		return ql
	}
	if cfg.Env.Debug {
		ql.level = logger.Info
	}
	if cfg.Store != nil && cfg.Store.SlowQueryThreshold > 0 {
		ql.slow = cfg.Store.SlowQueryThreshold
	}

	return ql
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < min {
		return
	}

	l.log(ctx).Log(ctx, level, "GORM "+fmt.Sprintf(msg, args...))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	outcome := classifyQuery(err, elapsed, l.slow)
	metrics.DBQueryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	var level slog.Level
	switch {
	case outcome == queryError && l.level >= logger.Error:
		level = slog.LevelError
	case outcome == querySlow && l.level >= logger.Warn:
		level = slog.LevelWarn
	case l.level >= logger.Info:
		level = slog.LevelDebug
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("outcome", outcome),
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if outcome == queryError {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.log(ctx).LogAttrs(ctx, level, "GORM query", attrs...)
}

// log prefers the request-scoped logger so queries carry the request id.
func (l *queryLogger) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.base)
}

func classifyQuery(err error, elapsed, slow time.Duration) string {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return queryError
	case slow > 0 && elapsed > slow:
		return querySlow
	}

	return queryOK
}
