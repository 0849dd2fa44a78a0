package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// SlogLogger implements Interface on top of the standard library's
// structured logger, so traces flow through whatever slog.Handler the
// application already configured.
type SlogLogger struct {
	Logger                    *slog.Logger
	LogLevel                  LogLevel
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	Parameterized             bool
}

// NewSlogLogger creates a new logger writing through slog
func NewSlogLogger(sl *slog.Logger, config Config) Interface {
	return &SlogLogger{
		Logger:                    sl,
		LogLevel:                  config.LogLevel,
		SlowThreshold:             config.SlowThreshold,
		IgnoreRecordNotFoundError: config.IgnoreRecordNotFoundError,
		Parameterized:             config.ParameterizedQueries,
	}
}

// LogMode sets the log level
func (l *SlogLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// ParamsFilter filter params
func (l *SlogLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return sql, nil
	}
	return sql, params
}

// Info logs info messages
func (l *SlogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, slog.LevelInfo, fmt.Sprintf(msg, data...))
	}
}

// Warn logs warning messages
func (l *SlogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, slog.LevelWarn, fmt.Sprintf(msg, data...))
	}
}

// Error logs error messages
func (l *SlogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, slog.LevelError, fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL execution details
func (l *SlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []slog.Attr{
		slog.String("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)),
		slog.String("sql", sql),
	}
	if rows != -1 {
		attrs = append(attrs, slog.Int64("rows", rows))
	}

	switch {
	case err != nil && l.LogLevel >= Error && (!l.IgnoreRecordNotFoundError || !errors.Is(err, ErrRecordNotFound)):
		l.log(ctx, slog.LevelError, "SQL executed", append(attrs, slog.Any("error", err))...)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= Warn:
		l.log(ctx, slog.LevelWarn, "SQL executed", append(attrs, slog.String("slow_threshold", l.SlowThreshold.String()))...)
	case l.LogLevel >= Info:
		l.log(ctx, slog.LevelInfo, "SQL executed", attrs...)
	}
}

func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if !l.Logger.Enabled(ctx, level) {
		return
	}
	rec := slog.NewRecord(time.Now(), level, msg, callerPC())
	rec.AddAttrs(attrs...)
	_ = l.Logger.Handler().Handle(ctx, rec)
}

// callerPC returns the program counter of the first caller outside this
// module, so handlers with AddSource report the application call site.
func callerPC() uintptr {
	for i := 3; i < 16; i++ {
		pc, file, _, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "/relq/") && !strings.HasSuffix(file, "_test.go") {
			continue
		}
		return pc
	}
	return 0
}
