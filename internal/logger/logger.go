// Package logger
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"caredesk/internal/config"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

type zeroLogger struct {
	zl zerolog.Logger
}

func New(cfg *config.Config) Logger {
	return NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

func NewWithWriter(w io.Writer, level, format string) Logger {
	if strings.ToLower(format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &zeroLogger{zl: zl}
}

// Nop discards everything. Used by tests and tools that do not log.
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, kv ...any) { l.emit(l.zl.Debug(), msg, kv) }
func (l *zeroLogger) Info(msg string, kv ...any)  { l.emit(l.zl.Info(), msg, kv) }
func (l *zeroLogger) Warn(msg string, kv ...any)  { l.emit(l.zl.Warn(), msg, kv) }
func (l *zeroLogger) Error(msg string, kv ...any) { l.emit(l.zl.Error(), msg, kv) }

func (l *zeroLogger) With(kv ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i < len(kv); i += 2 {
		key, val := pair(kv, i)
		ctx = ctx.Interface(key, val)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

func (l *zeroLogger) emit(evt *zerolog.Event, msg string, kv []any) {
	if evt == nil {
		return
	}

	for i := 0; i < len(kv); i += 2 {
		key, val := pair(kv, i)
		switch v := val.(type) {
		case error:
			evt = evt.AnErr(key, v)
		case string:
			evt = evt.Str(key, v)
		case int:
			evt = evt.Int(key, v)
		case int64:
			evt = evt.Int64(key, v)
		case time.Duration:
			evt = evt.Dur(key, v)
		default:
			evt = evt.Interface(key, v)
		}
	}

	evt.Msg(msg)
}

func pair(kv []any, i int) (string, any) {
	key, ok := kv[i].(string)
	if !ok {
		key = fmt.Sprintf("%v", kv[i])
	}
	if i+1 >= len(kv) {
		return key, "(MISSING)"
	}
	return key, kv[i+1]
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
