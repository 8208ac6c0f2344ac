package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String returns a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 returns a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 returns a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool returns a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration returns a duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err returns a field holding err under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used across the tooling.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// ─────────────────────────────────────────────────────────────────────────────
// zerolog
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger returns a JSON logger writing to w with a "component" field.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).With().Timestamp().Str("component", component).Logger())
}

// NewDefaultLogger returns a console logger on stderr at info level.
func NewDefaultLogger() *ZerologAdapter {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	return NewZerologAdapter(zl)
}

// Zerolog returns the underlying logger, e.g. for einteger.SetLogger.
func (z *ZerologAdapter) Zerolog() zerolog.Logger { return z.logger }

func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// ─────────────────────────────────────────────────────────────────────────────
// log.Logger
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter implements Logger on a standard library log.Logger,
// rendering fields as key=value pairs after a level tag.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps l.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: l}
}

func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

func (s *StdLoggerAdapter) Println(args ...any) {
	s.logger.Println(args...)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	return sb.String()
}
