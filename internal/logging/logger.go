package logging

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging contract shared by every component of the analyzer.
// Implementations must be safe for concurrent use: pool workers log through
// the same Logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Duration creates a time.Duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug logs at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

// Warn logs at warn level.
func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

// Error logs at error level with err attached.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	if e == nil {
		// Level disabled.
		return e
	}
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

// StdLoggerAdapter implements Logger on top of the standard library logger.
// It is used by tests and by callers that already own a *log.Logger.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a *log.Logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Debug logs with a [DEBUG] prefix.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs with an [INFO] prefix.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Warn logs with a [WARN] prefix.
func (s *StdLoggerAdapter) Warn(msg string, fields ...Field) {
	s.logger.Printf("[WARN] %s%s", msg, formatFields(fields))
}

// Error logs with an [ERROR] prefix and the error text.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)        {}
func (NopLogger) Info(string, ...Field)         {}
func (NopLogger) Warn(string, ...Field)         {}
func (NopLogger) Error(string, error, ...Field) {}

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
	_ Logger = NopLogger{}
)
