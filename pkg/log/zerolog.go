package log

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is the level new adapters start with.
const DefaultLevel = LevelWarning

// ZerologAdapter implements Logger and Sink using zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
	level  *atomic.Int64
	tag    string
}

// NewZerologAdapter creates a new zerolog adapter with console output.
func NewZerologAdapter() *ZerologAdapter {
	return NewZerologAdapterWithWriter(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// NewZerologAdapterWithWriter creates an adapter writing timestamped
// records to w.
func NewZerologAdapterWithWriter(w io.Writer) *ZerologAdapter {
	return NewZerologAdapterWithLogger(zerolog.New(w).With().Timestamp().Logger())
}

// NewZerologAdapterWithLogger creates an adapter wrapping an existing zerolog.Logger.
// Filtering is done by the adapter level, so the wrapped logger is opened
// up to trace.
func NewZerologAdapterWithLogger(logger zerolog.Logger) *ZerologAdapter {
	level := &atomic.Int64{}
	level.Store(int64(DefaultLevel))
	return &ZerologAdapter{logger: logger.Level(zerolog.TraceLevel), level: level}
}

// WithTag returns a child adapter that stamps every record with tag.
// The child shares the level of its parent.
func (z *ZerologAdapter) WithTag(tag string) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger, level: z.level, tag: tag}
}

// Level returns the current process-wide level.
func (z *ZerologAdapter) Level() Level {
	return Level(z.level.Load())
}

// SetLevel changes the level for this adapter and every adapter sharing it.
func (z *ZerologAdapter) SetLevel(level Level) {
	z.level.Store(int64(level))
}

// Write emits msg under tag when level passes the filter.
func (z *ZerologAdapter) Write(level Level, tag, msg string) {
	z.write(level, tag, msg, nil)
}

// Debug logs a debug-level message.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	z.emit(LevelDebug, msg, fields)
}

// Info logs an info-level message.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	z.emit(LevelInformation, msg, fields)
}

// Warn logs a warning-level message.
func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	z.emit(LevelWarning, msg, fields)
}

// Error logs an error-level message.
func (z *ZerologAdapter) Error(msg string, fields ...Field) {
	z.emit(LevelError, msg, fields)
}

func (z *ZerologAdapter) emit(level Level, msg string, fields []Field) {
	z.write(level, z.tag, msg, fields)
}

func (z *ZerologAdapter) write(level Level, tag, msg string, fields []Field) {
	if level > z.Level() {
		return
	}
	event := z.logger.WithLevel(zerologLevel(level))
	if tag != "" {
		event = event.Str("tag", tag)
	}
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// zerologLevel maps a numeric level onto the closest zerolog level.
func zerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelError:
		return zerolog.ErrorLevel
	case level <= LevelWarning:
		return zerolog.WarnLevel
	case level <= LevelInformation:
		return zerolog.InfoLevel
	case level <= LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// addField adds a Field to a zerolog.Event.
func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case uint64:
		return event.Uint64(f.Key, v)
	case float64:
		return event.Float64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case time.Duration:
		return event.Dur(f.Key, v)
	case error:
		return event.Err(v)
	case fmtStringer:
		return event.Stringer(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}

type fmtStringer interface{ String() string }

// Logger returns the underlying zerolog.Logger.
func (z *ZerologAdapter) Logger() zerolog.Logger {
	return z.logger
}

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Sink   = (*ZerologAdapter)(nil)
)
