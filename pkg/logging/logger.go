// Package logging provides the structured JSON logger shared by the game
// loop, the renderers and the command-line clients. Entries carry the
// emitting component and, when the context has one, a run correlation ID.
// Entity IDs, seeds, vectors and file paths are normalized on the way out so
// that log files stay readable and exact.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EnvLogLevel names the environment variable holding the log level.
const EnvLogLevel = "FLIGHT_LOG_LEVEL"

// Attribute keys with special formatting.
const (
	KeyComponent = "component"
	KeyEntityID  = "entity_id"
	KeySeed      = "seed"
)

// Logger wraps slog.Logger with the game's context handling and attribute
// formatting.
type Logger struct {
	*slog.Logger
}

// NewLogger writes JSON entries to stdout at the level named by
// FLIGHT_LOG_LEVEL (DEBUG, INFO, WARN or ERROR; INFO when unset).
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter is NewLogger writing to w. Clients that draw to the
// terminal use it to send logs to a file.
func NewLoggerWithWriter(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       getLogLevelFromEnv(),
		ReplaceAttr: formatAttr,
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// WithComponent returns a logger that tags every entry with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.Logger.With(KeyComponent, component)}
}

// WithEntity returns a logger that tags every entry with an entity's kind
// and ID.
func (l *Logger) WithEntity(kind string, id uint64) *Logger {
	return &Logger{l.Logger.With("kind", kind, KeyEntityID, id)}
}

// LogWithContext logs msg and adds the context's correlation ID, if any.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		args = append(args, "correlation_id", correlationID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs msg at error level with err under the "error" key.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type correlationIDKey struct{}

// WithCorrelationID tags ctx with a run correlation ID, generating one when
// correlationID is empty.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID returns the context's correlation ID or "".
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a new random correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

func getLogLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(EnvLogLevel)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var homeDir = sync.OnceValue(func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Clean(home)
})

// formatAttr normalizes attribute values before they are encoded.
//
// Seeds and IDs are 64-bit and are written as strings, since JSON readers
// parse numbers as doubles and lose everything past 2^53. Vectors become
// "(x, y, z)". Paths under the user's home directory are shortened to "~".
func formatAttr(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)

	switch {
	case key == KeySeed || key == "id" || strings.HasSuffix(key, "_id"):
		if a.Value.Kind() == slog.KindUint64 {
			return slog.String(a.Key, strconv.FormatUint(a.Value.Uint64(), 10))
		}
	case key == "path" || strings.HasSuffix(key, "_path"):
		if a.Value.Kind() == slog.KindString {
			return slog.String(a.Key, shortenPath(a.Value.String()))
		}
	}

	if a.Value.Kind() == slog.KindAny {
		if v, ok := a.Value.Any().(mgl64.Vec3); ok {
			return slog.String(a.Key, fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2]))
		}
	}
	return a
}

func shortenPath(path string) string {
	home := homeDir()
	if home == "" || home == string(filepath.Separator) {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rest)
	}
	return path
}

// WrapError prefixes err with msg and any key/value pairs, keeping err
// reachable through errors.Is and errors.As:
//
//	WrapError(err, "failed to load rock model", "path", p)
//	// failed to load rock model (path=rocks/a.obj): <err>
func WrapError(err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}
	if len(kv) == 0 {
		return fmt.Errorf("%s: %w", msg, err)
	}
	pairs := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			pairs = append(pairs, fmt.Sprint(kv[i]))
			break
		}
		pairs = append(pairs, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return fmt.Errorf("%s (%s): %w", msg, strings.Join(pairs, " "), err)
}
