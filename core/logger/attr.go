package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by their position.
// Returns an empty Attr if every error is nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an "error" attribute. Returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Action(action string) slog.Attr {
	return slog.String("action", action)
}

func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// Key creates an arbitrary attribute. Returns an empty Attr for a nil value.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// Prefix records a token namespace.
func Prefix(prefix string) slog.Attr {
	if prefix == "" {
		return slog.Attr{}
	}
	return slog.String("prefix", prefix)
}

// UserID records a user identifier. The nil UUID yields an empty Attr.
func UserID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("user_id", id.String())
}

// tokenVisible is how many leading characters of a token are logged.
const tokenVisible = 4

// Token records a redacted token: its first characters and its length.
// Full tokens are bearer credentials and must never reach the logs.
func Token(tok string) slog.Attr {
	if tok == "" {
		return slog.Attr{}
	}
	visible := tok
	if len(visible) > tokenVisible {
		visible = visible[:tokenVisible]
	}
	return slog.String("token", visible+"…("+strconv.Itoa(len(tok))+")")
}
