// Package flash holds short user-facing messages shown once, typically after
// a redirect.
package flash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel is returned for a level other than Info, Warn or Error.
var ErrInvalidLevel = errors.New("flash: invalid level")

// Level is the severity of a flash message.
type Level string

const (
	Info  Level = "INFO"
	Warn  Level = "WARN"
	Error Level = "ERROR"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case Info, Warn, Error:
		return true
	}
	return false
}

// CSS returns the lower-case level name for use as a class.
func (l Level) CSS() string {
	return strings.ToLower(string(l))
}

// Flash is a single message.
type Flash struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// New creates a flash, rejecting unknown levels.
func New(level Level, message string) (Flash, error) {
	if !level.Valid() {
		return Flash{}, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	return Flash{Level: level, Message: message}, nil
}

func Infof(format string, args ...any) Flash {
	return Flash{Level: Info, Message: fmt.Sprintf(format, args...)}
}

func Warnf(format string, args ...any) Flash {
	return Flash{Level: Warn, Message: fmt.Sprintf(format, args...)}
}

func Errorf(format string, args ...any) Flash {
	return Flash{Level: Error, Message: fmt.Sprintf(format, args...)}
}

// Errors converts messages into error flashes.
func Errors(messages ...string) []Flash {
	out := make([]Flash, 0, len(messages))
	for _, m := range messages {
		out = append(out, Flash{Level: Error, Message: m})
	}
	return out
}
