// Package logging maps the CLI verbosity levels onto log/slog and installs
// the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

func (v VerbosityLevel) String() string {
	switch v {
	case Verbose:
		return "Verbose"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Off"
	}
}

// ParseVerbosity converts a CLI verbosity string into a VerbosityLevel.
func ParseVerbosity(value string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "verbose":
		return Verbose, nil
	case "info":
		return Info, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	default:
		return Info, fmt.Errorf("invalid verbosity level %q (valid: Verbose, Info, Warning, Error, Off)", value)
	}
}

func slogLevel(v VerbosityLevel) slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Configure installs a text handler honoring the verbosity as the default
// slog logger. Off discards all output. A nil writer defaults to stderr.
func Configure(w io.Writer, verbosity VerbosityLevel) {
	if w == nil {
		w = os.Stderr
	}
	if verbosity == Off {
		w = io.Discard
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel(verbosity)})
	slog.SetDefault(slog.New(handler))
}
