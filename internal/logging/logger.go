package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Options configures New
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Output defaults to stderr.
	Output io.Writer
	// RunID tags every line; a random one is generated when empty.
	RunID string
}

// New builds the logger shared by a single flatten run
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	runID := opts.RunID
	if runID == "" {
		runID = NewRunID()
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          "flattengit",
		ReportTimestamp: true,
	})
	return logger.With("run", runID)
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// NewRunID generates a short identifier for correlating a run's log lines
func NewRunID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// ParseLevel maps a level name to a log.Level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}
