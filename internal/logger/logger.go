package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu   sync.Mutex
	base *slog.Logger
)

// Init installs the process-wide base logger. Verbose lowers the level
// to debug. Safe to call more than once; the last call wins.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	mu.Lock()
	defer mu.Unlock()
	base = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func root() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return base
}

// WithComponent returns a logger scoped to one component.
func WithComponent(name string) *slog.Logger {
	return root().With(slog.String("component", name))
}

// Component-specific logger functions

// CLI returns a logger for command-line operations
func CLI() *slog.Logger {
	return WithComponent("cli")
}

// DB returns a logger for database operations
func DB() *slog.Logger {
	return WithComponent("db")
}

// Store returns a logger for task store operations
func Store() *slog.Logger {
	return WithComponent("store")
}

// Web returns a logger for request handling operations
func Web() *slog.Logger {
	return WithComponent("web")
}
