// Package debug is a file-backed diagnostic logger, enabled by config. When
// disabled every call is a no-op, so call sites never guard.
package debug

import (
	"log"
	"os"
)

type Logger struct {
	enabled bool
}

// NewLogger opens the log file for appending when enabled. A file that
// cannot be opened leaves output on stderr rather than failing startup.
func NewLogger(enabled bool, path string) *Logger {
	if enabled {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err == nil {
			log.SetOutput(logFile)
		}
		log.Printf("=== debug logging enabled ===")
	}

	return &Logger{enabled: enabled}
}

func (d *Logger) Printf(format string, args ...interface{}) {
	if d.enabled {
		log.Printf(format, args...)
	}
}

func (d *Logger) Println(args ...interface{}) {
	if d.enabled {
		log.Println(args...)
	}
}
