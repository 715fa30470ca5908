// Package logger builds the service logger: charmbracelet/log to stderr,
// optionally teeing to a size-rotated file.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger. When dir is non-empty, log lines also go to a
// rotating file under dir. Debug lowers the level to DebugLevel and reports
// callers.
func New(dir string, debug bool) (*log.Logger, error) {
	var writer io.Writer = os.Stderr

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "momentum.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "momentum",
	}), nil
}
