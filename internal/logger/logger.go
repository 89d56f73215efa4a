// Package logger configures the application's structured logger.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed structured logger writing to stdout.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
