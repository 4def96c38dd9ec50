package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// defaultWriter is where logs go unless SetOutput replaces it.
var defaultWriter io.Writer = os.Stderr

func init() {
	// Keep stdout for command output such as encoded frames.
	pterm.DefaultLogger.Writer = defaultWriter
	pterm.DefaultLogger.ShowTime = true
	pterm.DefaultLogger.TimeFormat = "02 Jan 15:04:05"
	pterm.DefaultLogger.MaxWidth = 1000
}

// Leveled logging backed by the pterm default logger, writing to stderr.

func Debug(format string, args ...any) {
	pterm.DefaultLogger.Debug(fmt.Sprintf(format, args...))
}

func Info(format string, args ...any) {
	pterm.DefaultLogger.Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...any) {
	pterm.DefaultLogger.Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...any) {
	pterm.DefaultLogger.Error(fmt.Sprintf(format, args...))
}

// EnableDebug shows debug messages.
func EnableDebug() {
	pterm.DefaultLogger.Level = pterm.LogLevelDebug
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	pterm.DefaultLogger.Writer = w
}
