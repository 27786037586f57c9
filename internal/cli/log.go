package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. It writes to w and filters at level;
// while the presentation owns the terminal, w should be a log file or
// io.Discard rather than stderr.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
