package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer that turns each written line into a log record.
type Writer struct {
	logger *slog.Logger
	msg    string
}

// NewWriter constructs a Writer that logs lines under msg at info level.
func NewWriter(logger *slog.Logger, msg string) *Writer {
	return &Writer{logger: logger, msg: msg}
}

// Write logs every non-empty line in p.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			w.logger.Info(w.msg, "line", line)
		}
	}
	return len(p), nil
}
