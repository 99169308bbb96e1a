package gvdoc

import "log/slog"

const (
	logGroup = "gvdoc"
)

var logger *slog.Logger

func init() {
	logger = slog.Default().WithGroup(logGroup)
}

// SetLogger replaces the logger used by the editor and its commands.
func SetLogger(log *slog.Logger) {
	logger = log.WithGroup(logGroup)
}
