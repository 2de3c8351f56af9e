package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning if the close fails. It is meant
// for deferred cleanup of HTTP response bodies, where the close error is
// worth recording but must not replace the error already being returned.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("error closing resource", "error", err)
	}
}
