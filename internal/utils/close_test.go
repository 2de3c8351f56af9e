package utils

import (
	"errors"
	"testing"
)

// errCloser is a mock io.Closer that always returns the configured error.
type errCloser struct {
	closeErr error
	closed   bool
}

func (ec *errCloser) Close() error {
	ec.closed = true
	return ec.closeErr
}

// TestCloseWithLog verifies that the underlying closer is closed and that a
// close error does not panic, since it is only logged.
func TestCloseWithLog(t *testing.T) {
	t.Run("clean close", func(t *testing.T) {
		closer := &errCloser{}
		CloseWithLog(closer)
		if !closer.closed {
			t.Error("expected Close to be called")
		}
	})

	t.Run("close error is swallowed", func(t *testing.T) {
		closer := &errCloser{closeErr: errors.New("close error")}
		CloseWithLog(closer)
		if !closer.closed {
			t.Error("expected Close to be called")
		}
	})

	t.Run("nil closer is a no-op", func(t *testing.T) {
		CloseWithLog(nil)
	})
}
