package shutdown

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Suggested priorities for the steps below.
const (
	PriorityHTTPServer = 10
	PriorityClients    = 20
	PriorityLogger     = 90
)

// HTTPServer returns a step that stops srv accepting connections and waits
// for active requests until ctx expires.
//
//	manager.Register("http-server", shutdown.PriorityHTTPServer, shutdown.HTTPServer(srv))
func HTTPServer(srv *http.Server) Func {
	return func(ctx context.Context) error {
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Closer adapts an io.Closer, such as the websocket hub, to a shutdown step.
func Closer(c io.Closer) Func {
	return func(context.Context) error {
		return c.Close()
	}
}

// SyncLogger flushes logger. Syncing a terminal or pipe fails with EINVAL
// or ENOTTY on Linux; those errors are ignored.
func SyncLogger(logger *zap.Logger) Func {
	return func(context.Context) error {
		err := logger.Sync()
		if err == nil || isBenignSyncError(err) {
			return nil
		}
		return err
	}
}

func isBenignSyncError(err error) bool {
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
