//go:build windows

package osutil

import (
	"os"
	"os/signal"
)

// SignalNotify registers the signals the daemon lifecycle cares about. Windows has no SIGHUP or
// SIGTERM; os.Interrupt is the closest equivalent to an orderly shutdown request.
func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt)
}

// IsReloadSignal always reports false on Windows: there is no reload trigger.
func IsReloadSignal(s os.Signal) bool {
	return false
}
