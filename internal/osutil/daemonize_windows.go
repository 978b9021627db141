//go:build windows

package osutil

import "fmt"

// IsDaemonChild always reports false on Windows: there is no detached re-exec step.
func IsDaemonChild() bool {
	return false
}

// Daemonize is not supported on Windows, which has no fork/setsid equivalent. Callers should run
// the agent in the foreground, typically under a service manager that supplies the detachment.
func Daemonize() error {
	return fmt.Errorf("osutil.Daemonize: not supported on windows, run with -f under a service manager")
}
