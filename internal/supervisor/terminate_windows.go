//go:build windows

package supervisor

import (
	"os/exec"
	"time"
)

// terminateHard has no graceful-then-forceful distinction on Windows; the process tree is
// simply killed and we wait once for it to exit.
func terminateHard(cmd *exec.Cmd, attempts int, interval time.Duration, waitErr <-chan error) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	select {
	case <-waitErr:
	case <-time.After(interval):
	}
}

func signalTerminationMessage(exitErr *exec.ExitError) (string, bool) {
	return "", false
}
