//go:build unix

// Package pidfile implements daemon PID-file acquisition: create-exclusive on the happy path,
// with stale-file detection and advisory locking when a file is already present.
package pidfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrAlreadyRunning is returned by Acquire when another live process holds the lock on the PID
// file.
var ErrAlreadyRunning = errors.New("pidfile: another instance is already running")

// File is a held PID file. The zero value is not usable; obtain one from Acquire.
type File struct {
	path string
	f    *os.File
}

// Acquire creates or takes over path, following the same rules as a classic Unix daemon PID
// file: try to create it exclusively; if it already exists, open it, inspect its contents, and
// treat it as stale (and remove it) unless a live process actually holds the advisory lock on
// it. The file is not yet written to — call Write once the daemon has its final PID (this
// matters when the caller forks after acquiring).
func Acquire(path string) (*File, error) {
	f, err := createExclusive(path)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("pidfile: %s: %w", path, err)
		}
		f, err = takeOverStale(path)
		if err != nil {
			return nil, err
		}
	}

	if err := lockFile(f, true); err != nil {
		f.Close()
		return nil, fmt.Errorf("pidfile: %s: failed to lock: %w", path, err)
	}

	return &File{path: path, f: f}, nil
}

func createExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
}

// takeOverStale is reached when path already exists. It decides whether the existing file
// represents a dead process (stale: remove and recreate) or a live one (ErrAlreadyRunning).
func takeOverStale(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("pidfile: %s: %w", path, err)
	}
	defer f.Close()

	pid, validPID := readPID(f)
	locked := lockFile(f, true) == nil
	if locked {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}

	stale := !validPID || pid == os.Getpid() || locked
	if !stale {
		return nil, ErrAlreadyRunning
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("pidfile: %s: failed to remove stale file: %w", path, err)
	}

	return createExclusive(path)
}

func readPID(f *os.File) (int, bool) {
	if _, err := f.Seek(0, 0); err != nil {
		return 0, false
	}
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return 0, false
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func lockFile(f *os.File, nonblock bool) error {
	op := unix.LOCK_EX
	if nonblock {
		op |= unix.LOCK_NB
	}
	return unix.Flock(int(f.Fd()), op)
}

// Write records the calling process's PID, truncating any prior content. It re-asserts the
// advisory lock first since a fork() between Acquire and Write drops the lock held by the
// parent's file descriptor table entry only in the child, not here.
func (p *File) Write() error {
	if err := lockFile(p.f, false); err != nil {
		return fmt.Errorf("pidfile: %s: failed to lock before write: %w", p.path, err)
	}
	if _, err := p.f.Seek(0, 0); err != nil {
		return fmt.Errorf("pidfile: %s: %w", p.path, err)
	}
	if err := p.f.Truncate(0); err != nil {
		return fmt.Errorf("pidfile: %s: %w", p.path, err)
	}
	if _, err := fmt.Fprintf(p.f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("pidfile: %s: %w", p.path, err)
	}
	return p.f.Sync()
}

// Close releases the lock, closes the file, and removes it from disk.
func (p *File) Close() error {
	if p.f == nil {
		return nil
	}
	err := p.f.Close()
	p.f = nil
	if rmErr := os.Remove(p.path); rmErr != nil && !os.IsNotExist(rmErr) {
		if err == nil {
			err = rmErr
		}
	}
	return err
}
