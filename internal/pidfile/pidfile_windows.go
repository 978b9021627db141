//go:build windows

package pidfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrAlreadyRunning is returned by Acquire when another live process holds the lock on the PID
// file.
var ErrAlreadyRunning = errors.New("pidfile: another instance is already running")

// File is a held PID file, Windows variant: no advisory locking primitive is used, only
// create-exclusive semantics, since nrpe-ng does not target Windows as a daemon host and this
// exists only to keep the module buildable there.
type File struct {
	path string
	f    *os.File
}

func Acquire(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("pidfile: %s: %w", path, err)
	}
	return &File{path: path, f: f}, nil
}

func (p *File) Write() error {
	if _, err := p.f.Seek(0, 0); err != nil {
		return err
	}
	if err := p.f.Truncate(0); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.f, "%d\n", os.Getpid())
	return err
}

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
