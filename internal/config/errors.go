package config

import "errors"

// ErrIncludeCycle is returned when an `include` or `include_dir` directive would re-read a
// configuration file already read earlier in the same Parse call, which in a cycle would
// otherwise recurse until the process runs out of file descriptors.
var ErrIncludeCycle = errors.New("config: include cycle detected")

// ErrAlreadyRunning would be a natural sibling here but belongs to the pidfile package, since
// that is where "another instance is live" is actually detected.
