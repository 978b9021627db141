// Package config implements the layered configuration subsystem shared by the agent and the
// probe: an INI-flavored file format with include/include_dir directives, merged over built-in
// defaults and command-line overrides, with per-option type coercion.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// rawConfig is the result of parsing one configuration file (plus everything it transitively
// includes) before any default-merging, type coercion, or validation happens.
type rawConfig struct {
	options      map[string]string // key -> fully joined (continuation-merged) value
	optionOrder  []string
	commands     map[string]string // command[NAME] -> CMDLINE, keyed by NAME
	commandOrder []string
}

func newRawConfig() *rawConfig {
	return &rawConfig{
		options:  make(map[string]string),
		commands: make(map[string]string),
	}
}

func (r *rawConfig) set(key, value string) {
	if _, exists := r.options[key]; !exists {
		r.optionOrder = append(r.optionOrder, key)
	}
	r.options[key] = value
}

func (r *rawConfig) setCommand(name, cmdline string) {
	if _, exists := r.commands[name]; !exists {
		r.commandOrder = append(r.commandOrder, name)
	}
	r.commands[name] = cmdline
}

func (r *rawConfig) merge(other *rawConfig) {
	for _, k := range other.optionOrder {
		r.set(k, other.options[k])
	}
	for _, n := range other.commandOrder {
		r.setCommand(n, other.commands[n])
	}
}

// commandKeyRE extracts NAME out of a `command[NAME]` key.
var commandKeyRE = regexp.MustCompile(`^command\[([^\]]+)\]$`)

// optionLineRE mirrors Python configparser's OPTCRE: a key made of anything but `=`/`:`/leading
// whitespace, then `=` or `:`, then a value running to end of line.
var optionLineRE = regexp.MustCompile(`^([^=:\s][^=:]*?)\s*([=:])\s*(.*)$`)

// includeState is threaded through recursive parseFile calls so cycles are detected: the set of
// absolute paths already read during the current Parse call.
type includeState struct {
	visited map[string]bool
}

// parseFile parses path, expanding any include/include_dir directives at the point they're
// encountered in the scan, so a later plain assignment in the including file still overrides an
// earlier include, and vice versa.
//
// Relative `include` paths are resolved against the directory of the including file. A file
// already read during the same Parse call may not be read again (ErrIncludeCycle).
func parseFile(path string, st *includeState) (*rawConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	if st.visited[abs] {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, path)
	}
	st.visited[abs] = true

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %s: failed to read file: %w", path, err)
	}
	defer f.Close()

	rc := newRawConfig()
	var errs *multierror.Error
	baseDir := filepath.Dir(path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var curKey string
	var curBuf []string
	lineno := 0

	flush := func() {
		if curKey == "" {
			return
		}
		key, value := curKey, strings.Join(curBuf, "\n")
		curKey, curBuf = "", nil

		switch key {
		case "include":
			incPath := value
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(baseDir, incPath)
			}
			included, err := parseFile(incPath, st)
			if err != nil {
				errs = multierror.Append(errs, err)
				return
			}
			rc.merge(included)

		case "include_dir":
			incDir := value
			if !filepath.IsAbs(incDir) {
				incDir = filepath.Join(baseDir, incDir)
			}
			var files []string
			walkErr := filepath.Walk(incDir, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && strings.HasSuffix(info.Name(), ".cfg") {
					files = append(files, p)
				}
				return nil
			})
			if walkErr != nil {
				errs = multierror.Append(errs, fmt.Errorf("include_dir %s: %w", incDir, walkErr))
				return
			}
			sort.Strings(files)
			for _, p := range files {
				included, err := parseFile(p, st)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				rc.merge(included)
			}

		default:
			if m := commandKeyRE.FindStringSubmatch(key); m != nil {
				rc.setCommand(m[1], value)
			} else {
				rc.set(key, value)
			}
		}
	}

	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == '#' || line[0] == ';' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.EqualFold(fields[0], "rem") {
			continue
		}

		// Continuation line: starts with whitespace and we have an option in progress.
		if (line[0] == ' ' || line[0] == '\t') && curKey != "" {
			value := strings.TrimSpace(line)
			if value != "" {
				curBuf = append(curBuf, value)
			}
			continue
		}

		flush()

		m := optionLineRE.FindStringSubmatch(line)
		if m == nil {
			errs = multierror.Append(errs, fmt.Errorf("%s:%d: malformed line: %q", path, lineno, line))
			continue
		}

		key := strings.TrimRight(m[1], " \t")
		vi := m[2]
		val := m[3]

		if vi == "=" || vi == ":" {
			if pos := strings.Index(val, ";"); pos > 0 && isSpace(val[pos-1]) {
				val = val[:pos]
			}
		}
		val = strings.TrimSpace(val)
		if val == `""` {
			val = ""
		}

		curKey = key
		curBuf = []string{val}
	}
	flush()

	if err := scanner.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
	}

	return rc, errs.ErrorOrNil()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// Parse reads path (and everything it transitively includes) and returns the merged raw option
// set. This is the entry point used by LoadServer/LoadClient.
func Parse(path string) (*rawConfig, error) {
	return parseFile(path, &includeState{visited: make(map[string]bool)})
}
