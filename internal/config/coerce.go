package config

import (
	"fmt"
	"strconv"
	"strings"
)

// coerceBool mirrors the handful of spellings Python's ConfigParser.getboolean accepts.
func coerceBool(path, key, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s: %s: expected a boolean but got %q", path, key, value)
	}
}

func coerceInt(path, key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %s: expected an integer but got %q", path, key, value)
	}
	return n, nil
}

// coerceList splits a comma-separated option value into trimmed words, dropping empty entries
// produced by a trailing/leading/doubled comma.
func coerceList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
