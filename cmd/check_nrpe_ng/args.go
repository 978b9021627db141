package main

import (
	"fmt"
	"strings"
)

// buildArgsMap flattens repeated -a values into the map the agent expects: a K=V argument
// contributes K -> V; a bare argument contributes ARGn -> value, where n starts at 1 and
// increments once per bare argument (K=V arguments don't consume a slot).
func buildArgsMap(args []string) map[string]string {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]string, len(args))
	bareIndex := 0
	for _, a := range args {
		if key, value, ok := strings.Cut(a, "="); ok {
			m[key] = value
			continue
		}
		bareIndex++
		m[fmt.Sprintf("ARG%d", bareIndex)] = a
	}
	return m
}
