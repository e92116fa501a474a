// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Environ is a snapshot of the process environment used for path expansion.
// Passing it explicitly (rather than reading os.Getenv ad hoc) keeps
// argument synthesis a pure function of the policy document and the
// snapshot, which makes generated command lines reproducible in tests.
type Environ struct {
	// Home is the user's home directory, substituted for a leading ~.
	Home string

	// Vars holds environment variables for $VAR and ${VAR} references.
	Vars map[string]string
}

// CurrentEnviron captures the calling process's environment.
func CurrentEnviron() Environ {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	vars := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			vars[key] = value
		}
	}

	return Environ{Home: home, Vars: vars}
}

// envRef matches ${VAR} and $VAR references.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Expand performs shell-style expansion of a leading ~ and of $VAR/${VAR}
// references. An unresolvable reference is left in place unchanged: an
// unexpandable path will fail later at the bwrap level with a clearer error
// than anything we could synthesize here.
func (e Environ) Expand(path string) string {
	if e.Home != "" {
		if path == "~" {
			path = e.Home
		} else if rest, ok := strings.CutPrefix(path, "~/"); ok {
			path = e.Home + "/" + rest
		}
	}

	return envRef.ReplaceAllStringFunc(path, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		name = strings.TrimPrefix(name, "{")
		name = strings.TrimSuffix(name, "}")
		if value, ok := e.Vars[name]; ok {
			return value
		}
		return match
	})
}

// SplitBindSpec splits a "source:dest" bind-mount specification. Exactly
// two colon-separated components are required; paths containing colons are
// not supported. Callers log the error as a warning and drop the entry so
// that one malformed line never blocks an otherwise-valid invocation.
func SplitBindSpec(spec string) (source, dest string, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid bind spec %q: must be source:dest", spec)
	}
	return parts[0], parts[1], nil
}
