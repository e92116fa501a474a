// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package shellhook provides the shell integration scripts that alias
// configured commands through shwrap. The scripts are embedded at build
// time; selecting a shell is a static table lookup, not code generation.
package shellhook

import (
	_ "embed"
	"strings"
)

//go:embed bash_hook.sh
var bashHook string

//go:embed fish_hook.fish
var fishHook string

// Shell identifies a supported interactive shell.
type Shell string

const (
	Bash    Shell = "bash"
	Zsh     Shell = "zsh"
	Fish    Shell = "fish"
	Nushell Shell = "nushell"
)

// Shells lists every recognized shell name, in the order they are
// documented in help output.
var Shells = []Shell{Bash, Zsh, Fish, Nushell}

// FromName maps a user-supplied shell name to a Shell. Matching is
// case-insensitive. Returns false for unrecognized names.
func FromName(name string) (Shell, bool) {
	switch Shell(strings.ToLower(name)) {
	case Bash:
		return Bash, true
	case Zsh:
		return Zsh, true
	case Fish:
		return Fish, true
	case Nushell:
		return Nushell, true
	}
	return "", false
}

// Hook returns the integration script for the shell. Zsh reuses the bash
// script, which is valid zsh for the constructs it uses (precmd is wired
// through PROMPT_COMMAND emulation). Nushell has no hook: its aliases are
// resolved at parse time and cannot be rebuilt per prompt, so ok is false.
func (s Shell) Hook() (script string, ok bool) {
	switch s {
	case Bash, Zsh:
		return bashHook, true
	case Fish:
		return fishHook, true
	}
	return "", false
}
