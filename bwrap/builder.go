// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

import (
	"log/slog"
	"sort"
	"strings"
)

// BwrapBinary is the name of the bubblewrap executable.
const BwrapBinary = "bwrap"

// Spec is the fully merged sandbox specification for one wrapped command:
// the effective policy with configuration concerns (enabled, extends)
// already resolved away.
type Spec struct {
	// Share names the namespaces NOT isolated from the host. Everything
	// absent from this list is unshared.
	Share []string

	// Bind holds read-write bind mounts as "source:dest" specs.
	Bind []string

	// ROBind holds paths mounted read-only at the same path inside the
	// sandbox.
	ROBind []string

	// DevBind holds device-node paths bound at the same path.
	DevBind []string

	// Tmpfs holds sandbox paths backed by fresh tmpfs mounts.
	Tmpfs []string

	// Env holds environment variables set inside the sandbox.
	Env map[string]string

	// UnsetEnv holds environment variable names removed inside the sandbox.
	UnsetEnv []string
}

// Builder translates a Spec into bubblewrap command-line arguments.
type Builder struct {
	spec    Spec
	environ Environ
	logger  *slog.Logger
}

// NewBuilder creates a builder for spec, expanding paths against environ.
func NewBuilder(spec Spec, environ Environ) *Builder {
	return &Builder{spec: spec, environ: environ}
}

// SetLogger enables warnings for entries dropped during synthesis
// (unknown namespaces, malformed bind specs).
func (b *Builder) SetLogger(logger *slog.Logger) {
	b.logger = logger
}

// warn is a helper that only logs if a logger is configured.
func (b *Builder) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}

// sharedSet converts the spec's share list into a namespace set. Names
// outside the closed namespace enumeration are dropped with a warning;
// a dropped name stays isolated, so recovery never widens access.
func (b *Builder) sharedSet() map[Namespace]bool {
	shared := make(map[Namespace]bool, len(b.spec.Share))
	for _, name := range b.spec.Share {
		if !KnownNamespace(name) {
			b.warn("ignoring unknown namespace in share list", "namespace", name)
			continue
		}
		shared[Namespace(name)] = true
	}
	return shared
}

// Build returns the ordered bwrap argument vector for the spec. The
// emission order is fixed — unshare flags, --bind, --ro-bind, --dev-bind,
// --tmpfs, --setenv, --unsetenv — because bwrap applies overlapping mounts
// in argument order. Building the same spec twice yields identical vectors.
func (b *Builder) Build() []string {
	args := UnshareArgs(b.sharedSet())

	for _, spec := range b.spec.Bind {
		source, dest, err := SplitBindSpec(spec)
		if err != nil {
			b.warn("dropping malformed bind entry", "spec", spec, "error", err)
			continue
		}
		args = append(args, "--bind", b.environ.Expand(source), b.environ.Expand(dest))
	}

	// Read-only and device binds mount at the same path on both sides.
	for _, path := range b.spec.ROBind {
		expanded := b.environ.Expand(path)
		args = append(args, "--ro-bind", expanded, expanded)
	}
	for _, path := range b.spec.DevBind {
		expanded := b.environ.Expand(path)
		args = append(args, "--dev-bind", expanded, expanded)
	}

	for _, path := range b.spec.Tmpfs {
		args = append(args, "--tmpfs", path)
	}

	// Sort env keys for deterministic output.
	keys := make([]string, 0, len(b.spec.Env))
	for key := range b.spec.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--setenv", key, b.spec.Env[key])
	}

	for _, key := range b.spec.UnsetEnv {
		args = append(args, "--unsetenv", key)
	}

	return args
}

// Show renders the full command line — bwrap, its arguments, the wrapped
// command and its arguments — as a single shell-quotable string.
func (b *Builder) Show(command string, commandArgs []string) string {
	parts := append([]string{BwrapBinary}, b.Build()...)
	parts = append(parts, command)
	parts = append(parts, commandArgs...)

	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = shellQuote(part)
	}
	return strings.Join(quoted, " ")
}

// shellQuote quotes a word for copy-paste into a POSIX shell. Words made of
// safe characters pass through unchanged.
func shellQuote(word string) string {
	if word == "" {
		return "''"
	}
	if !strings.ContainsFunc(word, func(r rune) bool {
		return !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-./=:,@%+~", r)
	}) {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}
