// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger used by all shwrap commands.
// When stderr is a terminal, it uses slog.TextHandler for human-readable
// output. When stderr is piped or redirected (scripts, shell hooks, CI),
// it uses slog.JSONHandler so warnings stay machine-parseable.
//
// Level defaults to Warn — the tool's normal output is the wrapped
// command's own — and drops to Debug when SHWRAP_DEBUG is set, which
// makes the config discovery walk and argument synthesis visible.
func NewLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("SHWRAP_DEBUG") != "" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
