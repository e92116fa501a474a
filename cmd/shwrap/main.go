// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// shwrap runs configured commands inside bubblewrap sandboxes driven by a
// declarative .shwrap.yaml policy.
//
// Usage:
//
//	shwrap config init [--template <name>]
//	shwrap config check [path] [--silent]
//	shwrap config which
//	shwrap command list [--simple]
//	shwrap command exec <command> [args...]
//	shwrap command show <command> [args...]
//	shwrap shell-hook get <shell>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shwrap-project/shwrap/cli"
	"github.com/shwrap-project/shwrap/policy"
	"github.com/shwrap-project/shwrap/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("shwrap %s\n", version.Info())
		return
	}

	logger := cli.NewLogger()

	// Forward interrupts to the wrapped command's process group via the
	// exec context rather than dying out from under it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := &cli.Command{
		Name:        "shwrap",
		Description: "Run commands inside declarative bubblewrap sandboxes.",
		Subcommands: []*cli.Command{
			newConfigCommand(logger),
			newCommandCommand(ctx, logger),
			newShellHookCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Println("shwrap " + version.Full())
					return nil
				},
			},
		},
	}

	err := root.Execute(os.Args[1:])
	stop()
	if err != nil {
		if code, ok := cli.ExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDocument discovers and parses the policy document for the current
// process environment.
func loadDocument(logger *slog.Logger) (*policy.Document, error) {
	loader := policy.NewLoader(policy.CurrentEnviron())
	loader.SetLogger(logger)
	return loader.Load()
}
