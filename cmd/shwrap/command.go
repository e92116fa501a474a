// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/shwrap-project/shwrap/bwrap"
	"github.com/shwrap-project/shwrap/cli"
)

func newCommandCommand(ctx context.Context, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "command",
		Summary: "List, run, and inspect sandboxed commands",
		Subcommands: []*cli.Command{
			newCommandListCommand(logger),
			newCommandExecCommand(ctx, logger),
			newCommandShowCommand(logger),
		},
	}
}

func newCommandListCommand(logger *slog.Logger) *cli.Command {
	var simple bool
	return &cli.Command{
		Name:    "list",
		Summary: "List enabled commands",
		Usage:   "shwrap command list [--simple]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVar(&simple, "simple", false, "names only, one per line (for scripts and shell hooks)")
			return flags
		},
		Run: func(args []string) error {
			doc, err := loadDocument(logger)
			if err != nil {
				return err
			}

			if simple {
				for _, name := range doc.CommandNames() {
					cmd, err := doc.Command(name)
					if err != nil || !cmd.Enabled {
						continue
					}
					fmt.Println(name)
				}
				return nil
			}

			fmt.Println("Active command configurations:")
			for _, name := range doc.CommandNames() {
				cmd, err := doc.Command(name)
				if err != nil || !cmd.Enabled {
					continue
				}
				resolved := doc.Resolve(cmd)
				fmt.Printf("\n%s:\n", name)
				printList("share", resolved.Share)
				printList("bind", resolved.Bind)
				printList("ro_bind", resolved.ROBind)
				printList("dev_bind", resolved.DevBind)
				printList("tmpfs", resolved.Tmpfs)
			}
			return nil
		},
	}
}

func printList(label string, values []string) {
	if len(values) > 0 {
		fmt.Printf("  %s: %s\n", label, strings.Join(values, ", "))
	}
}

func newCommandExecCommand(ctx context.Context, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "exec",
		Summary: "Run a command inside its sandbox",
		Usage:   "shwrap command exec <command> [args...]",
		Examples: []cli.Example{
			{Description: "Run npm install with the npm policy", Command: "shwrap command exec npm install"},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("command name required")
			}

			doc, err := loadDocument(logger)
			if err != nil {
				return err
			}
			cmd, err := doc.EnabledCommand(args[0])
			if err != nil {
				return err
			}

			builder := bwrap.NewBuilder(doc.Resolve(cmd).Spec(), bwrap.CurrentEnviron())
			builder.SetLogger(logger)
			return builder.Exec(ctx, args[0], args[1:])
		},
	}
}

func newCommandShowCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Print the bwrap command line without running it",
		Usage:   "shwrap command show <command> [args...]",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("command name required")
			}

			doc, err := loadDocument(logger)
			if err != nil {
				return err
			}
			cmd, err := doc.Command(args[0])
			if err != nil {
				return err
			}

			builder := bwrap.NewBuilder(doc.Resolve(cmd).Spec(), bwrap.CurrentEnviron())
			builder.SetLogger(logger)
			fmt.Println(builder.Show(args[0], args[1:]))
			return nil
		},
	}
}
