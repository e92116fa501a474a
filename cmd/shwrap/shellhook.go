// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/shwrap-project/shwrap/cli"
	"github.com/shwrap-project/shwrap/shellhook"
)

func newShellHookCommand() *cli.Command {
	return &cli.Command{
		Name:    "shell-hook",
		Summary: "Print shell integration scripts",
		Subcommands: []*cli.Command{
			{
				Name:    "get",
				Summary: "Print the hook script for a shell",
				Usage:   "shwrap shell-hook get <shell>",
				Examples: []cli.Example{
					{Description: "Install the bash hook", Command: `eval "$(shwrap shell-hook get bash)"`},
					{Description: "Install the fish hook", Command: "shwrap shell-hook get fish | source"},
				},
				Run: func(args []string) error {
					if len(args) != 1 {
						return fmt.Errorf("shell name required (supported: %s)", shellNames())
					}
					shell, ok := shellhook.FromName(args[0])
					if !ok {
						return fmt.Errorf("unsupported shell %q (supported: %s)", args[0], shellNames())
					}
					hook, ok := shell.Hook()
					if !ok {
						return fmt.Errorf("no hook available for %s", shell)
					}
					fmt.Print(hook)
					return nil
				},
			},
		},
	}
}

func shellNames() string {
	names := make([]string, len(shellhook.Shells))
	for i, shell := range shellhook.Shells {
		names[i] = string(shell)
	}
	return strings.Join(names, ", ")
}
