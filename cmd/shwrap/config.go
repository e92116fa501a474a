// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/shwrap-project/shwrap/cli"
	"github.com/shwrap-project/shwrap/policy"
)

//go:embed templates
var templates embed.FS

func newConfigCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Create, validate, and locate policy files",
		Subcommands: []*cli.Command{
			newConfigInitCommand(),
			newConfigCheckCommand(logger),
			newConfigWhichCommand(logger),
		},
	}
}

func newConfigInitCommand() *cli.Command {
	var template string
	return &cli.Command{
		Name:    "init",
		Summary: "Write a starter " + policy.ConfigFileName + " in the current directory",
		Usage:   "shwrap config init [--template <name>]",
		Examples: []cli.Example{
			{Description: "Start from the Node.js template", Command: "shwrap config init --template nodejs"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("init", pflag.ContinueOnError)
			flags.StringVar(&template, "template", "default",
				"starter template ("+strings.Join(templateNames(), ", ")+")")
			return flags
		},
		Run: func(args []string) error {
			content, err := templates.ReadFile("templates/" + template + ".yaml")
			if err != nil {
				return fmt.Errorf("unknown template %q (available: %s)",
					template, strings.Join(templateNames(), ", "))
			}

			if _, err := os.Stat(policy.ConfigFileName); err == nil {
				return fmt.Errorf("%s already exists in the current directory", policy.ConfigFileName)
			}

			if err := os.WriteFile(policy.ConfigFileName, content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", policy.ConfigFileName, err)
			}

			fmt.Printf("Created %s from the %s template\n", policy.ConfigFileName, template)
			return nil
		},
	}
}

func newConfigCheckCommand(logger *slog.Logger) *cli.Command {
	var silent bool
	return &cli.Command{
		Name:    "check",
		Summary: "Validate a policy file",
		Usage:   "shwrap config check [path] [--silent]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
			flags.BoolVar(&silent, "silent", false, "no output, report via exit code only")
			return flags
		},
		Run: func(args []string) error {
			var doc *policy.Document
			var err error
			if len(args) > 0 {
				doc, err = policy.ParseFile(args[0])
			} else {
				doc, err = loadDocument(logger)
			}
			if err != nil {
				if silent {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			checker := policy.NewChecker()
			checker.CheckDocument(doc)
			if !silent {
				checker.PrintResults(os.Stdout)
			}
			if checker.HasErrors() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func newConfigWhichCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "which",
		Summary: "Print the policy file that would be used",
		Usage:   "shwrap config which",
		Run: func(args []string) error {
			loader := policy.NewLoader(policy.CurrentEnviron())
			loader.SetLogger(logger)
			path := loader.Find()
			if path == "" {
				return &policy.NotFoundError{}
			}
			fmt.Println(path)
			return nil
		},
	}
}

func templateNames() []string {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return names
}
