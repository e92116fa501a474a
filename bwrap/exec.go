// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// ExitError carries the wrapped command's exit code. Callers that receive
// an ExitError should exit with the same code without printing anything:
// the sandboxed command already wrote its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the exit code. The CLI entry point checks for this
// interface on returned errors to distinguish "propagate the child's exit
// code" from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// IsExitError checks if an error is an ExitError and returns the code.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// bwrapLocations are checked after PATH lookup fails. bwrap is commonly
// installed setuid in one of these even when PATH is stripped.
var bwrapLocations = []string{
	"/usr/bin/bwrap",
	"/usr/local/bin/bwrap",
	"/bin/bwrap",
}

// BwrapPath locates an executable bubblewrap binary. It consults PATH
// first, then the standard install locations.
func BwrapPath() (string, error) {
	if path, err := exec.LookPath(BwrapBinary); err == nil {
		return path, nil
	}

	for _, path := range bwrapLocations {
		if err := unix.Access(path, unix.X_OK); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("bwrap not found in PATH or standard locations (is bubblewrap installed?)")
}

// Exec runs command with its arguments inside the sandbox described by the
// builder's spec. It blocks until the child exits. A non-zero exit from the
// child is returned as an [ExitError] carrying the child's code; a child
// that terminated without an exit code (killed by a signal) yields code 1.
// Failure to launch the bwrap binary at all is returned verbatim.
func (b *Builder) Exec(ctx context.Context, command string, commandArgs []string) error {
	path, err := BwrapPath()
	if err != nil {
		return err
	}

	argv := append(b.Build(), command)
	argv = append(argv, commandArgs...)

	cmd := exec.CommandContext(ctx, path, argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if b.logger != nil {
		b.logger.Debug("running wrapped command", "bwrap", path, "command", command)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Killed by a signal: no exit code available.
				code = 1
			}
			return &ExitError{Code: code}
		}
		return fmt.Errorf("launching %s: %w", path, err)
	}

	return nil
}
