// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra error
// message. When a command handler returns an ExitError, main exits with
// the specified code without printing the error string — the command is
// expected to have already written its own output.
//
// The wrapped-command path uses this to forward the sandboxed process's
// exit code; "config check" uses it so scripts can branch on the result.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from "unexpected
// error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode extracts an exit code from err. Any error in the chain exposing
// an ExitCode() int method (including bwrap's ExitError) yields its code
// with ok=true.
func ExitCode(err error) (int, bool) {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}
