// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"maps"
	"slices"

	"github.com/shwrap-project/shwrap/bwrap"
)

// Resolve merges cmd with its referenced template and returns the effective
// policy used for argument synthesis. Sequence fields concatenate template
// contributions first, then the command's own; the share set is the union
// of both, also template-first. Scalar fields come solely from the command.
//
// A dangling extends reference degrades to no inheritance rather than
// failing: a typo in a template name must not block execution, and the
// strict path ([Checker]) is where it gets reported. Resolution never
// mutates the document or the command, so resolving twice yields identical
// results.
func (d *Document) Resolve(cmd *CommandPolicy) *CommandPolicy {
	effective := cmd.clone()
	effective.Extends = ""

	if cmd.Extends == "" {
		return effective
	}
	template, ok := d.Templates[cmd.Extends]
	if !ok {
		return effective
	}

	effective.Share = unionStrings(template.Share, cmd.Share)
	effective.Bind = concatStrings(template.Bind, cmd.Bind)
	effective.ROBind = concatStrings(template.ROBind, cmd.ROBind)
	return effective
}

// Spec converts an effective policy into the argument assembler's input.
func (c *CommandPolicy) Spec() bwrap.Spec {
	return bwrap.Spec{
		Share:    slices.Clone(c.Share),
		Bind:     slices.Clone(c.Bind),
		ROBind:   slices.Clone(c.ROBind),
		DevBind:  slices.Clone(c.DevBind),
		Tmpfs:    slices.Clone(c.Tmpfs),
		Env:      maps.Clone(c.Env),
		UnsetEnv: slices.Clone(c.UnsetEnv),
	}
}

// clone creates a deep copy so resolution can never alias document state.
func (c *CommandPolicy) clone() *CommandPolicy {
	return &CommandPolicy{
		Enabled:  c.Enabled,
		Extends:  c.Extends,
		Share:    slices.Clone(c.Share),
		Bind:     slices.Clone(c.Bind),
		ROBind:   slices.Clone(c.ROBind),
		DevBind:  slices.Clone(c.DevBind),
		Tmpfs:    slices.Clone(c.Tmpfs),
		Env:      maps.Clone(c.Env),
		UnsetEnv: slices.Clone(c.UnsetEnv),
	}
}

// unionStrings merges two lists as a set, keeping first-occurrence order so
// the result is deterministic.
func unionStrings(first, second []string) []string {
	if len(first) == 0 {
		return slices.Clone(second)
	}
	seen := make(map[string]bool, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, value := range slices.Concat(first, second) {
		if seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}

// concatStrings concatenates two lists into a fresh slice.
func concatStrings(first, second []string) []string {
	if len(first) == 0 {
		return slices.Clone(second)
	}
	return slices.Concat(first, second)
}
