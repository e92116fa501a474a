// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/shwrap-project/shwrap/bwrap"
)

// CheckResult holds the outcome of one configuration check.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Checker performs strict validation of a policy document. The resolution
// engine deliberately recovers from these problems by omission so that a
// single bad line never blocks execution; the checker is the path that
// surfaces every one of them instead.
type Checker struct {
	results []CheckResult
	errors  int
}

// NewChecker creates a new checker.
func NewChecker() *Checker {
	return &Checker{results: make([]CheckResult, 0)}
}

// Results returns all check results.
func (c *Checker) Results() []CheckResult {
	return c.results
}

// HasErrors returns true if any check failed.
func (c *Checker) HasErrors() bool {
	return c.errors > 0
}

// pass records a successful check.
func (c *Checker) pass(name, message string) {
	c.results = append(c.results, CheckResult{Name: name, Passed: true, Message: message})
}

// warn records a warning (not a failure).
func (c *Checker) warn(name, message string) {
	c.results = append(c.results, CheckResult{Name: name, Passed: true, Message: message, Warning: true})
}

// fail records a check failure.
func (c *Checker) fail(name, message string) {
	c.results = append(c.results, CheckResult{Name: name, Passed: false, Message: message})
	c.errors++
}

// CheckDocument runs every check against the document.
func (c *Checker) CheckDocument(doc *Document) {
	for _, name := range slices.Sorted(maps.Keys(doc.Templates)) {
		template := doc.Templates[name]
		c.checkShare("template "+name, template.Share)
		c.checkBinds("template "+name, template.Bind)
	}

	for _, name := range doc.CommandNames() {
		cmd := doc.Commands[name]
		label := "command " + name

		if cmd.Extends != "" {
			if _, ok := doc.Templates[cmd.Extends]; !ok {
				c.fail(label, fmt.Sprintf("extends unknown template %q (inheritance will be ignored)", cmd.Extends))
			}
		}

		c.checkShare(label, cmd.Share)
		c.checkBinds(label, cmd.Bind)

		if !cmd.Enabled {
			c.warn(label, "disabled")
		} else {
			c.pass(label, "ok")
		}
	}
}

// checkShare fails on namespace names outside the closed enumeration.
// At execution time these are dropped with a warning.
func (c *Checker) checkShare(label string, share []string) {
	for _, name := range share {
		if !bwrap.KnownNamespace(name) {
			c.fail(label, fmt.Sprintf("unknown namespace %q in share list", name))
		}
	}
}

// checkBinds fails on malformed "source:dest" specs and warns about
// duplicate destinations. At execution time malformed entries are dropped.
func (c *Checker) checkBinds(label string, binds []string) {
	dests := make(map[string]bool, len(binds))
	for _, spec := range binds {
		_, dest, err := bwrap.SplitBindSpec(spec)
		if err != nil {
			c.fail(label, err.Error())
			continue
		}
		if dests[dest] {
			c.warn(label, fmt.Sprintf("duplicate bind destination %q (later mount wins)", dest))
		}
		dests[dest] = true
	}
}

// PrintResults writes check results to a writer.
func (c *Checker) PrintResults(w io.Writer) {
	for _, r := range c.results {
		var prefix string
		if r.Passed {
			if r.Warning {
				prefix = "⚠"
			} else {
				prefix = "✓"
			}
		} else {
			prefix = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, r.Name, r.Message)
	}

	fmt.Fprintln(w)
	if c.HasErrors() {
		fmt.Fprintf(w, "Check failed with %d error(s)\n", c.errors)
	} else {
		fmt.Fprintln(w, "Configuration is valid")
	}
}
