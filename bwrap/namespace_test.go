// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

import (
	"strings"
	"testing"
)

func TestUnshareArgsDefaultDeny(t *testing.T) {
	args := UnshareArgs(nil)

	want := []string{
		"--unshare-user",
		"--unshare-pid",
		"--unshare-net",
		"--unshare-ipc",
		"--unshare-uts",
		"--unshare-cgroup",
	}
	if len(args) != len(want) {
		t.Fatalf("UnshareArgs(nil) = %v, want %v", args, want)
	}
	for i, flag := range want {
		if args[i] != flag {
			t.Errorf("args[%d] = %q, want %q", i, args[i], flag)
		}
	}
}

// TestUnshareArgsComplement checks, for every subset of the namespace set,
// that the output is exactly the complement in enumeration order.
func TestUnshareArgsComplement(t *testing.T) {
	for mask := 0; mask < 1<<len(Namespaces); mask++ {
		shared := make(map[Namespace]bool)
		for i, ns := range Namespaces {
			if mask&(1<<i) != 0 {
				shared[ns] = true
			}
		}

		args := UnshareArgs(shared)

		var want []string
		for i, ns := range Namespaces {
			if mask&(1<<i) == 0 {
				want = append(want, unshareFlags[ns])
			}
		}

		if strings.Join(args, " ") != strings.Join(want, " ") {
			t.Errorf("mask %06b: UnshareArgs = %v, want %v", mask, args, want)
		}
	}
}

func TestUnshareArgsOrderIndependentOfInput(t *testing.T) {
	// The shared set is a map, so input iteration order is arbitrary; the
	// output must still follow enumeration order.
	shared := map[Namespace]bool{
		NamespaceCgroup: true,
		NamespaceUser:   true,
	}

	args := UnshareArgs(shared)
	want := "--unshare-pid --unshare-net --unshare-ipc --unshare-uts"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("UnshareArgs = %q, want %q", got, want)
	}
}

func TestKnownNamespace(t *testing.T) {
	for _, ns := range Namespaces {
		if !KnownNamespace(string(ns)) {
			t.Errorf("KnownNamespace(%q) = false, want true", ns)
		}
	}
	for _, name := range []string{"net", "mount", "time", "NETWORK", ""} {
		if KnownNamespace(name) {
			t.Errorf("KnownNamespace(%q) = true, want false", name)
		}
	}
}
