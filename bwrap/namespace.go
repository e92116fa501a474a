// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

// Namespace identifies one of the kernel namespace kinds bubblewrap can
// unshare.
type Namespace string

// The closed set of namespace kinds. Policy files refer to these by name;
// anything else is a configuration error.
const (
	NamespaceUser    Namespace = "user"
	NamespacePID     Namespace = "pid"
	NamespaceNetwork Namespace = "network"
	NamespaceIPC     Namespace = "ipc"
	NamespaceUTS     Namespace = "uts"
	NamespaceCgroup  Namespace = "cgroup"
)

// Namespaces lists every namespace kind in the fixed order used for
// argument emission. Emission order never depends on configuration order,
// so generated command lines are stable and diff-friendly across runs.
var Namespaces = []Namespace{
	NamespaceUser,
	NamespacePID,
	NamespaceNetwork,
	NamespaceIPC,
	NamespaceUTS,
	NamespaceCgroup,
}

// unshareFlags maps each namespace to its bwrap flag. Note that bwrap
// abbreviates "network" to "net" in the flag name.
var unshareFlags = map[Namespace]string{
	NamespaceUser:    "--unshare-user",
	NamespacePID:     "--unshare-pid",
	NamespaceNetwork: "--unshare-net",
	NamespaceIPC:     "--unshare-ipc",
	NamespaceUTS:     "--unshare-uts",
	NamespaceCgroup:  "--unshare-cgroup",
}

// KnownNamespace reports whether name is a member of the closed namespace
// set.
func KnownNamespace(name string) bool {
	_, ok := unshareFlags[Namespace(name)]
	return ok
}

// UnshareArgs returns one --unshare-* flag for every namespace NOT present
// in shared, in [Namespaces] order. Isolation is default-deny: the policy
// author opts in to each shared namespace individually.
func UnshareArgs(shared map[Namespace]bool) []string {
	args := make([]string, 0, len(Namespaces))
	for _, ns := range Namespaces {
		if shared[ns] {
			continue
		}
		args = append(args, unshareFlags[ns])
	}
	return args
}
