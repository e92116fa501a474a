// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package bwrap synthesizes bubblewrap (bwrap) command lines from resolved
// sandbox policies.
//
// The central type is [Builder], which turns a [Spec] into the ordered
// argument vector handed to the bwrap binary. Isolation is default-deny:
// every kernel namespace in the closed [Namespaces] enumeration is unshared
// unless the policy names it in its share list, so every relaxation is an
// explicit, auditable line in the policy file.
//
// Path expansion ([Environ.Expand]) and bind-spec parsing ([SplitBindSpec])
// are fail-soft: an unexpandable path is passed through unchanged and a
// malformed bind entry is dropped with a warning. Omission never widens
// access — a dropped share stays isolated and a dropped bind is simply not
// created — so recovery degrades isolation conservatively. Anything that
// would prevent establishing a policy at all (missing bwrap binary) is a
// hard error instead.
//
// The package never creates namespaces or mounts itself. It only describes
// the sandbox; the bwrap binary is the trusted collaborator that builds it.
package bwrap
