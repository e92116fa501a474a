// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy loads and resolves declarative sandbox-isolation policy
// documents.
//
// A [Document] maps wrapped command names to a [CommandPolicy] and template
// names to a reusable [TemplatePolicy]. Commands inherit from a single
// template via their extends field; [Document.Resolve] produces the
// effective policy with template contributions first in every sequence
// field. Resolution is idempotent and never mutates the document, and a
// dangling extends reference degrades to no inheritance rather than
// failing — the strict counterpart lives in [Checker], which reports every
// problem the resolution engine recovers from.
//
// [Loader] discovers the policy file: a .shwrap.yaml in the working
// directory or any parent, then the user-level config under
// ~/.config/shwrap/default.yaml, with SHWRAP_CONFIG overriding both.
// Discovery reads only an explicit [Environ] snapshot, so the search order
// is testable without touching process state.
package policy
