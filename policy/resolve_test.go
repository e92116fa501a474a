// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"reflect"
	"slices"
	"testing"
)

func mustParse(t *testing.T, yaml string) *Document {
	t.Helper()
	doc, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestResolveWithoutExtends(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [network]

commands:
  node:
    bind: ["~/.npm:~/.npm"]
`)

	cmd := doc.Commands["node"]
	effective := doc.Resolve(cmd)

	// No extends: the command's own fields, untouched.
	if len(effective.Share) != 0 {
		t.Errorf("share = %v, want empty", effective.Share)
	}
	if !slices.Equal(effective.Bind, cmd.Bind) {
		t.Errorf("bind = %v, want %v", effective.Bind, cmd.Bind)
	}
}

func TestResolveTemplateFirst(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [user]
    bind: ["/cache:/cache"]
    ro_bind: [/usr]

commands:
  node:
    extends: base
    share: [network]
    bind: ["~/.npm:~/.npm"]
    ro_bind: [/lib]
`)

	effective := doc.Resolve(doc.Commands["node"])

	if !slices.Equal(effective.Share, []string{"user", "network"}) {
		t.Errorf("share = %v, want [user network]", effective.Share)
	}
	if !slices.Equal(effective.Bind, []string{"/cache:/cache", "~/.npm:~/.npm"}) {
		t.Errorf("bind = %v, want template first", effective.Bind)
	}
	if !slices.Equal(effective.ROBind, []string{"/usr", "/lib"}) {
		t.Errorf("ro_bind = %v, want [/usr /lib]", effective.ROBind)
	}
	if effective.Extends != "" {
		t.Errorf("extends should be resolved away, got %q", effective.Extends)
	}
}

func TestResolveShareUnion(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [user, network]

commands:
  app:
    extends: base
    share: [network, ipc]
`)

	effective := doc.Resolve(doc.Commands["app"])
	if !slices.Equal(effective.Share, []string{"user", "network", "ipc"}) {
		t.Errorf("share = %v, want deduplicated union [user network ipc]", effective.Share)
	}
}

func TestResolveMissingTemplateFailOpen(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [network]

commands:
  node:
    extends: ghost
    bind: ["~/.npm:~/.npm"]
`)

	effective := doc.Resolve(doc.Commands["node"])

	// Inheritance silently degrades to none.
	if len(effective.Share) != 0 {
		t.Errorf("share = %v, want empty", effective.Share)
	}
	if !slices.Equal(effective.Bind, []string{"~/.npm:~/.npm"}) {
		t.Errorf("bind = %v, want command's own", effective.Bind)
	}
}

func TestResolveScalarFromCommandOnly(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [user]

commands:
  off:
    extends: base
    enabled: false
`)

	effective := doc.Resolve(doc.Commands["off"])
	if effective.Enabled {
		t.Error("enabled must come solely from the command")
	}
}

func TestResolveIdempotentAndPure(t *testing.T) {
	doc := mustParse(t, `
templates:
  base:
    share: [user]
    ro_bind: [/usr]

commands:
  node:
    extends: base
    ro_bind: [/lib]
    env:
      NODE_ENV: production
`)

	cmd := doc.Commands["node"]
	before := *cmd.clone()

	first := doc.Resolve(cmd)
	second := doc.Resolve(cmd)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution not idempotent:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(*cmd.clone(), before) {
		t.Error("resolution mutated the document's command policy")
	}

	// Mutating the result must not leak back into the document.
	first.ROBind[0] = "/tainted"
	first.Env["NODE_ENV"] = "tainted"
	if doc.Templates["base"].ROBind[0] != "/usr" {
		t.Error("resolution aliased template state")
	}
	if cmd.Env["NODE_ENV"] != "production" {
		t.Error("resolution aliased command state")
	}
}
