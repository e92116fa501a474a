// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io/fs"
	"slices"
	"strings"
	"testing"

	"github.com/shwrap-project/shwrap/policy"
)

func TestEmbeddedTemplatesAreValid(t *testing.T) {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		t.Fatalf("reading embedded templates: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no templates embedded")
	}

	for _, entry := range entries {
		name := entry.Name()
		t.Run(strings.TrimSuffix(name, ".yaml"), func(t *testing.T) {
			data, err := templates.ReadFile("templates/" + name)
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}

			doc, err := policy.Parse(data)
			if err != nil {
				t.Fatalf("parsing %s: %v", name, err)
			}

			checker := policy.NewChecker()
			checker.CheckDocument(doc)
			if checker.HasErrors() {
				var out strings.Builder
				checker.PrintResults(&out)
				t.Errorf("%s fails validation:\n%s", name, out.String())
			}
		})
	}
}

func TestTemplateNames(t *testing.T) {
	names := templateNames()
	for _, want := range []string{"default", "nodejs", "python", "ruby", "go", "rust"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing template %q in %v", want, names)
		}
	}
}
