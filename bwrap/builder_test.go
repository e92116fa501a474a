// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package bwrap

import (
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/shlex"
)

func testEnviron() Environ {
	return Environ{
		Home: "/home/alice",
		Vars: map[string]string{"XDG_CACHE_HOME": "/home/alice/.cache"},
	}
}

func TestBuildEmissionOrder(t *testing.T) {
	builder := NewBuilder(Spec{
		Share:    []string{"user", "network"},
		Bind:     []string{"/src:/dest"},
		ROBind:   []string{"/usr"},
		DevBind:  []string{"/dev/null"},
		Tmpfs:    []string{"/tmp"},
		Env:      map[string]string{"NODE_ENV": "production", "DEBUG": "1"},
		UnsetEnv: []string{"SSH_AUTH_SOCK"},
	}, testEnviron())

	got := builder.Build()
	want := []string{
		"--unshare-pid", "--unshare-ipc", "--unshare-uts", "--unshare-cgroup",
		"--bind", "/src", "/dest",
		"--ro-bind", "/usr", "/usr",
		"--dev-bind", "/dev/null", "/dev/null",
		"--tmpfs", "/tmp",
		"--setenv", "DEBUG", "1",
		"--setenv", "NODE_ENV", "production",
		"--unsetenv", "SSH_AUTH_SOCK",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildSharedUserReadOnlyUsr(t *testing.T) {
	builder := NewBuilder(Spec{
		Share:  []string{"user"},
		ROBind: []string{"/usr"},
	}, testEnviron())

	got := strings.Join(builder.Build(), " ")
	want := "--unshare-pid --unshare-net --unshare-ipc --unshare-uts --unshare-cgroup --ro-bind /usr /usr"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuildMalformedBindOmitted(t *testing.T) {
	builder := NewBuilder(Spec{
		Bind: []string{"no-colon-here", "/ok:/ok"},
	}, testEnviron())
	builder.SetLogger(slog.New(slog.DiscardHandler))

	args := builder.Build()

	bindCount := 0
	for _, arg := range args {
		if arg == "--bind" {
			bindCount++
		}
	}
	if bindCount != 1 {
		t.Errorf("expected exactly one --bind for the valid entry, got %d in %v", bindCount, args)
	}
	for _, arg := range args {
		if arg == "no-colon-here" {
			t.Errorf("malformed entry leaked into args: %v", args)
		}
	}
}

func TestBuildUnknownNamespaceDropped(t *testing.T) {
	// A share entry outside the closed namespace set is dropped: the
	// namespace stays isolated, so the mistake never widens access.
	builder := NewBuilder(Spec{
		Share: []string{"mount", "network"},
	}, testEnviron())

	got := strings.Join(builder.Build(), " ")
	want := "--unshare-user --unshare-pid --unshare-ipc --unshare-uts --unshare-cgroup"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuildExpandsBindPaths(t *testing.T) {
	builder := NewBuilder(Spec{
		Bind:   []string{"~/.npm:~/.npm"},
		ROBind: []string{"${XDG_CACHE_HOME}/pip"},
	}, testEnviron())

	got := strings.Join(builder.Build(), " ")
	if !strings.Contains(got, "--bind /home/alice/.npm /home/alice/.npm") {
		t.Errorf("missing expanded bind in %q", got)
	}
	if !strings.Contains(got, "--ro-bind /home/alice/.cache/pip /home/alice/.cache/pip") {
		t.Errorf("missing expanded ro-bind in %q", got)
	}
	if strings.Contains(got, "~") || strings.Contains(got, "$") {
		t.Errorf("unexpanded syntax leaked into %q", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	spec := Spec{
		Share:  []string{"user"},
		Bind:   []string{"/a:/b", "/c:/d"},
		ROBind: []string{"/usr", "/lib"},
		Env: map[string]string{
			"B": "2", "A": "1", "C": "3", "D": "4",
		},
	}

	first := NewBuilder(spec, testEnviron()).Build()
	for i := 0; i < 10; i++ {
		again := NewBuilder(spec, testEnviron()).Build()
		if !slices.Equal(first, again) {
			t.Fatalf("run %d produced different vector:\n%v\n%v", i, first, again)
		}
	}
}

func TestShow(t *testing.T) {
	builder := NewBuilder(Spec{
		Share:  []string{"user", "pid", "network", "ipc", "uts", "cgroup"},
		ROBind: []string{"/usr"},
	}, testEnviron())

	line := builder.Show("git", []string{"commit", "-m", "fix the thing"})

	if !strings.HasPrefix(line, "bwrap ") {
		t.Errorf("Show line should start with bwrap: %q", line)
	}
	if !strings.Contains(line, "'fix the thing'") {
		t.Errorf("argument with spaces should be quoted: %q", line)
	}

	// The rendered line must parse back into the exact argument vector.
	words, err := shlex.Split(line)
	if err != nil {
		t.Fatalf("shlex.Split failed: %v", err)
	}
	want := []string{"bwrap", "--ro-bind", "/usr", "/usr", "git", "commit", "-m", "fix the thing"}
	if !slices.Equal(words, want) {
		t.Errorf("shlex.Split(Show) = %v, want %v", words, want)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/usr/bin", "/usr/bin"},
		{"--unshare-net", "--unshare-net"},
		{"KEY=value", "KEY=value"},
		{"", "''"},
		{"two words", "'two words'"},
		{"it's", `'it'\''s'`},
		{"a;b", "'a;b'"},
		{"$HOME", "'$HOME'"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
