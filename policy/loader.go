// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"log/slog"
	"os"
	"path/filepath"
)

// ConfigFileName is the project-level policy file searched for in the
// working directory and its parents.
const ConfigFileName = ".shwrap.yaml"

// ConfigPathEnv overrides discovery entirely when set.
const ConfigPathEnv = "SHWRAP_CONFIG"

// Environ is the snapshot of process state that config discovery depends
// on. Passing it explicitly keeps discovery a pure function of its inputs,
// so tests can exercise the full search order against temp directories.
type Environ struct {
	// WorkingDirectory is where the upward .shwrap.yaml walk starts.
	WorkingDirectory string

	// Home locates the user-level config under .config/shwrap.
	Home string

	// ConfigPath is the value of SHWRAP_CONFIG, if set.
	ConfigPath string
}

// CurrentEnviron captures the calling process's state for discovery.
func CurrentEnviron() Environ {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Environ{
		WorkingDirectory: cwd,
		Home:             home,
		ConfigPath:       os.Getenv(ConfigPathEnv),
	}
}

// Loader discovers and loads the policy document.
type Loader struct {
	environ Environ
	logger  *slog.Logger
}

// NewLoader creates a loader that searches relative to environ.
func NewLoader(environ Environ) *Loader {
	return &Loader{environ: environ}
}

// SetLogger enables verbose logging of the discovery walk.
func (l *Loader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// log is a helper that only logs if a logger is configured.
func (l *Loader) log(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

// Find returns the path of the policy file that would be used, or "" when
// nothing exists anywhere in the search hierarchy.
//
// Search order: the SHWRAP_CONFIG override, then .shwrap.yaml in the
// working directory and each parent up to the filesystem root, then the
// user-level default at $HOME/.config/shwrap/default.yaml.
func (l *Loader) Find() string {
	if l.environ.ConfigPath != "" {
		l.log("using explicit config path", "path", l.environ.ConfigPath)
		return l.environ.ConfigPath
	}

	dir := l.environ.WorkingDirectory
	for {
		path := filepath.Join(dir, ConfigFileName)
		l.log("checking for config", "path", path)
		if fileExists(path) {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if l.environ.Home != "" {
		path := filepath.Join(l.environ.Home, ".config", "shwrap", "default.yaml")
		l.log("checking for user config", "path", path)
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// Load discovers and parses the policy document. A [NotFoundError] means
// the search hierarchy contains no config at all; parse failures carry the
// offending file's path.
func (l *Loader) Load() (*Document, error) {
	path := l.Find()
	if path == "" {
		return nil, &NotFoundError{}
	}
	l.log("loading config", "path", path)
	return ParseFile(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// NotFoundError reports that no policy document exists anywhere in the
// search hierarchy.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "no " + ConfigFileName + " configuration found"
}
