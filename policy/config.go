// Copyright 2026 The Shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Document is a parsed policy file: wrapped commands plus the reusable
// templates they may extend. A Document is built once per invocation and
// treated as immutable afterward; resolution always copies.
type Document struct {
	Commands  map[string]*CommandPolicy
	Templates map[string]*TemplatePolicy

	// commandOrder preserves the order commands appear in the file.
	// Resolution never depends on it; listing output does.
	commandOrder []string
}

// CommandPolicy is the sandbox policy for one wrapped command.
type CommandPolicy struct {
	// Enabled defaults to true. A disabled command is a hard error at
	// execution time, distinct from a command with no entry at all.
	Enabled bool `yaml:"enabled"`

	// Extends names a template whose settings are merged in before the
	// command's own. Empty means no inheritance.
	Extends string `yaml:"extends,omitempty"`

	// Share names the kernel namespaces NOT isolated from the host.
	Share []string `yaml:"share,omitempty"`

	// Bind holds read-write bind mounts as "source:dest" specs.
	Bind []string `yaml:"bind,omitempty"`

	// ROBind holds paths mounted read-only at the same path.
	ROBind []string `yaml:"ro_bind,omitempty"`

	// DevBind holds device-node paths bound at the same path.
	DevBind []string `yaml:"dev_bind,omitempty"`

	// Tmpfs holds sandbox paths backed by fresh tmpfs mounts.
	Tmpfs []string `yaml:"tmpfs,omitempty"`

	// Env holds environment variables set inside the sandbox.
	Env map[string]string `yaml:"env,omitempty"`

	// UnsetEnv holds environment variable names removed inside the sandbox.
	UnsetEnv []string `yaml:"unset_env,omitempty"`
}

// TemplatePolicy is a reusable policy fragment. Templates carry only the
// fields commands commonly share; they have no enabled state and cannot
// extend other templates, so inheritance chains are one level deep by
// construction.
type TemplatePolicy struct {
	Share  []string `yaml:"share,omitempty"`
	Bind   []string `yaml:"bind,omitempty"`
	ROBind []string `yaml:"ro_bind,omitempty"`
}

// UnmarshalYAML applies the enabled-by-default rule before decoding.
func (c *CommandPolicy) UnmarshalYAML(node *yaml.Node) error {
	type plain CommandPolicy
	aux := plain{Enabled: true}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*c = CommandPolicy(aux)
	return nil
}

// Parse decodes a policy document from YAML.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Commands  yaml.Node                  `yaml:"commands"`
		Templates map[string]*TemplatePolicy `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing policy document: %w", err)
	}

	doc := &Document{
		Commands:  make(map[string]*CommandPolicy),
		Templates: raw.Templates,
	}
	if doc.Templates == nil {
		doc.Templates = make(map[string]*TemplatePolicy)
	}

	// Decode the commands mapping by hand so document order survives:
	// yaml.v3 map decoding would discard it.
	switch raw.Commands.Kind {
	case 0:
		// Section absent; nothing to do.
	case yaml.MappingNode:
		for i := 0; i+1 < len(raw.Commands.Content); i += 2 {
			keyNode := raw.Commands.Content[i]
			valueNode := raw.Commands.Content[i+1]

			var cmd CommandPolicy
			if err := valueNode.Decode(&cmd); err != nil {
				return nil, fmt.Errorf("command %q: %w", keyNode.Value, err)
			}
			doc.Commands[keyNode.Value] = &cmd
			doc.commandOrder = append(doc.commandOrder, keyNode.Value)
		}
	default:
		if raw.Commands.Tag == "!!null" {
			break
		}
		return nil, fmt.Errorf("parsing policy document: commands section must be a mapping")
	}

	return doc, nil
}

// ParseFile reads and parses the policy document at path. Parse failures
// carry the offending path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Command returns the policy for name. Absence is a hard error: there is
// no implicit default policy for unconfigured commands.
func (d *Document) Command(name string) (*CommandPolicy, error) {
	cmd, ok := d.Commands[name]
	if !ok {
		return nil, &NotConfiguredError{Command: name}
	}
	return cmd, nil
}

// EnabledCommand returns the policy for name, requiring it to be enabled.
// A disabled command is a [DisabledError] before any resolution or argument
// synthesis happens; the execution path must never build an argument vector
// for it.
func (d *Document) EnabledCommand(name string) (*CommandPolicy, error) {
	cmd, err := d.Command(name)
	if err != nil {
		return nil, err
	}
	if !cmd.Enabled {
		return nil, &DisabledError{Command: name}
	}
	return cmd, nil
}

// CommandNames returns command names in document order.
func (d *Document) CommandNames() []string {
	return slices.Clone(d.commandOrder)
}

// NotConfiguredError reports a command with no entry in the policy document.
type NotConfiguredError struct {
	Command string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("no configuration found for command %q", e.Command)
}

// DisabledError reports a command explicitly disabled in the document.
type DisabledError struct {
	Command string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("command %q is disabled in configuration", e.Command)
}
