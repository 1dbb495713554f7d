package spec

import "github.com/khimera-dev/khimera/internal/component"

// CommandPolicy constrains where contributed commands may be installed in
// the host application's CLI. Commands are not part of the host's execution
// flow, so the constraints concern CLI structure rather than the commands
// themselves.
type CommandPolicy struct {
	// Groups lists the predefined sub-command groups commands may join.
	Groups []string
	// AdmitsNewGroups allows commands to create groups not listed above.
	AdmitsNewGroups bool
	// AdmitsTopLevel allows commands with no group at the top level.
	AdmitsTopLevel bool
}

// DefaultCommandPolicy admits top-level commands and new groups.
func DefaultCommandPolicy() CommandPolicy {
	return CommandPolicy{AdmitsNewGroups: true, AdmitsTopLevel: true}
}

// CommandField declares a slot collecting CLI commands. Command fields are
// repeatable by default since a field typically collects every command for
// one group.
type CommandField struct {
	fieldBase
	groups          map[string]struct{}
	admitsNewGroups bool
	admitsTopLevel  bool
}

// NewCommandField declares a command field governed by the given policy.
func NewCommandField(name string, policy CommandPolicy, opts ...FieldOption) *CommandField {
	groups := make(map[string]struct{}, len(policy.Groups))
	for _, g := range policy.Groups {
		groups[g] = struct{}{}
	}
	return &CommandField{
		fieldBase:       newFieldBase(name, false, opts...),
		groups:          groups,
		admitsNewGroups: policy.AdmitsNewGroups,
		admitsTopLevel:  policy.AdmitsTopLevel,
	}
}

// Category returns CategoryCommand.
func (f *CommandField) Category() component.Category {
	return component.CategoryCommand
}

// Validate checks that the command's group placement is admitted.
func (f *CommandField) Validate(c component.Component) bool {
	cmd, ok := c.(*component.Command)
	if !ok {
		return false
	}
	if cmd.Group() == "" {
		return f.admitsTopLevel
	}
	if _, known := f.groups[cmd.Group()]; known {
		return true
	}
	return f.admitsNewGroups
}
