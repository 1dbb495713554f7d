package plugin

import (
	"fmt"
	"strings"
)

// ErrSpecConflict is returned when a spec name is already declared in the
// model, in either the field map or the dependency map.
type ErrSpecConflict struct {
	Name string
}

func (e ErrSpecConflict) Error() string {
	return fmt.Sprintf("spec '%s' already declared in the plugin model\nHint: spec names are unique across fields and dependencies", e.Name)
}

// ErrSpecNotFound is returned when removing a spec absent from the model.
type ErrSpecNotFound struct {
	Name string
}

func (e ErrSpecNotFound) Error() string {
	return fmt.Sprintf("spec '%s' not found in the plugin model", e.Name)
}

// ErrUnsupportedSpec is returned when adding something that is neither a
// field specification nor a dependency specification.
type ErrUnsupportedSpec struct {
	Spec string
}

func (e ErrUnsupportedSpec) Error() string {
	return fmt.Sprintf("unsupported spec type %s\nHint: a model accepts spec.FieldSpec and spec.DependencySpec entries", e.Spec)
}

// ErrDuplicateComponent is returned when adding a component whose name is
// already taken under the same field of the bundle.
type ErrDuplicateComponent struct {
	Field     string
	Component string
}

func (e ErrDuplicateComponent) Error() string {
	return fmt.Sprintf("duplicate component '%s' for field '%s'", e.Component, e.Field)
}

// ErrFieldNotFound is returned when removing from a field key the bundle
// does not hold.
type ErrFieldNotFound struct {
	Field string
}

func (e ErrFieldNotFound) Error() string {
	return fmt.Sprintf("no field '%s' in the plugin's components", e.Field)
}

// ErrComponentNotFound is returned when removing a named component absent
// from its field.
type ErrComponentNotFound struct {
	Field     string
	Component string
}

func (e ErrComponentNotFound) Error() string {
	return fmt.Sprintf("no component '%s' for field '%s'", e.Component, e.Field)
}

// ErrInvalidPlugin is returned when a plugin fails validation at
// registration time. Findings carries the validator's diagnostics.
type ErrInvalidPlugin struct {
	Name     string
	Findings []string
}

func (e ErrInvalidPlugin) Error() string {
	if len(e.Findings) == 0 {
		return fmt.Sprintf("invalid plugin '%s'", e.Name)
	}
	return fmt.Sprintf(
		"invalid plugin '%s':\n  %s\nHint: run the validator and inspect its findings for details",
		e.Name,
		strings.Join(e.Findings, "\n  "),
	)
}

// ErrPluginConflict is returned when a plugin name is already registered
// and the conflict policy forbids replacement.
type ErrPluginConflict struct {
	Name string
}

func (e ErrPluginConflict) Error() string {
	return fmt.Sprintf("plugin '%s' already registered\nHint: choose a conflict policy (override, ignore) to register duplicates without failing", e.Name)
}

// ErrPluginNotRegistered is returned when enabling a plugin the registry
// does not know.
type ErrPluginNotRegistered struct {
	Name string
}

func (e ErrPluginNotRegistered) Error() string {
	return fmt.Sprintf("plugin '%s' is not registered\nHint: register the plugin before enabling it", e.Name)
}
