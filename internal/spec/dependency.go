package spec

import "github.com/khimera-dev/khimera/internal/component"

// Instance is the view of a plugin bundle a dependency rule inspects.
// It is satisfied by plugin.Plugin.
type Instance interface {
	// Has reports whether the bundle holds the field key.
	Has(field string) bool

	// Get returns the components stored under the field key.
	Get(field string) []component.Component
}

// DependencySpec declares a relational rule over an entire plugin bundle,
// inspecting an arbitrary set of field names. Unlike field specifications,
// dependency specs are never filled by components; they are pure rules.
type DependencySpec interface {
	Spec

	// Fields returns the field names the rule inspects.
	Fields() []string

	// Validate checks the rule against a whole plugin bundle.
	Validate(plugin Instance) bool
}

// Predicate receives the full component collection of every referenced
// field, keyed by field name. The predicate must handle fields holding
// multiple components.
type Predicate func(fields map[string][]component.Component) bool

// PredicateDependency is the default dependency specification: a
// user-supplied predicate over the referenced fields.
//
// Validation fails closed: when any referenced field is entirely absent
// from the bundle the rule fails without invoking the predicate.
type PredicateDependency struct {
	name        string
	description string
	fields      []string
	predicate   Predicate
}

// NewPredicateDependency declares a dependency rule validated by predicate
// over the given field names.
func NewPredicateDependency(name string, predicate Predicate, fields ...string) *PredicateDependency {
	d := &PredicateDependency{
		name:      name,
		fields:    make([]string, len(fields)),
		predicate: predicate,
	}
	copy(d.fields, fields)
	return d
}

// Describe sets the rule's description and returns the rule for chaining.
func (d *PredicateDependency) Describe(description string) *PredicateDependency {
	d.description = description
	return d
}

// Name returns the rule's key in the model.
func (d *PredicateDependency) Name() string { return d.name }

// Description returns the rule's description.
func (d *PredicateDependency) Description() string { return d.description }

// Fields returns the field names the rule inspects.
func (d *PredicateDependency) Fields() []string {
	out := make([]string, len(d.fields))
	copy(out, d.fields)
	return out
}

// Validate gathers the referenced fields and applies the predicate. Any
// referenced field missing from the bundle fails the rule immediately.
func (d *PredicateDependency) Validate(plugin Instance) bool {
	fields := make(map[string][]component.Component, len(d.fields))
	for _, name := range d.fields {
		if !plugin.Has(name) {
			return false
		}
		fields[name] = plugin.Get(name)
	}
	return d.predicate(fields)
}
