package spec

import (
	"reflect"

	"github.com/khimera-dev/khimera/internal/component"
)

// Spec is implemented by every entry a plugin model can hold: field
// specifications constraining a single component slot, and dependency
// specifications constraining relationships across the whole bundle.
type Spec interface {
	// Name is the spec's key, unique within the model.
	Name() string

	// Description is an optional human-readable summary.
	Description() string
}

// FieldSpec declares one named slot in a plugin model. Each field is bound
// to a single component category at declaration time; the binding never
// changes. Validate is pure and never panics for well-typed input: a
// component of the wrong category simply fails.
type FieldSpec interface {
	Spec

	// Category returns the component category bound to this field.
	Category() component.Category

	// Required reports whether at least one component must be present.
	Required() bool

	// Unique reports whether at most one component is expected.
	Unique() bool

	// Validate checks one candidate component against the field's rules.
	Validate(c component.Component) bool
}

// fieldBase carries the attributes shared by every field specification.
type fieldBase struct {
	name        string
	description string
	required    bool
	unique      bool
}

func (f *fieldBase) Name() string        { return f.name }
func (f *fieldBase) Description() string { return f.description }
func (f *fieldBase) Required() bool      { return f.required }
func (f *fieldBase) Unique() bool        { return f.unique }

// FieldOption customises a field specification at construction time.
type FieldOption func(*fieldBase)

// Required marks the field as mandatory: validation flags the plugin when
// no component is contributed under it.
func Required() FieldOption {
	return func(f *fieldBase) {
		f.required = true
	}
}

// Unique constrains the field to at most one component.
func Unique() FieldOption {
	return func(f *fieldBase) {
		f.unique = true
	}
}

// Repeatable allows multiple components under the field.
func Repeatable() FieldOption {
	return func(f *fieldBase) {
		f.unique = false
	}
}

// WithDescription sets the field's description.
func WithDescription(description string) FieldOption {
	return func(f *fieldBase) {
		f.description = description
	}
}

// newFieldBase builds the shared attributes. unique carries the kind's
// default and may be flipped by Unique/Repeatable options.
func newFieldBase(name string, unique bool, opts ...FieldOption) fieldBase {
	f := fieldBase{name: name, unique: unique}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// instanceOf reports whether the value is an instance of the given type: an
// exact match, an assignable type, or an implementation when the expected
// type is an interface. A nil expected type accepts anything.
func instanceOf(value any, expected reflect.Type) bool {
	if expected == nil {
		return true
	}
	actual := reflect.TypeOf(value)
	if actual == nil {
		return false
	}
	if expected.Kind() == reflect.Interface {
		return actual.Implements(expected)
	}
	return actual == expected || actual.AssignableTo(expected)
}
