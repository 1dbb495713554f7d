package plugin

import (
	"fmt"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/container"
	"github.com/khimera-dev/khimera/internal/spec"
)

// Model is the schema plugins are validated against: a named, versioned
// collection of field specifications and dependency rules declared by the
// host application.
//
// Field and dependency specs live in separate maps but share one key space:
// adding a spec whose name collides with any existing entry fails. Both
// maps preserve declaration order.
type Model struct {
	name    string
	version string
	fields  *container.OrderedMap[string, spec.FieldSpec]
	deps    *container.OrderedMap[string, spec.DependencySpec]
}

// NewModel creates an empty plugin model. version may be empty.
func NewModel(name, version string) *Model {
	return &Model{
		name:    name,
		version: version,
		fields:  container.NewOrderedMap[string, spec.FieldSpec](),
		deps:    container.NewOrderedMap[string, spec.DependencySpec](),
	}
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Version returns the model's version, possibly empty.
func (m *Model) Version() string { return m.version }

// Add declares a spec in the model, routed by kind into the field or
// dependency map. The spec name must be unique across both maps.
func (m *Model) Add(s spec.Spec) error {
	switch v := s.(type) {
	case spec.FieldSpec:
		if m.fields.Has(v.Name()) || m.deps.Has(v.Name()) {
			return ErrSpecConflict{Name: v.Name()}
		}
		m.fields.Set(v.Name(), v)
	case spec.DependencySpec:
		if m.fields.Has(v.Name()) || m.deps.Has(v.Name()) {
			return ErrSpecConflict{Name: v.Name()}
		}
		m.deps.Set(v.Name(), v)
	default:
		return ErrUnsupportedSpec{Spec: fmt.Sprintf("%T", s)}
	}
	return nil
}

// Remove deletes a spec by name from whichever map holds it.
func (m *Model) Remove(name string) error {
	if m.fields.Delete(name) {
		return nil
	}
	if m.deps.Delete(name) {
		return nil
	}
	return ErrSpecNotFound{Name: name}
}

// Get returns the spec declared under the name, searching fields first,
// then dependencies. Nil when absent.
func (m *Model) Get(name string) spec.Spec {
	if field, ok := m.fields.Get(name); ok {
		return field
	}
	if dep, ok := m.deps.Get(name); ok {
		return dep
	}
	return nil
}

// Field returns the field spec declared under the name.
func (m *Model) Field(name string) (spec.FieldSpec, bool) {
	return m.fields.Get(name)
}

// FieldNames returns the declared field keys in declaration order.
func (m *Model) FieldNames() []string {
	return m.fields.Keys()
}

// Fields returns the field specs in declaration order.
func (m *Model) Fields() []spec.FieldSpec {
	return m.fields.Values()
}

// Dependency returns the dependency spec declared under the name.
func (m *Model) Dependency(name string) (spec.DependencySpec, bool) {
	return m.deps.Get(name)
}

// DependencyNames returns the declared dependency keys in declaration order.
func (m *Model) DependencyNames() []string {
	return m.deps.Keys()
}

// Dependencies returns the dependency specs in declaration order.
func (m *Model) Dependencies() []spec.DependencySpec {
	return m.deps.Values()
}

// Specs returns every spec in the model: fields in declaration order
// followed by dependencies in declaration order.
func (m *Model) Specs() []spec.Spec {
	specs := make([]spec.Spec, 0, m.fields.Len()+m.deps.Len())
	for _, field := range m.fields.Values() {
		specs = append(specs, field)
	}
	for _, dep := range m.deps.Values() {
		specs = append(specs, dep)
	}
	return specs
}

// filterCriteria collects the optional criteria applied by Filter. A nil
// criterion is unconstrained.
type filterCriteria struct {
	category *component.Category
	unique   *bool
	required *bool
	custom   func(spec.FieldSpec) bool
}

// FilterOption narrows the field specs returned by Filter.
type FilterOption func(*filterCriteria)

// FilterCategory retains fields bound to the given category. Matching
// compares the category tag by equality.
func FilterCategory(category component.Category) FilterOption {
	return func(c *filterCriteria) {
		c.category = &category
	}
}

// FilterUnique retains fields whose uniqueness flag equals the argument.
func FilterUnique(unique bool) FilterOption {
	return func(c *filterCriteria) {
		c.unique = &unique
	}
}

// FilterRequired retains fields whose required flag equals the argument.
func FilterRequired(required bool) FilterOption {
	return func(c *filterCriteria) {
		c.required = &required
	}
}

// FilterFunc retains fields satisfying a custom predicate.
func FilterFunc(fn func(spec.FieldSpec) bool) FilterOption {
	return func(c *filterCriteria) {
		c.custom = fn
	}
}

// Filter returns the field specs matching every supplied criterion, in
// declaration order. Dependency specs are never returned: they do not share
// the filtering properties of fields.
func (m *Model) Filter(opts ...FilterOption) []spec.FieldSpec {
	var criteria filterCriteria
	for _, opt := range opts {
		opt(&criteria)
	}

	var out []spec.FieldSpec
	for _, field := range m.fields.Values() {
		if criteria.category != nil && field.Category() != *criteria.category {
			continue
		}
		if criteria.unique != nil && field.Unique() != *criteria.unique {
			continue
		}
		if criteria.required != nil && field.Required() != *criteria.required {
			continue
		}
		if criteria.custom != nil && !criteria.custom(field) {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Clone returns an independent copy of the model. Specs are immutable after
// declaration, so the copies share the spec values.
func (m *Model) Clone() *Model {
	return &Model{
		name:    m.name,
		version: m.version,
		fields:  m.fields.Clone(),
		deps:    m.deps.Clone(),
	}
}
