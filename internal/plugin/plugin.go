package plugin

import (
	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/container"
)

// Plugin is a named, versioned bundle of components keyed by field name.
//
// Construction is deliberately decoupled from validation: Add never checks
// the bundle against its model, so partially-built or exploratory bundles
// remain possible and a single invalid component does not abort
// construction of the rest. The only constraint enforced at Add time is
// that component names are unique within one field. Everything else is the
// Validator's job.
type Plugin struct {
	name       string
	version    string
	model      *Model
	components *container.OrderedMap[string, []component.Component]
}

// New creates an empty plugin bundle intended to satisfy the given model.
// The model reference is not enforced here.
func New(model *Model, name, version string) *Plugin {
	return &Plugin{
		name:       name,
		version:    version,
		model:      model,
		components: container.NewOrderedMap[string, []component.Component](),
	}
}

// Name returns the plugin's name.
func (p *Plugin) Name() string { return p.name }

// Version returns the plugin's version, possibly empty.
func (p *Plugin) Version() string { return p.version }

// Model returns the model the plugin is intended to satisfy.
func (p *Plugin) Model() *Model { return p.model }

// Add appends a component under the field key, creating the field's
// collection on first use, and stamps the component's owner with the
// plugin's name. Two components under the same key must not share a name.
func (p *Plugin) Add(key string, c component.Component) error {
	set, _ := p.components.Get(key)
	for _, existing := range set {
		if existing.Name() == c.Name() {
			return ErrDuplicateComponent{Field: key, Component: c.Name()}
		}
	}
	p.components.Set(key, append(set, c))
	c.Attach(p.name)
	return nil
}

// Remove deletes the entire field entry.
func (p *Plugin) Remove(key string) error {
	if !p.components.Delete(key) {
		return ErrFieldNotFound{Field: key}
	}
	return nil
}

// RemoveComponent deletes one named component from the field, keeping the
// rest of the field in place. Removing the last component leaves an empty
// field entry behind.
func (p *Plugin) RemoveComponent(key, name string) error {
	set, ok := p.components.Get(key)
	if !ok {
		return ErrFieldNotFound{Field: key}
	}
	for i, c := range set {
		if c.Name() == name {
			p.components.Set(key, append(set[:i:i], set[i+1:]...))
			return nil
		}
	}
	return ErrComponentNotFound{Field: key, Component: name}
}

// Get returns the components stored under the field key, in the order they
// were added, or an empty collection when the key is absent. The returned
// slice must not be mutated by the caller.
func (p *Plugin) Get(key string) []component.Component {
	set, _ := p.components.Get(key)
	return set
}

// Names returns the names of the components stored under the field key.
func (p *Plugin) Names(key string) []string {
	set, _ := p.components.Get(key)
	names := make([]string, 0, len(set))
	for _, c := range set {
		names = append(names, c.Name())
	}
	return names
}

// Has reports whether the bundle holds the field key.
func (p *Plugin) Has(key string) bool {
	return p.components.Has(key)
}

// Keys returns the bundle's field keys in insertion order.
func (p *Plugin) Keys() []string {
	return p.components.Keys()
}

// Components returns the full field-to-components mapping. The component
// slices are shared with the bundle and must not be mutated.
func (p *Plugin) Components() map[string][]component.Component {
	out := make(map[string][]component.Component, p.components.Len())
	for _, key := range p.components.Keys() {
		set, _ := p.components.Get(key)
		out[key] = set
	}
	return out
}

// Filter returns the fields holding at least one component of the given
// category.
func (p *Plugin) Filter(category component.Category) map[string][]component.Component {
	out := make(map[string][]component.Component)
	for _, key := range p.components.Keys() {
		set, _ := p.components.Get(key)
		for _, c := range set {
			if c.Category() == category {
				out[key] = set
				break
			}
		}
	}
	return out
}

// Clone returns an independent deep copy of the bundle: field collections
// and components are copied recursively. The model reference is shared.
func (p *Plugin) Clone() *Plugin {
	clone := New(p.model, p.name, p.version)
	for _, key := range p.components.Keys() {
		set, _ := p.components.Get(key)
		copied := make([]component.Component, 0, len(set))
		for _, c := range set {
			copied = append(copied, c.Clone())
		}
		clone.components.Set(key, copied)
	}
	return clone
}

// Equal reports structural equality with another bundle: same name, version
// and model, same field keys, and pairwise-equal components in order.
func (p *Plugin) Equal(other *Plugin) bool {
	if other == nil {
		return false
	}
	if p.name != other.name || p.version != other.version || p.model != other.model {
		return false
	}
	if p.components.Len() != other.components.Len() {
		return false
	}
	for _, key := range p.components.Keys() {
		mine, _ := p.components.Get(key)
		theirs, ok := other.components.Get(key)
		if !ok || len(mine) != len(theirs) {
			return false
		}
		for i, c := range mine {
			if !c.Equal(theirs[i]) {
				return false
			}
		}
	}
	return true
}
