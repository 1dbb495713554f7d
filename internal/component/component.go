package component

import "reflect"

// Category identifies the kind of payload a component carries. The set of
// categories is closed: every field specification is bound to exactly one of
// these tags and validation dispatches on it.
type Category string

const (
	CategoryMetadata  Category = "metadata"
	CategoryCommand   Category = "command"
	CategoryHook      Category = "hook"
	CategoryExtension Category = "extension"
	CategoryAsset     Category = "asset"
)

// String returns the category tag.
func (c Category) String() string {
	return string(c)
}

// Component is a named unit of functionality or data contributed by a plugin.
//
// A component is created by the plugin author and attached to exactly one
// plugin bundle. The owner back-reference is stamped when the component is
// added to the bundle and never changes afterwards, even if the component is
// later removed.
type Component interface {
	// Name is the component's identifier, unique within its field in one
	// plugin bundle.
	Name() string

	// Description is an optional human-readable summary.
	Description() string

	// Category reports which kind of payload the component carries.
	Category() Category

	// Owner returns the name of the plugin the component is attached to,
	// or an empty string before attachment.
	Owner() string

	// Attach stamps the owning plugin's name. The stamp is write-once:
	// once set it is never overwritten or cleared.
	Attach(plugin string)

	// Clone returns an independent deep copy of the component. Reference
	// payloads (callables, pointer values) are shared between the copies.
	Clone() Component

	// Equal reports structural equality with another component, ignoring
	// identity. Callable payloads compare by function pointer.
	Equal(other Component) bool
}

// base carries the attributes shared by every component kind.
type base struct {
	name        string
	description string
	owner       string
}

func (b *base) Name() string        { return b.name }
func (b *base) Description() string { return b.description }
func (b *base) Owner() string       { return b.owner }

func (b *base) Attach(plugin string) {
	if b.owner != "" {
		return
	}
	b.owner = plugin
}

func (b *base) equal(other *base) bool {
	return b.name == other.name &&
		b.description == other.description &&
		b.owner == other.owner
}

// Option customises optional component attributes at construction time.
type Option func(*base)

// WithDescription sets the component's description.
func WithDescription(description string) Option {
	return func(b *base) {
		b.description = description
	}
}

func newBase(name string, opts ...Option) base {
	b := base{name: name}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// payloadEqual compares two payload values structurally. Callables have no
// structural content in Go, so they compare by function pointer.
func payloadEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Kind() == reflect.Func || vb.Kind() == reflect.Func {
		return va.Kind() == vb.Kind() && va.Pointer() == vb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}
