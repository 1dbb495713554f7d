package component

// Metadata is a named value describing the plugin itself rather than an
// active contribution: author, homepage, configuration parameters and the
// like. Name and version are not metadata; they are top-level plugin
// attributes used to identify the plugin.
type Metadata struct {
	base
	value any
}

// NewMetadata creates a metadata component carrying an arbitrary value.
func NewMetadata(name string, value any, opts ...Option) *Metadata {
	return &Metadata{
		base:  newBase(name, opts...),
		value: value,
	}
}

// Value returns the metadata value.
func (m *Metadata) Value() any {
	return m.value
}

// Category returns CategoryMetadata.
func (m *Metadata) Category() Category {
	return CategoryMetadata
}

// Clone returns an independent copy of the metadata component.
func (m *Metadata) Clone() Component {
	clone := *m
	return &clone
}

// Equal reports structural equality with another component.
func (m *Metadata) Equal(other Component) bool {
	o, ok := other.(*Metadata)
	return ok && m.base.equal(&o.base) && payloadEqual(m.value, o.value)
}
