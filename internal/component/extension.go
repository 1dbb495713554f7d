package component

// Extension is an object (function, type instance) that enriches the host
// application's API. The host decides how contributed extensions are
// exposed; the core only checks their types against the field contract.
type Extension struct {
	base
	object any
}

// NewExtension creates an API extension component.
func NewExtension(name string, object any, opts ...Option) *Extension {
	return &Extension{
		base:   newBase(name, opts...),
		object: object,
	}
}

// Object returns the extension payload.
func (e *Extension) Object() any {
	return e.object
}

// Category returns CategoryExtension.
func (e *Extension) Category() Category {
	return CategoryExtension
}

// Clone returns an independent copy of the extension component.
func (e *Extension) Clone() Component {
	clone := *e
	return &clone
}

// Equal reports structural equality with another component.
func (e *Extension) Equal(other Component) bool {
	o, ok := other.(*Extension)
	return ok && e.base.equal(&o.base) && payloadEqual(e.object, o.object)
}
