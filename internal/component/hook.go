package component

import "reflect"

// Param describes one positional parameter in a hook signature.
type Param struct {
	Name string
	Type reflect.Type
}

// Signature is the structural description of a hook callable, supplied
// explicitly by the plugin author. Parameter names are not recoverable
// through reflection, so the descriptor is part of the hook declaration
// rather than derived from the callable.
type Signature struct {
	// Params lists the positional parameters in order.
	Params []Param
	// VarArgs reports whether the callable accepts arbitrary extra
	// positional arguments.
	VarArgs bool
	// VarKeywords reports whether the callable accepts arbitrary extra
	// keyword arguments.
	VarKeywords bool
	// Return is the declared return type, or nil when the callable
	// declares none.
	Return reflect.Type
}

// Clone returns an independent copy of the signature.
func (s Signature) Clone() Signature {
	clone := s
	clone.Params = make([]Param, len(s.Params))
	copy(clone.Params, s.Params)
	return clone
}

// Equal reports whether two signatures are structurally identical.
func (s Signature) Equal(other Signature) bool {
	if len(s.Params) != len(other.Params) ||
		s.VarArgs != other.VarArgs ||
		s.VarKeywords != other.VarKeywords ||
		s.Return != other.Return {
		return false
	}
	for i, p := range s.Params {
		if p != other.Params[i] {
			return false
		}
	}
	return true
}

// Hook is a callable executed by the host application at a named
// integration point. The declared signature must match the contract of the
// field the hook is contributed to.
type Hook struct {
	base
	fn  any
	sig Signature
}

// NewHook creates a hook component wrapping a callable and its declared
// signature.
func NewHook(name string, fn any, sig Signature, opts ...Option) *Hook {
	return &Hook{
		base: newBase(name, opts...),
		fn:   fn,
		sig:  sig,
	}
}

// Func returns the hook callable. The core never invokes it.
func (h *Hook) Func() any {
	return h.fn
}

// Signature returns the hook's declared structural signature.
func (h *Hook) Signature() Signature {
	return h.sig
}

// Category returns CategoryHook.
func (h *Hook) Category() Category {
	return CategoryHook
}

// Clone returns an independent copy of the hook component.
func (h *Hook) Clone() Component {
	clone := *h
	clone.sig = h.sig.Clone()
	return &clone
}

// Equal reports structural equality with another component.
func (h *Hook) Equal(other Component) bool {
	o, ok := other.(*Hook)
	return ok && h.base.equal(&o.base) && h.sig.Equal(o.sig) && payloadEqual(h.fn, o.fn)
}
