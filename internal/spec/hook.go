package spec

import (
	"reflect"

	"github.com/khimera-dev/khimera/internal/component"
)

// HookContract is the signature a contributed hook must declare. Matching
// is exact and order-sensitive: parameter count, names, order and types must
// all agree, so swapping two equally-typed parameters with different names
// fails.
type HookContract struct {
	// Params lists the expected positional parameters in order. A nil
	// parameter type accepts any declared type.
	Params []component.Param
	// VarArgs permits the hook to accept arbitrary extra positional
	// arguments. A hook declaring them without permission is rejected.
	VarArgs bool
	// VarKeywords permits arbitrary extra keyword arguments.
	VarKeywords bool
	// Returns is the accepted return type set: empty means the hook must
	// declare no return value, one entry means an exact match, several
	// entries form a union.
	Returns []reflect.Type
	// AnyReturn accepts any return declaration, including none.
	AnyReturn bool
}

// HookField declares a named integration point filled by plugin hooks.
// Hook fields are unique by default: one callable per integration point.
type HookField struct {
	fieldBase
	contract HookContract
}

// NewHookField declares a hook field with the given signature contract.
func NewHookField(name string, contract HookContract, opts ...FieldOption) *HookField {
	return &HookField{
		fieldBase: newFieldBase(name, true, opts...),
		contract:  contract,
	}
}

// Contract returns the field's signature contract.
func (f *HookField) Contract() HookContract {
	return f.contract
}

// Category returns CategoryHook.
func (f *HookField) Category() component.Category {
	return component.CategoryHook
}

// Validate checks that the hook's declared signature matches the contract.
func (f *HookField) Validate(c component.Component) bool {
	hook, ok := c.(*component.Hook)
	if !ok {
		return false
	}
	sig := hook.Signature()
	return f.checkParams(sig) && f.checkVariadics(sig) && f.checkReturn(sig)
}

func (f *HookField) checkParams(sig component.Signature) bool {
	if len(sig.Params) != len(f.contract.Params) {
		return false
	}
	for i, expected := range f.contract.Params {
		actual := sig.Params[i]
		if actual.Name != expected.Name {
			return false
		}
		if expected.Type == nil {
			continue
		}
		if actual.Type == nil {
			return false
		}
		if actual.Type != expected.Type && !actual.Type.AssignableTo(expected.Type) {
			return false
		}
	}
	return true
}

func (f *HookField) checkVariadics(sig component.Signature) bool {
	if sig.VarArgs && !f.contract.VarArgs {
		return false
	}
	if sig.VarKeywords && !f.contract.VarKeywords {
		return false
	}
	return true
}

func (f *HookField) checkReturn(sig component.Signature) bool {
	if f.contract.AnyReturn {
		return true
	}
	if len(f.contract.Returns) == 0 {
		return sig.Return == nil
	}
	if len(f.contract.Returns) == 1 {
		return sig.Return == f.contract.Returns[0]
	}
	for _, accepted := range f.contract.Returns {
		if sig.Return == accepted {
			return true
		}
		if sig.Return != nil && accepted != nil && sig.Return.AssignableTo(accepted) {
			return true
		}
	}
	return false
}
