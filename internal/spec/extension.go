package spec

import (
	"reflect"

	"github.com/khimera-dev/khimera/internal/component"
)

// ExtensionField declares a slot collecting API extensions, optionally
// restricted to a set of admitted types. Extension fields are repeatable by
// default since a field typically collects every extension of one kind.
type ExtensionField struct {
	fieldBase
	validTypes       []reflect.Type
	checkInheritance bool
}

// NewExtensionField declares an extension field. validTypes lists the
// admitted payload types; an empty list accepts any. With checkInheritance,
// a payload satisfying one of the types structurally (assignable to it, or
// implementing it when it is an interface) is admitted; otherwise the
// payload type must match exactly.
func NewExtensionField(name string, validTypes []reflect.Type, checkInheritance bool, opts ...FieldOption) *ExtensionField {
	field := &ExtensionField{
		fieldBase:        newFieldBase(name, false, opts...),
		validTypes:       make([]reflect.Type, len(validTypes)),
		checkInheritance: checkInheritance,
	}
	copy(field.validTypes, validTypes)
	return field
}

// ValidTypes returns the admitted payload types.
func (f *ExtensionField) ValidTypes() []reflect.Type {
	out := make([]reflect.Type, len(f.validTypes))
	copy(out, f.validTypes)
	return out
}

// Category returns CategoryExtension.
func (f *ExtensionField) Category() component.Category {
	return component.CategoryExtension
}

// Validate checks that the extension payload is of an admitted type.
func (f *ExtensionField) Validate(c component.Component) bool {
	ext, ok := c.(*component.Extension)
	if !ok {
		return false
	}
	if len(f.validTypes) == 0 {
		return true
	}
	actual := reflect.TypeOf(ext.Object())
	for _, valid := range f.validTypes {
		if f.checkInheritance {
			if instanceOf(ext.Object(), valid) {
				return true
			}
			continue
		}
		if actual == valid {
			return true
		}
	}
	return false
}
