package spec

import (
	"reflect"

	"github.com/khimera-dev/khimera/internal/component"
)

// MetadataField declares a metadata entry expected by the host application.
// The contributed value must be an instance of the declared type.
//
// Metadata fields are unique by default since each entry usually admits a
// single value; pass Repeatable to collect several.
type MetadataField struct {
	fieldBase
	validType reflect.Type
}

// NewMetadataField declares a metadata field whose value must be an
// instance of validType. A nil validType accepts any value.
func NewMetadataField(name string, validType reflect.Type, opts ...FieldOption) *MetadataField {
	return &MetadataField{
		fieldBase: newFieldBase(name, true, opts...),
		validType: validType,
	}
}

// ValidType returns the expected type of the metadata value.
func (f *MetadataField) ValidType() reflect.Type {
	return f.validType
}

// Category returns CategoryMetadata.
func (f *MetadataField) Category() component.Category {
	return component.CategoryMetadata
}

// Validate checks that the component is a metadata value of the expected type.
func (f *MetadataField) Validate(c component.Component) bool {
	md, ok := c.(*component.Metadata)
	if !ok {
		return false
	}
	return instanceOf(md.Value(), f.validType)
}
