package spec

import (
	"strings"

	"github.com/khimera-dev/khimera/internal/component"
)

// AssetField declares a static resource expected by the host application,
// optionally restricted to a set of file extensions. Asset fields are
// unique by default: one resource per name.
type AssetField struct {
	fieldBase
	extensions []string
}

// NewAssetField declares an asset field. extensions lists the admitted file
// suffixes (".png", ".csv"); an empty list accepts any.
func NewAssetField(name string, extensions []string, opts ...FieldOption) *AssetField {
	field := &AssetField{
		fieldBase:  newFieldBase(name, true, opts...),
		extensions: make([]string, len(extensions)),
	}
	copy(field.extensions, extensions)
	return field
}

// Extensions returns the admitted file suffixes.
func (f *AssetField) Extensions() []string {
	out := make([]string, len(f.extensions))
	copy(out, f.extensions)
	return out
}

// Category returns CategoryAsset.
func (f *AssetField) Category() component.Category {
	return component.CategoryAsset
}

// Validate checks that the asset's file path carries an admitted extension.
func (f *AssetField) Validate(c component.Component) bool {
	asset, ok := c.(*component.Asset)
	if !ok {
		return false
	}
	if len(f.extensions) == 0 {
		return true
	}
	for _, ext := range f.extensions {
		if strings.HasSuffix(asset.Path(), ext) {
			return true
		}
	}
	return false
}
