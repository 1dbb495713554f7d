package component

// Asset is a static resource contributed to the host application: a file
// path relative to a logical package location. Resolving the path against
// the filesystem is the job of an external resource loader.
type Asset struct {
	base
	pkg  string
	path string
}

// NewAsset creates an asset component. pkg names the logical package or
// location holding the resource; path is relative to it.
func NewAsset(name, pkg, path string, opts ...Option) *Asset {
	return &Asset{
		base: newBase(name, opts...),
		pkg:  pkg,
		path: path,
	}
}

// Package returns the logical package or location holding the resource.
func (a *Asset) Package() string {
	return a.pkg
}

// Path returns the resource's file path relative to its package.
func (a *Asset) Path() string {
	return a.path
}

// Category returns CategoryAsset.
func (a *Asset) Category() Category {
	return CategoryAsset
}

// Clone returns an independent copy of the asset component.
func (a *Asset) Clone() Component {
	clone := *a
	return &clone
}

// Equal reports structural equality with another component.
func (a *Asset) Equal(other Component) bool {
	o, ok := other.(*Asset)
	return ok && a.base.equal(&o.base) && a.pkg == o.pkg && a.path == o.path
}
