package discovery

import (
	"context"

	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
)

// Finder is a plugin discovery strategy. A finder collects as many plugin
// bundles as possible before anything is selected, validated or registered,
// so bundles sharing a name but differing in version can coexist in the
// collection.
type Finder interface {
	// Discover collects plugin bundles according to the strategy.
	Discover(ctx context.Context) error

	// Plugins returns the bundles collected so far.
	Plugins() []*plugin.Plugin
}

// Collection is the storage shared by finder implementations.
type Collection struct {
	plugins []*plugin.Plugin
}

// Store appends a discovered bundle to the collection.
func (c *Collection) Store(p *plugin.Plugin) {
	c.plugins = append(c.plugins, p)
}

// Plugins returns the collected bundles in discovery order.
func (c *Collection) Plugins() []*plugin.Plugin {
	out := make([]*plugin.Plugin, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// Get returns the collected bundles matching the name, and the version when
// one is given.
func (c *Collection) Get(name, version string) []*plugin.Plugin {
	var out []*plugin.Plugin
	for _, p := range c.plugins {
		if p.Name() == name && (version == "" || p.Version() == version) {
			out = append(out, p)
		}
	}
	return out
}

// Filter returns the collected bundles built against the given model. A nil
// model matches everything.
func (c *Collection) Filter(model *plugin.Model) []*plugin.Plugin {
	if model == nil {
		return c.Plugins()
	}
	var out []*plugin.Plugin
	for _, p := range c.plugins {
		if p.Model() == model {
			out = append(out, p)
		}
	}
	return out
}

// StaticFinder serves an explicit list of already-constructed bundles.
type StaticFinder struct {
	Collection
}

// NewStaticFinder creates a finder over the given bundles.
func NewStaticFinder(plugins ...*plugin.Plugin) *StaticFinder {
	f := &StaticFinder{}
	for _, p := range plugins {
		f.Store(p)
	}
	return f
}

// Discover is a no-op: the bundles were supplied at construction.
func (f *StaticFinder) Discover(ctx context.Context) error {
	return nil
}

// Register registers every collected bundle of the finder, continuing past
// failures so one bad plugin does not block the rest. It returns the
// per-plugin registration errors.
func Register(reg *plugin.Registry, f Finder, log *logger.Logger) []error {
	var errs []error
	for _, p := range f.Plugins() {
		if err := reg.Register(p); err != nil {
			log.Error(err, "plugin registration failed")
			errs = append(errs, err)
		}
	}
	return errs
}
