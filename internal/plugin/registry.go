package plugin

import (
	"fmt"
	"sort"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/logger"
)

// RegistryConfig configures registration behavior.
type RegistryConfig struct {
	// ConflictMode selects the policy applied on plugin name collisions.
	ConflictMode ConflictMode
	// EnableByDefault enables plugins as they are registered.
	EnableByDefault bool
	// NewValidator builds the validator run against each plugin at
	// registration time. Nil means NewValidator.
	NewValidator func(*Plugin) *Validator
}

// DefaultRegistryConfig fails on name conflicts and enables plugins as they
// register.
func DefaultRegistryConfig() *RegistryConfig {
	return &RegistryConfig{
		ConflictMode:    ConflictRaise,
		EnableByDefault: true,
	}
}

// Registry aggregates validated plugin bundles and pools their components
// for keyed retrieval. At most one plugin per name is stored. Registered
// plugins are never removed; enable/disable only gates which plugins'
// components are visible through Get.
//
// The registry performs no synchronization: it is expected to be populated
// from a single goroutine at startup. Callers needing concurrent mutation
// must serialize it themselves.
type Registry struct {
	resolver     *ConflictResolver
	newValidator func(*Plugin) *Validator
	enableByDflt bool
	logger       *logger.Logger

	plugins    map[string]*Plugin
	enabled    map[string]struct{}
	components map[string][]component.Component
}

// NewRegistry returns a registry configured by cfg. A nil cfg means
// DefaultRegistryConfig.
func NewRegistry(cfg *RegistryConfig, log *logger.Logger) *Registry {
	if cfg == nil {
		cfg = DefaultRegistryConfig()
	}
	newValidator := cfg.NewValidator
	if newValidator == nil {
		newValidator = NewValidator
	}
	return &Registry{
		resolver:     NewConflictResolver(cfg.ConflictMode, log),
		newValidator: newValidator,
		enableByDflt: cfg.EnableByDefault,
		logger:       log,
		plugins:      make(map[string]*Plugin),
		enabled:      make(map[string]struct{}),
		components:   make(map[string][]component.Component),
	}
}

// Register validates the plugin against its own model and, when valid,
// stores it, unpacks its components into the shared pool and enables it if
// the registry is configured to. An invalid plugin fails with
// ErrInvalidPlugin and leaves the registry untouched. A name collision is
// routed through the conflict resolver: a declined registration returns nil
// after the resolver's warning.
func (r *Registry) Register(p *Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin is nil")
	}

	v := r.newValidator(p)
	if !v.Validate() {
		return ErrInvalidPlugin{Name: p.Name(), Findings: v.Summary()}
	}

	if _, exists := r.plugins[p.Name()]; exists {
		resolved, err := r.resolver.Resolve(p)
		if err != nil {
			return err
		}
		if resolved == nil {
			return nil
		}
		// The replaced plugin's pooled components would shadow the new
		// ones under the same owner name.
		r.evict(p.Name())
	}

	r.plugins[p.Name()] = p
	r.unpack(p)
	if r.enableByDflt {
		r.enabled[p.Name()] = struct{}{}
	}
	r.logger.Debug(fmt.Sprintf("registered plugin '%s'", p.Name()))
	return nil
}

// unpack merges the plugin's components into the shared pool, field key by
// field key. The merge is keyed by field, not by component name: duplicate
// component names across different plugins under the same key are retained.
func (r *Registry) unpack(p *Plugin) {
	for _, key := range p.Keys() {
		r.components[key] = append(r.components[key], p.Get(key)...)
	}
}

// evict drops every pooled component owned by the named plugin.
func (r *Registry) evict(name string) {
	for key, pool := range r.components {
		kept := pool[:0]
		for _, c := range pool {
			if c.Owner() != name {
				kept = append(kept, c)
			}
		}
		r.components[key] = kept
	}
}

// Enable makes the named plugin's components visible through Get. Enabling
// an already-enabled plugin is a no-op; enabling an unregistered one fails.
func (r *Registry) Enable(name string) error {
	if _, exists := r.plugins[name]; !exists {
		return ErrPluginNotRegistered{Name: name}
	}
	r.enabled[name] = struct{}{}
	return nil
}

// Disable hides the named plugin's components from Get. The plugin and its
// pooled components stay in the registry; disabling an unknown or
// already-disabled name is a no-op.
func (r *Registry) Disable(name string) {
	delete(r.enabled, name)
}

// IsEnabled reports whether the named plugin is currently enabled.
func (r *Registry) IsEnabled(name string) bool {
	_, ok := r.enabled[name]
	return ok
}

// queryCriteria collects the optional filters applied by Get.
type queryCriteria struct {
	name            string
	includeDisabled bool
}

// QueryOption narrows the components returned by Get.
type QueryOption func(*queryCriteria)

// Named retains only components with the given name.
func Named(name string) QueryOption {
	return func(q *queryCriteria) {
		q.name = name
	}
}

// IncludeDisabled also returns components owned by disabled plugins.
func IncludeDisabled() QueryOption {
	return func(q *queryCriteria) {
		q.includeDisabled = true
	}
}

// Get returns the pooled components under the field key, restricted by
// default to components whose owning plugin is enabled. An absent key
// yields an empty list.
func (r *Registry) Get(key string, opts ...QueryOption) []component.Component {
	var criteria queryCriteria
	for _, opt := range opts {
		opt(&criteria)
	}

	out := make([]component.Component, 0, len(r.components[key]))
	for _, c := range r.components[key] {
		if criteria.name != "" && c.Name() != criteria.name {
			continue
		}
		if !criteria.includeDisabled {
			if _, enabled := r.enabled[c.Owner()]; !enabled {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Plugin returns the registered plugin stored under the name.
func (r *Registry) Plugin(name string) (*Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// List returns the registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enabled returns the enabled plugin names in sorted order.
func (r *Registry) Enabled() []string {
	names := make([]string, 0, len(r.enabled))
	for name := range r.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
