package plugin

import (
	"fmt"

	"github.com/khimera-dev/khimera/internal/logger"
)

// ConflictMode selects the policy a ConflictResolver applies when a plugin
// name is already registered.
type ConflictMode string

const (
	// ConflictRaise fails the registration.
	ConflictRaise ConflictMode = "raise_error"
	// ConflictOverride replaces the stored plugin with the new one and
	// emits a warning.
	ConflictOverride ConflictMode = "override"
	// ConflictIgnore keeps the stored plugin, discards the new one and
	// emits a warning.
	ConflictIgnore ConflictMode = "ignore"
)

// ConflictResolver decides what happens when a plugin name collides with an
// already-registered plugin. A conflict is never resolved silently: either
// registration fails or a warning is emitted.
type ConflictResolver struct {
	mode   ConflictMode
	logger *logger.Logger
}

// NewConflictResolver creates a resolver applying the given policy.
func NewConflictResolver(mode ConflictMode, log *logger.Logger) *ConflictResolver {
	return &ConflictResolver{mode: mode, logger: log}
}

// Mode returns the resolver's policy.
func (r *ConflictResolver) Mode() ConflictMode {
	return r.mode
}

// Resolve applies the policy to the incoming plugin. It returns the plugin
// to register (the incoming one on override), nil when the registration is
// declined, or an error when the policy forbids duplicates.
func (r *ConflictResolver) Resolve(incoming *Plugin) (*Plugin, error) {
	switch r.mode {
	case ConflictRaise:
		return nil, ErrPluginConflict{Name: incoming.Name()}
	case ConflictOverride:
		r.logger.Warn(fmt.Sprintf("overriding plugin '%s': name already registered", incoming.Name()))
		return incoming, nil
	case ConflictIgnore:
		r.logger.Warn(fmt.Sprintf("ignoring plugin '%s': name already registered", incoming.Name()))
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown conflict mode '%s'", r.mode)
	}
}
