package spec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khimera-dev/khimera/internal/component"
)

// fakeBundle is a minimal Instance for dependency tests.
type fakeBundle map[string][]component.Component

func (f fakeBundle) Has(field string) bool {
	_, ok := f[field]
	return ok
}

func (f fakeBundle) Get(field string) []component.Component {
	return f[field]
}

func TestPredicateDependencySatisfied(t *testing.T) {
	dep := NewPredicateDependency("hook_needs_config",
		func(fields map[string][]component.Component) bool {
			return len(fields["on_start"]) > 0 && len(fields["config_file"]) > 0
		},
		"on_start", "config_file",
	).Describe("startup hooks need a config file")

	bundle := fakeBundle{
		"on_start":    {component.NewHook("boot", func() {}, component.Signature{})},
		"config_file": {component.NewAsset("config", "pkg", "config.yaml")},
	}

	require.True(t, dep.Validate(bundle))
	require.Equal(t, "startup hooks need a config file", dep.Description())
	require.Equal(t, []string{"on_start", "config_file"}, dep.Fields())
}

func TestPredicateDependencyFailsClosedOnAbsentField(t *testing.T) {
	invoked := false
	dep := NewPredicateDependency("hook_needs_config",
		func(fields map[string][]component.Component) bool {
			invoked = true
			return true
		},
		"on_start", "config_file",
	)

	bundle := fakeBundle{
		"on_start": {component.NewHook("boot", func() {}, component.Signature{})},
	}

	require.False(t, dep.Validate(bundle))
	require.False(t, invoked)
}

func TestPredicateDependencyFailingPredicate(t *testing.T) {
	dep := NewPredicateDependency("never",
		func(fields map[string][]component.Component) bool { return false },
		"on_start",
	)

	bundle := fakeBundle{
		"on_start": {component.NewHook("boot", func() {}, component.Signature{})},
	}

	require.False(t, dep.Validate(bundle))
}

func TestPredicateDependencyReceivesAllComponents(t *testing.T) {
	var seen int
	dep := NewPredicateDependency("count",
		func(fields map[string][]component.Component) bool {
			seen = len(fields["commands"])
			return true
		},
		"commands",
	)

	bundle := fakeBundle{
		"commands": {
			component.NewCommand("a", func() {}, ""),
			component.NewCommand("b", func() {}, ""),
		},
	}

	require.True(t, dep.Validate(bundle))
	require.Equal(t, 2, seen)
}
