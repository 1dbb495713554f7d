package plugin

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/spec"
)

func validTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	p := New(newTestModel(t), "my_plugin", "0.1.0")
	require.NoError(t, p.Add("author", component.NewMetadata("author", "alice")))
	return p
}

func TestValidatorAcceptsValidPlugin(t *testing.T) {
	v := NewValidator(validTestPlugin(t))

	require.True(t, v.Validate())
	require.True(t, v.Valid())
	require.Empty(t, v.Summary())
}

func TestValidatorCheckRequired(t *testing.T) {
	p := New(newTestModel(t), "p", "")
	v := NewValidator(p)

	require.False(t, v.Validate())
	require.Equal(t, []string{"author"}, v.Missing)
}

func TestValidatorCheckUnique(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("author", component.NewMetadata("author2", "bob")))

	v := NewValidator(p)
	require.False(t, v.Validate())
	require.Equal(t, []string{"author"}, v.NotUnique)
}

func TestValidatorCheckUnknown(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("surprise", component.NewMetadata("x", 1)))

	v := NewValidator(p)
	require.False(t, v.Validate())
	require.Equal(t, []string{"surprise"}, v.Unknown)
}

func TestValidatorCheckRules(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("logo", component.NewAsset("logo", "assets", "logo.jpg")))

	v := NewValidator(p)
	require.False(t, v.Validate())
	require.Len(t, v.Invalid["logo"], 1)
	require.Equal(t, "logo", v.Invalid["logo"][0].Name())
}

func TestValidatorCheckRulesFlagsOnlyFailures(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("commands", component.NewCommand("a", func() {}, "data")))
	require.NoError(t, p.Add("commands", component.NewCommand("b", func() {}, "")))

	model := p.Model()
	require.NoError(t, model.Remove("commands"))
	require.NoError(t, model.Add(spec.NewCommandField("commands", spec.CommandPolicy{
		Groups:         []string{"data"},
		AdmitsTopLevel: false,
	})))

	v := NewValidator(p)
	require.False(t, v.Validate())
	require.Len(t, v.Invalid["commands"], 1)
	require.Equal(t, "b", v.Invalid["commands"][0].Name())
}

func TestValidatorCheckDependencies(t *testing.T) {
	model := newTestModel(t)
	dep := spec.NewPredicateDependency("needs_logo",
		func(fields map[string][]component.Component) bool { return true },
		"on_start", "logo",
	)
	require.NoError(t, model.Add(dep))

	p := New(model, "p", "")
	require.NoError(t, p.Add("author", component.NewMetadata("author", "alice")))
	require.NoError(t, p.Add("on_start", component.NewHook("boot", func() {}, component.Signature{})))

	// "logo" is absent so the rule fails closed.
	v := NewValidator(p)
	require.False(t, v.Validate())
	require.Equal(t, []string{"needs_logo"}, v.DepsUnsatisfied)
}

func TestValidatorIsIdempotent(t *testing.T) {
	p := New(newTestModel(t), "p", "")
	v := NewValidator(p)

	require.False(t, v.Validate())
	require.False(t, v.Validate())
	require.Equal(t, []string{"author"}, v.Missing)
}

func TestValidatorSummaryLines(t *testing.T) {
	p := New(newTestModel(t), "p", "")
	require.NoError(t, p.Add("surprise", component.NewMetadata("x", 1)))
	require.NoError(t, p.Add("logo", component.NewAsset("logo", "assets", "logo.jpg")))

	v := NewValidator(p)
	require.False(t, v.Validate())

	summary := v.Summary()
	require.Len(t, summary, 3)
	require.Contains(t, summary[0], "missing required field 'author'")
	require.Contains(t, summary[1], "unknown field 'surprise'")
	require.Contains(t, summary[2], "field 'logo' rejects component(s): logo")
}

func TestExtractDropsFlaggedKeys(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("surprise", component.NewMetadata("x", 1)))
	require.NoError(t, p.Add("logo", component.NewAsset("logo", "assets", "logo.jpg")))
	require.NoError(t, p.Add("commands", component.NewCommand("export", func() {}, "data")))

	v := NewValidator(p)
	require.False(t, v.Validate())

	corrected := v.Extract()
	require.False(t, corrected.Has("surprise"))
	require.False(t, corrected.Has("logo"))
	require.True(t, corrected.Has("author"))
	require.True(t, corrected.Has("commands"))

	// The source bundle is untouched.
	require.True(t, p.Has("surprise"))
	require.True(t, p.Has("logo"))
}

func TestExtractTruncatesNotUnique(t *testing.T) {
	p := validTestPlugin(t)
	require.NoError(t, p.Add("author", component.NewMetadata("author2", "bob")))

	v := NewValidator(p)
	require.False(t, v.Validate())

	corrected := v.Extract()
	require.Equal(t, []string{"author"}, corrected.Names("author"))
}

func TestValidatorTotalityOverRandomBundles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	keys := []string{"author", "homepage", "commands", "on_start", "logo", "stray_a", "stray_b"}

	for i := 0; i < 200; i++ {
		p := New(newTestModel(t), "p", "")
		for _, key := range keys {
			for n := rng.Intn(3); n > 0; n-- {
				var c component.Component
				switch rng.Intn(3) {
				case 0:
					c = component.NewMetadata(fmt.Sprintf("md%d", n), "x")
				case 1:
					c = component.NewCommand(fmt.Sprintf("cmd%d", n), func() {}, "data")
				default:
					c = component.NewAsset(fmt.Sprintf("as%d", n), "pkg", "f.png")
				}
				require.NoError(t, p.Add(key, c))
			}
		}

		v := NewValidator(p)
		valid := v.Validate()
		empty := len(v.Missing) == 0 &&
			len(v.Unknown) == 0 &&
			len(v.NotUnique) == 0 &&
			len(v.Invalid) == 0 &&
			len(v.DepsUnsatisfied) == 0
		require.Equal(t, empty, valid)
	}
}

func TestExtractCannotSynthesizeRequired(t *testing.T) {
	model := NewModel("host", "")
	require.NoError(t, model.Add(spec.NewMetadataField("author", reflect.TypeOf(""), spec.Required())))

	p := New(model, "p", "")
	v := NewValidator(p)
	require.False(t, v.Validate())

	corrected := v.Extract()
	second := NewValidator(corrected)
	require.False(t, second.Validate())
	require.Equal(t, []string{"author"}, second.Missing)
}
