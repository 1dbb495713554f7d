package discovery

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/plugin"
	"github.com/khimera-dev/khimera/internal/spec"
)

func newTestModel(t *testing.T) *plugin.Model {
	t.Helper()
	model := plugin.NewModel("host", "1.0")
	require.NoError(t, model.Add(spec.NewMetadataField("author", reflect.TypeOf(""), spec.Required())))
	require.NoError(t, model.Add(spec.NewCommandField("commands", spec.DefaultCommandPolicy())))
	require.NoError(t, model.Add(spec.NewHookField("on_start", spec.HookContract{AnyReturn: true})))
	require.NoError(t, model.Add(spec.NewAssetField("logo", []string{".png"})))
	require.NoError(t, model.Add(spec.NewExtensionField("api", nil, false)))
	return model
}

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const manifestYAML = `
name: my_plugin
version: "0.1.0"
metadata:
  - field: author
    name: author
    value: alice
commands:
  - field: commands
    name: export
    group: data
    symbol: "myplugin.cli:export"
hooks:
  - field: on_start
    name: boot
    symbol: "myplugin.hooks:boot"
    description: startup hook
assets:
  - field: logo
    name: logo
    package: myplugin.assets
    path: logo.png
extensions:
  - field: api
    name: helper
    symbol: "myplugin.api:helper"
`

func testSymbols() Symbols {
	return Symbols{
		"myplugin.cli:export": func() {},
		"myplugin.hooks:boot": HookSymbol{
			Func:      func() {},
			Signature: component.Signature{},
		},
		"myplugin.api:helper": "payload",
	}
}

func TestManifestFinderDiscover(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "my_plugin"), manifestYAML)

	model := newTestModel(t)
	finder := NewManifestFinder(model, []string{root}, testSymbols(), nil)
	require.NoError(t, finder.Discover(context.Background()))

	plugins := finder.Plugins()
	require.Len(t, plugins, 1)

	p := plugins[0]
	require.Equal(t, "my_plugin", p.Name())
	require.Equal(t, "0.1.0", p.Version())
	require.Same(t, model, p.Model())
	require.Equal(t, []string{"author", "commands", "on_start", "logo", "api"}, p.Keys())

	hooks := p.Get("on_start")
	require.Len(t, hooks, 1)
	require.Equal(t, "startup hook", hooks[0].Description())
	require.Equal(t, "my_plugin", hooks[0].Owner())

	// The discovered bundle validates against the model.
	require.True(t, plugin.NewValidator(p).Validate())
}

func TestManifestFinderSkipsBrokenManifests(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "good"), manifestYAML)
	writeManifest(t, filepath.Join(root, "bad"), "name: ''\n")

	finder := NewManifestFinder(newTestModel(t), []string{root}, testSymbols(), nil)
	err := finder.Discover(context.Background())
	require.Error(t, err)

	// The good bundle survives the bad one.
	require.Len(t, finder.Plugins(), 1)
	require.Equal(t, "my_plugin", finder.Plugins()[0].Name())
}

func TestManifestFinderUnresolvedSymbol(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, manifestYAML)

	finder := NewManifestFinder(newTestModel(t), []string{root}, Symbols{}, nil)
	err := finder.Discover(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not registered with the host")
	require.Empty(t, finder.Plugins())
}

func TestManifestFinderHookSymbolMustBeExport(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, manifestYAML)

	symbols := testSymbols()
	symbols["myplugin.hooks:boot"] = func() {}

	finder := NewManifestFinder(newTestModel(t), []string{root}, symbols, nil)
	err := finder.Discover(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not resolve to a hook export")
}

func TestManifestFinderCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, manifestYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finder := NewManifestFinder(newTestModel(t), []string{root}, testSymbols(), nil)
	require.Error(t, finder.Discover(ctx))
}

func TestStaticFinder(t *testing.T) {
	model := newTestModel(t)
	a := plugin.New(model, "a", "1")
	b := plugin.New(model, "b", "2")

	finder := NewStaticFinder(a, b)
	require.NoError(t, finder.Discover(context.Background()))
	require.Len(t, finder.Plugins(), 2)
}

func TestCollectionGetAndFilter(t *testing.T) {
	model := newTestModel(t)
	other := plugin.NewModel("other", "")

	var c Collection
	c.Store(plugin.New(model, "a", "1"))
	c.Store(plugin.New(model, "a", "2"))
	c.Store(plugin.New(other, "b", "1"))

	require.Len(t, c.Get("a", ""), 2)
	require.Len(t, c.Get("a", "2"), 1)
	require.Empty(t, c.Get("a", "3"))

	require.Len(t, c.Filter(model), 2)
	require.Len(t, c.Filter(nil), 3)
}

func TestRegisterContinuesPastFailures(t *testing.T) {
	model := newTestModel(t)

	valid := plugin.New(model, "valid", "")
	require.NoError(t, valid.Add("author", component.NewMetadata("author", "alice")))

	invalid := plugin.New(model, "invalid", "")

	reg := plugin.NewRegistry(nil, nil)
	errs := Register(reg, NewStaticFinder(invalid, valid), nil)

	require.Len(t, errs, 1)
	require.Equal(t, []string{"valid"}, reg.List())
}

func TestGitFinderBadRepository(t *testing.T) {
	finder := NewGitFinder(newTestModel(t), filepath.Join(t.TempDir(), "nope"), nil, nil)
	err := finder.Discover(context.Background())
	require.Error(t, err)
	require.Empty(t, finder.Plugins())
}
