package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
)

// ManifestName is the file name a plugin package uses to declare its bundle.
const ManifestName = "plugin.yaml"

// Symbols resolves entry-point references from manifests to live objects
// registered by the host: command callables, hook exports, API extension
// payloads. Keys follow the "package.module:object" convention.
type Symbols map[string]any

// HookSymbol is the value a hook entry point must resolve to: the callable
// together with its declared structural signature.
type HookSymbol struct {
	Func      any
	Signature component.Signature
}

// Manifest is the YAML document a plugin package ships to declare its
// bundle. Callables are referenced by entry-point symbol and resolved
// against the host's symbol table.
type Manifest struct {
	Name    string `yaml:"name" validate:"required,min=1"`
	Version string `yaml:"version,omitempty"`
	Model   string `yaml:"model,omitempty"`

	Metadata   []MetadataEntry  `yaml:"metadata,omitempty" validate:"omitempty,dive"`
	Commands   []CommandEntry   `yaml:"commands,omitempty" validate:"omitempty,dive"`
	Hooks      []HookEntry      `yaml:"hooks,omitempty" validate:"omitempty,dive"`
	Assets     []AssetEntry     `yaml:"assets,omitempty" validate:"omitempty,dive"`
	Extensions []ExtensionEntry `yaml:"extensions,omitempty" validate:"omitempty,dive"`
}

// MetadataEntry contributes a metadata value to a model field.
type MetadataEntry struct {
	Field       string `yaml:"field" validate:"required,min=1"`
	Name        string `yaml:"name" validate:"required,min=1"`
	Value       any    `yaml:"value"`
	Description string `yaml:"description,omitempty"`
}

// CommandEntry contributes a CLI command resolved from an entry-point symbol.
type CommandEntry struct {
	Field       string `yaml:"field" validate:"required,min=1"`
	Name        string `yaml:"name" validate:"required,min=1"`
	Group       string `yaml:"group,omitempty"`
	Symbol      string `yaml:"symbol" validate:"required,min=1"`
	Description string `yaml:"description,omitempty"`
}

// HookEntry contributes a hook; the symbol must resolve to a HookSymbol.
type HookEntry struct {
	Field       string `yaml:"field" validate:"required,min=1"`
	Name        string `yaml:"name" validate:"required,min=1"`
	Symbol      string `yaml:"symbol" validate:"required,min=1"`
	Description string `yaml:"description,omitempty"`
}

// AssetEntry contributes a static resource.
type AssetEntry struct {
	Field       string `yaml:"field" validate:"required,min=1"`
	Name        string `yaml:"name" validate:"required,min=1"`
	Package     string `yaml:"package,omitempty"`
	Path        string `yaml:"path" validate:"required,min=1"`
	Description string `yaml:"description,omitempty"`
}

// ExtensionEntry contributes an API extension resolved from an entry-point
// symbol.
type ExtensionEntry struct {
	Field       string `yaml:"field" validate:"required,min=1"`
	Name        string `yaml:"name" validate:"required,min=1"`
	Symbol      string `yaml:"symbol" validate:"required,min=1"`
	Description string `yaml:"description,omitempty"`
}

// ManifestFinder discovers plugin bundles from manifest files found under a
// set of root directories. Bundles failing to build are skipped and their
// errors collected; discovery of the rest continues.
type ManifestFinder struct {
	Collection
	model   *plugin.Model
	roots   []string
	symbols Symbols
	logger  *logger.Logger
}

// NewManifestFinder creates a finder scanning the given roots for manifests
// and building bundles against the model, resolving entry-point references
// through symbols.
func NewManifestFinder(model *plugin.Model, roots []string, symbols Symbols, log *logger.Logger) *ManifestFinder {
	return &ManifestFinder{
		model:   model,
		roots:   roots,
		symbols: symbols,
		logger:  log,
	}
}

// Discover walks the roots, parses every manifest found and stores the
// resulting bundles. The returned error joins the per-manifest failures;
// successfully built bundles are kept regardless.
func (f *ManifestFinder) Discover(ctx context.Context) error {
	var errs []error
	for _, root := range f.roots {
		walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if entry.IsDir() || entry.Name() != ManifestName {
				return nil
			}
			p, buildErr := f.load(path)
			if buildErr != nil {
				f.logger.Error(buildErr, "skipping plugin manifest")
				errs = append(errs, fmt.Errorf("%s: %w", path, buildErr))
				return nil
			}
			f.Store(p)
			f.logger.Debug(fmt.Sprintf("discovered plugin '%s' from %s", p.Name(), path))
			return nil
		})
		if walkErr != nil {
			errs = append(errs, walkErr)
		}
	}
	return errors.Join(errs...)
}

func (f *ManifestFinder) load(path string) (*plugin.Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := validatorInstance().Struct(&manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return f.build(manifest)
}

// build constructs an unvalidated bundle from the manifest. Validation
// against the model stays the registry's job.
func (f *ManifestFinder) build(manifest Manifest) (*plugin.Plugin, error) {
	p := plugin.New(f.model, manifest.Name, manifest.Version)

	for _, entry := range manifest.Metadata {
		md := component.NewMetadata(entry.Name, entry.Value, describe(entry.Description)...)
		if err := p.Add(entry.Field, md); err != nil {
			return nil, err
		}
	}
	for _, entry := range manifest.Commands {
		callable, err := f.resolve(entry.Symbol)
		if err != nil {
			return nil, err
		}
		cmd := component.NewCommand(entry.Name, callable, entry.Group, describe(entry.Description)...)
		if err := p.Add(entry.Field, cmd); err != nil {
			return nil, err
		}
	}
	for _, entry := range manifest.Hooks {
		value, err := f.resolve(entry.Symbol)
		if err != nil {
			return nil, err
		}
		export, ok := value.(HookSymbol)
		if !ok {
			return nil, fmt.Errorf("symbol '%s' does not resolve to a hook export", entry.Symbol)
		}
		hook := component.NewHook(entry.Name, export.Func, export.Signature, describe(entry.Description)...)
		if err := p.Add(entry.Field, hook); err != nil {
			return nil, err
		}
	}
	for _, entry := range manifest.Assets {
		asset := component.NewAsset(entry.Name, entry.Package, entry.Path, describe(entry.Description)...)
		if err := p.Add(entry.Field, asset); err != nil {
			return nil, err
		}
	}
	for _, entry := range manifest.Extensions {
		object, err := f.resolve(entry.Symbol)
		if err != nil {
			return nil, err
		}
		ext := component.NewExtension(entry.Name, object, describe(entry.Description)...)
		if err := p.Add(entry.Field, ext); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (f *ManifestFinder) resolve(symbol string) (any, error) {
	value, ok := f.symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol '%s' is not registered with the host", symbol)
	}
	return value, nil
}

func describe(description string) []component.Option {
	if description == "" {
		return nil
	}
	return []component.Option{component.WithDescription(description)}
}
