package schema

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/plugin"
	"github.com/khimera-dev/khimera/internal/spec"
)

// ModelFile is the YAML document declaring a plugin model. It lets a host
// ship its plugin contract as configuration instead of code. Hook parameter
// and return types, and metadata value types, are named primitives; richer
// type constraints (API extension types) require declaring the model in code.
type ModelFile struct {
	Name    string      `yaml:"name" validate:"required,min=1"`
	Version string      `yaml:"version,omitempty"`
	Fields  []FieldDecl `yaml:"fields" validate:"required,min=1,dive"`
}

// FieldDecl declares one field of the model. Kind selects the component
// category; the remaining attributes apply per kind.
type FieldDecl struct {
	Name        string `yaml:"name" validate:"required,min=1"`
	Kind        string `yaml:"kind" validate:"required,oneof=metadata command hook asset extension"`
	Required    bool   `yaml:"required,omitempty"`
	Unique      *bool  `yaml:"unique,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Metadata: expected value type by name ("string", "int", ...).
	Type string `yaml:"type,omitempty"`

	// Asset: admitted file extensions.
	Extensions []string `yaml:"extensions,omitempty"`

	// Command: group policy.
	Groups    []string `yaml:"groups,omitempty"`
	NewGroups *bool    `yaml:"new_groups,omitempty"`
	TopLevel  *bool    `yaml:"top_level,omitempty"`

	// Hook: signature contract.
	Params      []ParamDecl `yaml:"params,omitempty" validate:"omitempty,dive"`
	Returns     []string    `yaml:"returns,omitempty"`
	VarArgs     bool        `yaml:"var_args,omitempty"`
	VarKeywords bool        `yaml:"var_keywords,omitempty"`
}

// ParamDecl declares one hook parameter: a name and a primitive type name.
type ParamDecl struct {
	Name string `yaml:"name" validate:"required,min=1"`
	Type string `yaml:"type,omitempty"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// typesByName maps the primitive type names admitted in model files.
var typesByName = map[string]reflect.Type{
	"string":  reflect.TypeOf(""),
	"int":     reflect.TypeOf(int(0)),
	"int64":   reflect.TypeOf(int64(0)),
	"float":   reflect.TypeOf(float64(0)),
	"float64": reflect.TypeOf(float64(0)),
	"bool":    reflect.TypeOf(false),
	"strings": reflect.TypeOf([]string(nil)),
}

// typeByName resolves a declared type name. "any" and the empty string mean
// unconstrained.
func typeByName(name string) (reflect.Type, error) {
	if name == "" || name == "any" {
		return nil, nil
	}
	t, ok := typesByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown type name %q", name)
	}
	return t, nil
}

// Load reads and parses a model file from disk.
func Load(path string) (*plugin.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	model, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse model file %s: %w", path, err)
	}
	return model, nil
}

// Parse builds a plugin model from a YAML model document.
func Parse(data []byte) (*plugin.Model, error) {
	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if err := validatorInstance().Struct(&file); err != nil {
		return nil, err
	}

	model := plugin.NewModel(file.Name, file.Version)
	for _, decl := range file.Fields {
		field, err := buildField(decl)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", decl.Name, err)
		}
		if err := model.Add(field); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func buildField(decl FieldDecl) (spec.FieldSpec, error) {
	opts := fieldOptions(decl)
	switch decl.Kind {
	case "metadata":
		validType, err := typeByName(decl.Type)
		if err != nil {
			return nil, err
		}
		return spec.NewMetadataField(decl.Name, validType, opts...), nil

	case "command":
		policy := spec.DefaultCommandPolicy()
		policy.Groups = decl.Groups
		if decl.NewGroups != nil {
			policy.AdmitsNewGroups = *decl.NewGroups
		}
		if decl.TopLevel != nil {
			policy.AdmitsTopLevel = *decl.TopLevel
		}
		return spec.NewCommandField(decl.Name, policy, opts...), nil

	case "hook":
		contract := spec.HookContract{
			VarArgs:     decl.VarArgs,
			VarKeywords: decl.VarKeywords,
		}
		for _, param := range decl.Params {
			t, err := typeByName(param.Type)
			if err != nil {
				return nil, err
			}
			contract.Params = append(contract.Params, component.Param{Name: param.Name, Type: t})
		}
		for _, ret := range decl.Returns {
			t, err := typeByName(ret)
			if err != nil {
				return nil, err
			}
			if t == nil {
				contract.AnyReturn = true
				continue
			}
			contract.Returns = append(contract.Returns, t)
		}
		return spec.NewHookField(decl.Name, contract, opts...), nil

	case "asset":
		return spec.NewAssetField(decl.Name, decl.Extensions, opts...), nil

	case "extension":
		// Extension types cannot be named declaratively; the field
		// admits any payload type.
		return spec.NewExtensionField(decl.Name, nil, false, opts...), nil

	default:
		return nil, fmt.Errorf("unknown field kind %q", decl.Kind)
	}
}

func fieldOptions(decl FieldDecl) []spec.FieldOption {
	var opts []spec.FieldOption
	if decl.Required {
		opts = append(opts, spec.Required())
	}
	if decl.Unique != nil {
		if *decl.Unique {
			opts = append(opts, spec.Unique())
		} else {
			opts = append(opts, spec.Repeatable())
		}
	}
	if decl.Description != "" {
		opts = append(opts, spec.WithDescription(decl.Description))
	}
	return opts
}
