package plugin

import (
	"fmt"
	"strings"

	"github.com/khimera-dev/khimera/internal/component"
)

// Validator checks one plugin bundle against its model. It runs five
// independent, order-insensitive checks and records every finding as data;
// validation itself never fails with an error. The bundle is valid iff all
// five finding collections are empty.
type Validator struct {
	plugin *Plugin
	model  *Model

	// Missing lists required field keys absent from the bundle.
	Missing []string
	// Unknown lists bundle keys not declared in the model's field set.
	Unknown []string
	// NotUnique lists unique field keys holding more than one component.
	NotUnique []string
	// Invalid maps field keys to the components failing the field's rules.
	Invalid map[string][]component.Component
	// DepsUnsatisfied lists dependency rules whose predicate failed.
	DepsUnsatisfied []string
}

// NewValidator creates a validator for the bundle against its own model.
func NewValidator(p *Plugin) *Validator {
	return &Validator{
		plugin:  p,
		model:   p.Model(),
		Invalid: make(map[string][]component.Component),
	}
}

// CheckRequired flags every required model field absent from the bundle.
func (v *Validator) CheckRequired() {
	for _, field := range v.model.Filter(FilterRequired(true)) {
		if !v.plugin.Has(field.Name()) {
			v.Missing = append(v.Missing, field.Name())
		}
	}
}

// CheckUnique flags every unique model field holding more than one
// component in the bundle.
func (v *Validator) CheckUnique() {
	for _, field := range v.model.Filter(FilterUnique(true)) {
		if len(v.plugin.Get(field.Name())) > 1 {
			v.NotUnique = append(v.NotUnique, field.Name())
		}
	}
}

// CheckUnknown flags every bundle key not declared as a field in the model.
func (v *Validator) CheckUnknown() {
	for _, key := range v.plugin.Keys() {
		if _, ok := v.model.Field(key); !ok {
			v.Unknown = append(v.Unknown, key)
		}
	}
}

// CheckRules runs each declared field's validation over every component
// contributed under its key, accumulating failures per key. Keys without a
// field spec are left to CheckUnknown.
func (v *Validator) CheckRules() {
	for _, key := range v.plugin.Keys() {
		field, ok := v.model.Field(key)
		if !ok {
			continue
		}
		for _, c := range v.plugin.Get(key) {
			if !field.Validate(c) {
				v.Invalid[key] = append(v.Invalid[key], c)
			}
		}
	}
}

// CheckDependencies runs every dependency rule over the whole bundle.
func (v *Validator) CheckDependencies() {
	for _, dep := range v.model.Dependencies() {
		if !dep.Validate(v.plugin) {
			v.DepsUnsatisfied = append(v.DepsUnsatisfied, dep.Name())
		}
	}
}

// Validate resets the findings, runs all five checks and reports whether
// the bundle is valid.
func (v *Validator) Validate() bool {
	v.Missing = nil
	v.Unknown = nil
	v.NotUnique = nil
	v.Invalid = make(map[string][]component.Component)
	v.DepsUnsatisfied = nil

	v.CheckRequired()
	v.CheckUnique()
	v.CheckUnknown()
	v.CheckRules()
	v.CheckDependencies()
	return v.Valid()
}

// Valid reports whether all five finding collections are empty.
func (v *Validator) Valid() bool {
	return len(v.Missing) == 0 &&
		len(v.Unknown) == 0 &&
		len(v.NotUnique) == 0 &&
		len(v.Invalid) == 0 &&
		len(v.DepsUnsatisfied) == 0
}

// Extract produces a best-effort corrected copy of the bundle: keys flagged
// invalid or unknown are dropped entirely, and keys flagged not-unique are
// truncated to their first-added component.
//
// The result is not guaranteed to be valid: extraction cannot synthesize
// missing required components nor satisfy dependency rules. Re-validate the
// result when full validity is required.
func (v *Validator) Extract() *Plugin {
	corrected := v.plugin.Clone()
	for key := range v.Invalid {
		corrected.components.Delete(key)
	}
	for _, key := range v.Unknown {
		corrected.components.Delete(key)
	}
	for _, key := range v.NotUnique {
		if set, ok := corrected.components.Get(key); ok && len(set) > 1 {
			corrected.components.Set(key, set[:1])
		}
	}
	return corrected
}

// Summary renders the findings as human-readable diagnostic lines, one per
// finding, in check order. Empty when the bundle is valid.
func (v *Validator) Summary() []string {
	var lines []string
	for _, key := range v.Missing {
		lines = append(lines, fmt.Sprintf("missing required field '%s'", key))
	}
	for _, key := range v.NotUnique {
		lines = append(lines, fmt.Sprintf("field '%s' expects a unique component but holds %d", key, len(v.plugin.Get(key))))
	}
	for _, key := range v.Unknown {
		lines = append(lines, fmt.Sprintf("unknown field '%s' not declared in model '%s'", key, v.model.Name()))
	}
	for _, key := range v.plugin.Keys() {
		failed, ok := v.Invalid[key]
		if !ok {
			continue
		}
		names := make([]string, 0, len(failed))
		for _, c := range failed {
			names = append(names, c.Name())
		}
		lines = append(lines, fmt.Sprintf("field '%s' rejects component(s): %s", key, strings.Join(names, ", ")))
	}
	for _, name := range v.DepsUnsatisfied {
		lines = append(lines, fmt.Sprintf("dependency rule '%s' unsatisfied", name))
	}
	return lines
}
