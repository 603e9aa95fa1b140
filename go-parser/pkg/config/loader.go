package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// flagsOverlay mirrors FeatureFlags but with pointer fields, so a YAML
// document only needs to name the flags it wants to flip away from
// AllEnabled's defaults — an absent key leaves the base preset's value
// untouched rather than zeroing it out.
type flagsOverlay struct {
	AllowVariableDeclaration *bool `yaml:"allow_variable_declaration"`
	AllowConditionals        *bool `yaml:"allow_conditionals"`
	AllowLoops               *bool `yaml:"allow_loops"`
	AllowCallbacks           *bool `yaml:"allow_callbacks"`
	AllowReturnStatements    *bool `yaml:"allow_return_statements"`
	AllowLoopControl         *bool `yaml:"allow_loop_control"`
	AllowAssignments         *bool `yaml:"allow_assignments"`
	AllowObjectNavigation    *bool `yaml:"allow_object_navigation"`
	AllowArrayConstructions  *bool `yaml:"allow_array_constructions"`
	AllowObjectConstructions *bool `yaml:"allow_object_constructions"`
	AllowObjectKeys          *bool `yaml:"allow_object_keys"`
}

type parseOptionsDoc struct {
	Preset               string       `yaml:"preset"`
	Flags                flagsOverlay `yaml:"flags"`
	Minify               bool         `yaml:"minify"`
	IncludeSourceMapping *bool        `yaml:"include_source_mapping"`
}

func (o flagsOverlay) applyTo(f FeatureFlags) FeatureFlags {
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&f.AllowVariableDeclaration, o.AllowVariableDeclaration)
	apply(&f.AllowConditionals, o.AllowConditionals)
	apply(&f.AllowLoops, o.AllowLoops)
	apply(&f.AllowCallbacks, o.AllowCallbacks)
	apply(&f.AllowReturnStatements, o.AllowReturnStatements)
	apply(&f.AllowLoopControl, o.AllowLoopControl)
	apply(&f.AllowAssignments, o.AllowAssignments)
	apply(&f.AllowObjectNavigation, o.AllowObjectNavigation)
	apply(&f.AllowArrayConstructions, o.AllowArrayConstructions)
	apply(&f.AllowObjectConstructions, o.AllowObjectConstructions)
	apply(&f.AllowObjectKeys, o.AllowObjectKeys)
	return f
}

func presetByName(name string) (FeatureFlags, error) {
	switch name {
	case "", "all_enabled":
		return AllEnabled(), nil
	case "all_disabled":
		return AllDisabled(), nil
	case "expressions_only":
		return ExpressionsOnly(), nil
	default:
		return FeatureFlags{}, fmt.Errorf("config: unknown preset %q", name)
	}
}

// LoadParseOptions reads a YAML document selecting a base preset
// (all_enabled, all_disabled, expressions_only; defaults to all_enabled)
// and overlaying individual flags and the minify/source-mapping switches
// on top of it.
func LoadParseOptions(path string) (ParseOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseOptions{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseParseOptions(data)
}

// ParseParseOptions parses a ParseOptions YAML document already held in
// memory, for callers that source configuration from somewhere other than
// a plain file (an embedded asset, a value from the host protocol, etc).
func ParseParseOptions(data []byte) (ParseOptions, error) {
	var doc parseOptionsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ParseOptions{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	base, err := presetByName(doc.Preset)
	if err != nil {
		return ParseOptions{}, err
	}
	opts := ParseOptions{
		Flags:                doc.Flags.applyTo(base),
		Minify:               doc.Minify,
		IncludeSourceMapping: true,
	}
	if doc.IncludeSourceMapping != nil {
		opts.IncludeSourceMapping = *doc.IncludeSourceMapping
	}
	return opts, nil
}
