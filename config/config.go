// Package config bundles go-parser's FeatureFlags with the forbidden-key
// setting and host-call timeouts into one root-level RuntimeConfig
// (SPEC_FULL.md §3), loadable from YAML via gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	parserconfig "go-parser/pkg/config"

	"hexput/value"
)

// RuntimeConfig is the full set of knobs cmd/hexputd wires into the
// container: the parser's default feature flags, the default
// minify/include_source_mapping switches a request's own `options` can
// override (spec.md §6 — minify default true, include_source_mapping
// default false; the *opposite* of go-parser/pkg/config.ParseOptions's own
// CLI-oriented defaults, which is why this type doesn't simply alias
// ParseOptions), the forbidden key (spec.md §3, default "secret_data"),
// and the two host-call timeouts (spec.md §4.F, default 3s/600s).
type RuntimeConfig struct {
	Flags                parserconfig.FeatureFlags
	Minify               bool
	IncludeSourceMapping bool
	ForbiddenKey         string
	ExistsTimeout        time.Duration
	CallTimeout          time.Duration
}

// doc is the YAML document shape: a preset name, a per-flag overlay
// (mirroring go-parser/pkg/config's own internal flagsOverlay — that type
// is unexported, so it's reproduced here rather than reused), and the
// hexput-specific fields layered on top.
type doc struct {
	Preset                string          `yaml:"preset"`
	Flags                 flagsOverlayDoc `yaml:"flags"`
	Minify                *bool           `yaml:"minify"`
	IncludeSourceMapping  *bool           `yaml:"include_source_mapping"`
	ForbiddenKey          string          `yaml:"forbidden_key"`
	ExistsTimeout         string          `yaml:"exists_timeout"`
	CallTimeout           string          `yaml:"call_timeout"`
}

type flagsOverlayDoc struct {
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

func (o flagsOverlayDoc) applyTo(f parserconfig.FeatureFlags) parserconfig.FeatureFlags {
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

func presetByName(name string) (parserconfig.FeatureFlags, error) {
	switch name {
	case "", "all_enabled":
		return parserconfig.AllEnabled(), nil
	case "all_disabled":
		return parserconfig.AllDisabled(), nil
	case "expressions_only":
		return parserconfig.ExpressionsOnly(), nil
	default:
		return parserconfig.FeatureFlags{}, fmt.Errorf("config: unknown preset %q", name)
	}
}

// Default returns the out-of-the-box RuntimeConfig: every feature enabled,
// the forbidden key "secret_data", and the spec's default timeouts.
func Default() RuntimeConfig {
	return RuntimeConfig{
		Flags:                parserconfig.AllEnabled(),
		Minify:               true,
		IncludeSourceMapping: false,
		ForbiddenKey:         "secret_data",
		ExistsTimeout:        3 * time.Second,
		CallTimeout:          600 * time.Second,
	}
}

// Load reads a RuntimeConfig document from path, overlaying it onto
// Default().
func Load(path string) (RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a RuntimeConfig YAML document already held in memory.
func Parse(data []byte) (RuntimeConfig, error) {
	cfg := Default()

	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return RuntimeConfig{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	base, err := presetByName(d.Preset)
	if err != nil {
		return RuntimeConfig{}, err
	}
	cfg.Flags = d.Flags.applyTo(base)

	if d.Minify != nil {
		cfg.Minify = *d.Minify
	}
	if d.IncludeSourceMapping != nil {
		cfg.IncludeSourceMapping = *d.IncludeSourceMapping
	}
	if d.ForbiddenKey != "" {
		cfg.ForbiddenKey = d.ForbiddenKey
	}
	if d.ExistsTimeout != "" {
		dur, err := time.ParseDuration(d.ExistsTimeout)
		if err != nil {
			return RuntimeConfig{}, fmt.Errorf("config: exists_timeout: %w", err)
		}
		cfg.ExistsTimeout = dur
	}
	if d.CallTimeout != "" {
		dur, err := time.ParseDuration(d.CallTimeout)
		if err != nil {
			return RuntimeConfig{}, fmt.Errorf("config: call_timeout: %w", err)
		}
		cfg.CallTimeout = dur
	}
	return cfg, nil
}

// RequestOptions resolves a single request's `options` object (spec.md §6)
// against cfg's defaults: `minify` defaults to true, `include_source_mapping`
// defaults to false, and any `no_*` negative flag (e.g. `no_loops`) flips
// the matching FeatureFlags field off — a convenience alternative to a full
// preset/flags object, preserved from
// `original_source/hexput-runtime/src/handler.rs`'s option resolution
// (SPEC_FULL.md §5.4).
func RequestOptions(cfg RuntimeConfig, options *value.Object) (parserconfig.FeatureFlags, bool, bool) {
	flags := cfg.Flags
	minify := cfg.Minify
	includeSourceMapping := cfg.IncludeSourceMapping
	if options == nil {
		return flags, minify, includeSourceMapping
	}

	if v, ok := options.Get("minify"); ok {
		if b, ok := v.(bool); ok {
			minify = b
		}
	}
	if v, ok := options.Get("include_source_mapping"); ok {
		if b, ok := v.(bool); ok {
			includeSourceMapping = b
		}
	}

	negate := func(dst *bool, key string) {
		if v, ok := options.Get(key); ok {
			if b, ok := v.(bool); ok && b {
				*dst = false
			}
		}
	}
	negate(&flags.AllowVariableDeclaration, "no_variable_declaration")
	negate(&flags.AllowConditionals, "no_conditionals")
	negate(&flags.AllowLoops, "no_loops")
	negate(&flags.AllowCallbacks, "no_callbacks")
	negate(&flags.AllowReturnStatements, "no_return_statements")
	negate(&flags.AllowLoopControl, "no_loop_control")
	negate(&flags.AllowAssignments, "no_assignments")
	negate(&flags.AllowObjectNavigation, "no_object_navigation")
	negate(&flags.AllowArrayConstructions, "no_array_constructions")
	negate(&flags.AllowObjectConstructions, "no_object_constructions")
	negate(&flags.AllowObjectKeys, "no_object_keys")

	return flags, minify, includeSourceMapping
}
