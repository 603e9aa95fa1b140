// Package config holds the parse-time feature gate (spec.md §6) and the
// minify/source-mapping options accepted alongside it, loadable from YAML
// for embedders that ship a static flags file.
package config

// FeatureFlags gates whole syntactic categories at parse time. Every flag
// defaults to true; setting one false makes the parser reject the matching
// construct with a FeatureDisabled error, even where the construct is
// otherwise syntactically valid (spec.md §4.B).
type FeatureFlags struct {
	AllowVariableDeclaration bool `yaml:"allow_variable_declaration"`
	AllowConditionals        bool `yaml:"allow_conditionals"`
	AllowLoops               bool `yaml:"allow_loops"`
	AllowCallbacks           bool `yaml:"allow_callbacks"`
	AllowReturnStatements    bool `yaml:"allow_return_statements"`
	AllowLoopControl         bool `yaml:"allow_loop_control"`
	AllowAssignments         bool `yaml:"allow_assignments"`
	AllowObjectNavigation    bool `yaml:"allow_object_navigation"`
	AllowArrayConstructions  bool `yaml:"allow_array_constructions"`
	AllowObjectConstructions bool `yaml:"allow_object_constructions"`
	AllowObjectKeys          bool `yaml:"allow_object_keys"`
}

// AllEnabled is the default preset: every construct accepted.
func AllEnabled() FeatureFlags {
	return FeatureFlags{
		AllowVariableDeclaration: true,
		AllowConditionals:        true,
		AllowLoops:               true,
		AllowCallbacks:           true,
		AllowReturnStatements:    true,
		AllowLoopControl:         true,
		AllowAssignments:         true,
		AllowObjectNavigation:    true,
		AllowArrayConstructions:  true,
		AllowObjectConstructions: true,
		AllowObjectKeys:          true,
	}
}

// AllDisabled rejects every gated construct.
func AllDisabled() FeatureFlags {
	return FeatureFlags{}
}

// ExpressionsOnly enables only assignments and object navigation, the
// minimum needed to evaluate a single expression against host-provided
// state without any statement-level control flow (spec.md §6).
func ExpressionsOnly() FeatureFlags {
	f := AllDisabled()
	f.AllowAssignments = true
	f.AllowObjectNavigation = true
	return f
}

// ParseOptions bundles FeatureFlags with the output-shaping switches the
// CLI front-end exposes as --minify and --no-source-mapping (spec.md §6) —
// the parser and AST layer honor IncludeSourceMapping directly; Minify is
// a serialization-time concern left to the caller's encoder.
type ParseOptions struct {
	Flags                FeatureFlags
	Minify               bool
	IncludeSourceMapping bool
}

// DefaultParseOptions returns AllEnabled flags with source mapping on and
// minification off, matching the parser's behavior when no options are
// supplied.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Flags:                AllEnabled(),
		Minify:               false,
		IncludeSourceMapping: true,
	}
}
