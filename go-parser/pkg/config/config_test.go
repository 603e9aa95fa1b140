package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpressionsOnlyPresetShape(t *testing.T) {
	f := ExpressionsOnly()
	require.True(t, f.AllowAssignments)
	require.True(t, f.AllowObjectNavigation)
	require.False(t, f.AllowLoops)
	require.False(t, f.AllowCallbacks)
	require.False(t, f.AllowConditionals)
}

func TestAllDisabledHasEveryFlagFalse(t *testing.T) {
	require.Equal(t, FeatureFlags{}, AllDisabled())
}

func TestParseParseOptionsDefaultsToAllEnabled(t *testing.T) {
	opts, err := ParseParseOptions([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, AllEnabled(), opts.Flags)
	require.True(t, opts.IncludeSourceMapping)
	require.False(t, opts.Minify)
}

func TestParseParseOptionsPresetThenOverlay(t *testing.T) {
	doc := []byte(`
preset: all_disabled
flags:
  allow_assignments: true
  allow_loops: true
minify: true
include_source_mapping: false
`)
	opts, err := ParseParseOptions(doc)
	require.NoError(t, err)
	require.True(t, opts.Flags.AllowAssignments)
	require.True(t, opts.Flags.AllowLoops)
	require.False(t, opts.Flags.AllowConditionals)
	require.True(t, opts.Minify)
	require.False(t, opts.IncludeSourceMapping)
}

func TestParseParseOptionsUnknownPresetErrors(t *testing.T) {
	_, err := ParseParseOptions([]byte(`preset: nonsense`))
	require.Error(t, err)
}
