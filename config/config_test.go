package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	parserconfig "go-parser/pkg/config"
	"hexput/value"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, parserconfig.AllEnabled(), cfg.Flags)
	require.True(t, cfg.Minify)
	require.False(t, cfg.IncludeSourceMapping)
	require.Equal(t, "secret_data", cfg.ForbiddenKey)
	require.Equal(t, 3*time.Second, cfg.ExistsTimeout)
	require.Equal(t, 600*time.Second, cfg.CallTimeout)
}

func TestParseEmptyDocumentYieldsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParsePresetThenFlagsOverlay(t *testing.T) {
	doc := []byte(`
preset: all_disabled
flags:
  allow_assignments: true
  allow_loops: true
forbidden_key: classified
exists_timeout: 1s
call_timeout: 30s
`)
	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.True(t, cfg.Flags.AllowAssignments)
	require.True(t, cfg.Flags.AllowLoops)
	require.False(t, cfg.Flags.AllowConditionals)
	require.Equal(t, "classified", cfg.ForbiddenKey)
	require.Equal(t, time.Second, cfg.ExistsTimeout)
	require.Equal(t, 30*time.Second, cfg.CallTimeout)
}

func TestParseUnknownPresetErrors(t *testing.T) {
	_, err := Parse([]byte(`preset: nonsense`))
	require.Error(t, err)
}

func TestRequestOptionsNilLeavesConfigUnchanged(t *testing.T) {
	cfg := Default()
	flags, minify, includeSourceMapping := RequestOptions(cfg, nil)
	require.Equal(t, cfg.Flags, flags)
	require.Equal(t, cfg.Minify, minify)
	require.Equal(t, cfg.IncludeSourceMapping, includeSourceMapping)
}

func TestRequestOptionsAppliesNegativeFlags(t *testing.T) {
	cfg := Default()
	opts := value.NewObject()
	opts.Set("no_loops", true)
	opts.Set("no_callbacks", true)
	opts.Set("minify", false)
	opts.Set("include_source_mapping", true)

	flags, minify, includeSourceMapping := RequestOptions(cfg, opts)
	require.False(t, flags.AllowLoops)
	require.False(t, flags.AllowCallbacks)
	require.True(t, flags.AllowConditionals)
	require.False(t, minify)
	require.True(t, includeSourceMapping)
}

func TestRequestOptionsIgnoresFalseNegativeFlags(t *testing.T) {
	cfg := Default()
	opts := value.NewObject()
	opts.Set("no_loops", false)

	flags, _, _ := RequestOptions(cfg, opts)
	require.True(t, flags.AllowLoops)
}
