package crt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlPreset = `
bloom = false
vignette = true

[scanlines]
gap_brightness = 0.3

[phosphor_mask]
num_samples = 8
pixel_width = 5

[curvature]
multisampling = false
`

const yamlPreset = `
bloom: false
vignette: true
scanlines:
  gap_brightness: 0.3
phosphor_mask:
  num_samples: 8
  pixel_width: 5
curvature:
  multisampling: false
`

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format PresetFormat
	}{
		{"toml", tomlPreset, FormatTOML},
		{"yaml", yamlPreset, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParsePreset([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.False(t, opts.Bloom.Enabled())
			assert.True(t, opts.Vignette.Enabled())
			assert.Equal(t, VignetteOptions{}, opts.Vignette.Options)
			assert.True(t, opts.RoundedCorners.Enabled(), "unmentioned stages keep defaults")

			assert.Equal(t, ScanlinesSettings{PixelHeight: 4, GapBrightness: 0.3}, opts.Scanlines.Options.Settings())
			pm := opts.PhosphorMask.Options.Settings()
			assert.Equal(t, 8, pm.NumSamples)
			assert.InDelta(t, 5, pm.PixelWidth, 1e-12)
			assert.False(t, opts.Curvature.Options.Settings().Multisampling)

			filters, err := Filters(opts)
			require.NoError(t, err)
			assert.Len(t, filters, 6)
		})
	}
}

func TestParsePresetEmpty(t *testing.T) {
	for _, f := range []PresetFormat{FormatTOML, FormatYAML} {
		opts, err := ParsePreset(nil, f)
		require.NoError(t, err, f.String())
		assert.Equal(t, PipelineOptions{}, opts)
	}
}

func TestParsePresetErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format PresetFormat
	}{
		{"toml unknown stage", "glow = true\n", FormatTOML},
		{"toml unknown option", "[bloom]\nsize = 3\n", FormatTOML},
		{"toml wrong type", "bloom = 3\n", FormatTOML},
		{"toml syntax", "[bloom\n", FormatTOML},
		{"yaml unknown stage", "glow: true\n", FormatYAML},
		{"yaml unknown option", "bloom:\n  size: 3\n", FormatYAML},
		{"yaml wrong type", "bloom: [1, 2]\n", FormatYAML},
		{"yaml bad scalar", "bloom: maybe\n", FormatYAML},
		{"unknown format", "", PresetFormat(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePreset([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "look.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlPreset), 0o600))
	opts, err := LoadPreset(tomlPath)
	require.NoError(t, err)
	assert.False(t, opts.Bloom.Enabled())

	ymlPath := filepath.Join(dir, "look.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte(yamlPreset), 0o600))
	opts, err = LoadPreset(ymlPath)
	require.NoError(t, err)
	assert.False(t, opts.Bloom.Enabled())

	_, err = LoadPreset(filepath.Join(dir, "look.json"))
	assert.Error(t, err)

	_, err = LoadPreset(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("a/b.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatForPath("preset.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatForPath("preset")
	assert.Error(t, err)
}

func TestArcadePreset(t *testing.T) {
	opts := ArcadePreset()
	for _, k := range Kinds() {
		assert.True(t, opts.Enabled(k), k.String())
	}

	p, err := NewPipeline(opts)
	require.NoError(t, err)
	require.Equal(t, 7, p.Len())

	pm := p.Find(KindPhosphorMask).(*PhosphorMaskFilter)
	assert.Equal(t, 6, pm.Settings().NumSamples)
	assert.InDelta(t, 0.3, pm.Uniforms.MaskBrightness, 1e-6)

	v := p.Find(KindVignette).(*VignetteFilter)
	assert.Equal(t, VignetteSettings{Intensity: 0.6, Radius: 1.3, Softness: 0.5}, v.Settings())

	c := p.Find(KindColorAdjustment).(*ColorAdjustmentFilter)
	assert.InDelta(t, 1.5, c.Uniforms.Brightness, 1e-6)
}
