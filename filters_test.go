package crt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	assert.Equal(t, RoundedCornersSettings{CornerRadius: 0.025}, DefaultRoundedCornersSettings())
	assert.Equal(t, ScanlinesSettings{PixelHeight: 4, GapBrightness: 0.7}, DefaultScanlinesSettings())
	assert.Equal(t, PhosphorMaskSettings{PixelWidth: 4, MaskBrightness: 0.7, NumSamples: 4, TransitionWidth: 0.3},
		DefaultPhosphorMaskSettings())
	assert.Equal(t, BloomSettings{Radius: 3, Cutoff: 0.88, Intensity: 0.14, EdgeBlur: 1.5}, DefaultBloomSettings())
	assert.Equal(t, CurvatureSettings{CurvatureX: 0.15, CurvatureY: 0.15, Multisampling: true}, DefaultCurvatureSettings())
	assert.Equal(t, VignetteSettings{Intensity: 0.4, Radius: 0.8, Softness: 0.5}, DefaultVignetteSettings())
	assert.Equal(t, ColorAdjustmentSettings{Gamma: 1, Saturation: 1, Brightness: 1}, DefaultColorAdjustmentSettings())
}

func TestDefaultSettingsAreFresh(t *testing.T) {
	d := DefaultBloomSettings()
	d.Radius = 100
	assert.InDelta(t, 3.0, DefaultBloomSettings().Radius, 1e-12)
}

func TestMergePartialOptions(t *testing.T) {
	s := MergeBloomOptions(DefaultBloomSettings(), BloomOptions{Radius: Float(6)})
	assert.Equal(t, BloomSettings{Radius: 6, Cutoff: 0.88, Intensity: 0.14, EdgeBlur: 1.5}, s)

	s2 := MergeScanlinesOptions(DefaultScanlinesSettings(), ScanlinesOptions{GapBrightness: Float(0)})
	assert.Equal(t, ScanlinesSettings{PixelHeight: 4, GapBrightness: 0}, s2, "zero is a value, not absence")

	s3 := MergeCurvatureOptions(DefaultCurvatureSettings(), CurvatureOptions{Multisampling: Bool(false)})
	assert.False(t, s3.Multisampling)
	assert.InDelta(t, 0.15, s3.CurvatureX, 1e-12)

	s4 := MergePhosphorMaskOptions(DefaultPhosphorMaskSettings(), PhosphorMaskOptions{NumSamples: Int(8)})
	assert.Equal(t, 8, s4.NumSamples)
	assert.InDelta(t, 0.7, s4.MaskBrightness, 1e-12)
}

func TestMergeEmptyOptionsGivesDefaults(t *testing.T) {
	assert.Equal(t, DefaultRoundedCornersSettings(), RoundedCornersOptions{}.Settings())
	assert.Equal(t, DefaultScanlinesSettings(), ScanlinesOptions{}.Settings())
	assert.Equal(t, DefaultPhosphorMaskSettings(), PhosphorMaskOptions{}.Settings())
	assert.Equal(t, DefaultBloomSettings(), BloomOptions{}.Settings())
	assert.Equal(t, DefaultCurvatureSettings(), CurvatureOptions{}.Settings())
	assert.Equal(t, DefaultVignetteSettings(), VignetteOptions{}.Settings())
	assert.Equal(t, DefaultColorAdjustmentSettings(), ColorAdjustmentOptions{}.Settings())
}

func TestMergeUsesGivenDefaults(t *testing.T) {
	base := VignetteSettings{Intensity: 1, Radius: 2, Softness: 3}
	got := MergeVignetteOptions(base, VignetteOptions{Radius: Float(0.5)})
	assert.Equal(t, VignetteSettings{Intensity: 1, Radius: 0.5, Softness: 3}, got)
}

func TestFilterUniformsFromOptions(t *testing.T) {
	bloom, err := NewBloomFilter(BloomOptions{Radius: Float(6)})
	require.NoError(t, err)
	assert.InDelta(t, 6, bloom.Uniforms.Radius, 1e-6)
	assert.InDelta(t, 0.88, bloom.Uniforms.Cutoff, 1e-6)
	assert.InDelta(t, 0.14, bloom.Uniforms.Intensity, 1e-6)
	assert.InDelta(t, 1.5, bloom.Uniforms.EdgeBlur, 1e-6)
	assert.Equal(t, [2]float32{}, bloom.Uniforms.Resolution)

	color, err := NewColorAdjustmentFilter(ColorAdjustmentOptions{Saturation: Float(0)})
	require.NoError(t, err)
	assert.Equal(t, ColorAdjustmentUniforms{Gamma: 1, Saturation: 0, Brightness: 1}, color.Uniforms)

	vignette, err := NewVignetteFilter(VignetteOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultVignetteSettings(), vignette.Settings())
	assert.InDelta(t, 0.5, vignette.Uniforms.Softness, 1e-6)

	corners, err := NewRoundedCornersFilter(RoundedCornersOptions{CornerRadius: Float(0.1)})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, corners.Uniforms.CornerRadius, 1e-6)
}

func TestUniformBytesLayout(t *testing.T) {
	tests := []struct {
		kind Kind
		size int
	}{
		{KindRoundedCorners, 16},
		{KindScanlines, 16},
		{KindPhosphorMask, 32},
		{KindBloom, 32},
		{KindCurvature, 16},
		{KindVignette, 16},
		{KindColorAdjustment, 16},
	}
	filters, err := Filters(PipelineOptions{})
	require.NoError(t, err)
	require.Len(t, filters, len(tests))
	for i, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f := filters[i]
			require.Equal(t, tt.kind, f.Kind())
			b := f.UniformBytes()
			assert.Len(t, b, tt.size)
			assert.Equal(t, uint64(tt.size), f.Program().Descriptor().UniformSize)
		})
	}
}

func TestResizeWritesResolution(t *testing.T) {
	f, err := NewScanlinesFilter(ScanlinesOptions{})
	require.NoError(t, err)

	f.Resize(640, 480)
	assert.Equal(t, [2]float32{640, 480}, f.Uniforms.Resolution)
	first := f.UniformBytes()

	f.Resize(640, 480)
	assert.Equal(t, first, f.UniformBytes(), "resize is idempotent")

	f.Resize(320, 200)
	assert.Equal(t, [2]float32{320, 200}, f.Uniforms.Resolution)
}

func TestApplyUpdatesResolutionBeforeDelegating(t *testing.T) {
	in := &fakeTexture{name: "in", w: 800, h: 600}
	out := &fakeTexture{name: "out", w: 800, h: 600}

	filters, err := Filters(PipelineOptions{})
	require.NoError(t, err)
	for _, f := range filters {
		t.Run(f.Kind().String(), func(t *testing.T) {
			for _, clr := range []bool{true, false} {
				h := &fakeHost{}
				require.NoError(t, f.Apply(h, in, out, clr))
				require.Len(t, h.calls, 1)
				c := h.calls[0]
				assert.Equal(t, clr, c.clear, "clear passed through")
				assert.Same(t, in, c.input)
				assert.Same(t, out, c.output)
				if f.Kind().ResolutionDependent() {
					assert.Equal(t, [2]float32{800, 600}, c.resolution)
				}
			}
		})
	}
}

func TestApplyNilArguments(t *testing.T) {
	f, err := NewBloomFilter(BloomOptions{})
	require.NoError(t, err)
	tex := &fakeTexture{w: 1, h: 1}

	assert.ErrorIs(t, f.Apply(nil, tex, tex, true), ErrNilRenderer)
	assert.ErrorIs(t, f.Apply(&fakeHost{}, nil, tex, true), ErrNilTexture)
	assert.ErrorIs(t, f.Apply(&fakeHost{}, tex, nil, true), ErrNilTexture)
}

func TestApplyPropagatesRendererError(t *testing.T) {
	f, err := NewVignetteFilter(VignetteOptions{})
	require.NoError(t, err)
	tex := &fakeTexture{w: 4, h: 4}
	h := &fakeHost{fail: true, failOn: KindVignette}
	assert.ErrorIs(t, f.Apply(h, tex, tex, false), errFakeRender)
}

func TestPhosphorMaskSampleCountInSource(t *testing.T) {
	four, err := NewPhosphorMaskFilter(PhosphorMaskOptions{})
	require.NoError(t, err)
	eight, err := NewPhosphorMaskFilter(PhosphorMaskOptions{NumSamples: Int(8)})
	require.NoError(t, err)

	assert.Contains(t, four.Program().FragmentSource(), "NUM_SAMPLES: i32 = 4;")
	assert.Contains(t, eight.Program().FragmentSource(), "NUM_SAMPLES: i32 = 8;")
	assert.NotContains(t, four.Program().FragmentSource(), "{{")
	assert.NotEqual(t, four.Program().FragmentSource(), eight.Program().FragmentSource())
	assert.Equal(t, 8, eight.Settings().NumSamples)
}

func TestCurvatureMultisampleInSource(t *testing.T) {
	on, err := NewCurvatureFilter(CurvatureOptions{})
	require.NoError(t, err)
	off, err := NewCurvatureFilter(CurvatureOptions{Multisampling: Bool(false)})
	require.NoError(t, err)

	assert.Contains(t, on.Program().FragmentSource(), "MULTISAMPLE: i32 = 1;")
	assert.Contains(t, off.Program().FragmentSource(), "MULTISAMPLE: i32 = 0;")
}

func TestProgramSource(t *testing.T) {
	f, err := NewScanlinesFilter(ScanlinesOptions{})
	require.NoError(t, err)

	p := f.Program()
	assert.Equal(t, "scanlines-filter", p.Label())
	assert.True(t, strings.HasSuffix(p.Source(), p.FragmentSource()))
	assert.Contains(t, p.Source(), "fn vs_main")
	assert.Contains(t, p.Source(), "fn fs_main")
	assert.Nil(t, p.Handle(), "no compiler registered")

	d := p.Descriptor()
	assert.Equal(t, KindScanlines, d.Kind)
	assert.Equal(t, "vs_main", d.VertexEntryPoint)
	assert.Equal(t, "fs_main", d.FragmentEntryPoint)
}

func TestUniformMutationBetweenRenders(t *testing.T) {
	f, err := NewColorAdjustmentFilter(ColorAdjustmentOptions{})
	require.NoError(t, err)
	before := f.UniformBytes()
	f.Uniforms.Brightness = 1.5
	assert.NotEqual(t, before, f.UniformBytes())
	assert.InDelta(t, 1.0, f.Settings().Brightness, 1e-12, "settings record construction values")
}
