package crt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersDefaultPipeline(t *testing.T) {
	filters, err := Filters(PipelineOptions{})
	require.NoError(t, err)
	require.Len(t, filters, 7)
	for i, f := range filters {
		assert.Equal(t, Kind(i), f.Kind())
	}
}

func TestFiltersAllOff(t *testing.T) {
	filters, err := Filters(PipelineOptions{
		RoundedCorners:  Off[RoundedCornersOptions](),
		Scanlines:       Off[ScanlinesOptions](),
		PhosphorMask:    Off[PhosphorMaskOptions](),
		Bloom:           Off[BloomOptions](),
		Curvature:       Off[CurvatureOptions](),
		Vignette:        Off[VignetteOptions](),
		ColorAdjustment: Off[ColorAdjustmentOptions](),
	})
	require.NoError(t, err)
	assert.NotNil(t, filters)
	assert.Empty(t, filters)
}

func TestFiltersSkipsDisabledStages(t *testing.T) {
	filters, err := Filters(PipelineOptions{
		Bloom:    Off[BloomOptions](),
		Vignette: Off[VignetteOptions](),
	})
	require.NoError(t, err)

	var kinds []Kind
	for _, f := range filters {
		kinds = append(kinds, f.Kind())
	}
	assert.Equal(t, []Kind{
		KindRoundedCorners, KindScanlines, KindPhosphorMask, KindCurvature, KindColorAdjustment,
	}, kinds)
}

func TestFiltersMergesStageOptions(t *testing.T) {
	filters, err := Filters(PipelineOptions{
		Bloom: On(BloomOptions{Radius: Float(6)}),
	})
	require.NoError(t, err)

	p := NewPipelineFromFilters(filters...)
	bloom, ok := p.Find(KindBloom).(*BloomFilter)
	require.True(t, ok)
	assert.Equal(t, BloomSettings{Radius: 6, Cutoff: 0.88, Intensity: 0.14, EdgeBlur: 1.5}, bloom.Settings())
}

func TestFiltersIsStateless(t *testing.T) {
	a, err := Filters(PipelineOptions{})
	require.NoError(t, err)
	b, err := Filters(PipelineOptions{})
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.NotSame(t, a[i], b[i])
		assert.Equal(t, a[i].UniformBytes(), b[i].UniformBytes())
	}
}

func TestFiltersCompilerError(t *testing.T) {
	c := &fakeCompiler{err: errors.New("boom")}
	RegisterCompiler(c)
	t.Cleanup(func() { RegisterCompiler(nil) })

	filters, err := Filters(PipelineOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, c.err)
	assert.Contains(t, err.Error(), "rounded-corners-filter")
	assert.Nil(t, filters)
}

func TestPipelineAccessors(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{Scanlines: Off[ScanlinesOptions]()})
	require.NoError(t, err)

	assert.Equal(t, 6, p.Len())
	assert.Len(t, p.Filters(), 6)
	assert.Equal(t, KindRoundedCorners, p.Kinds()[0])
	assert.Nil(t, p.Find(KindScanlines))
	assert.NotNil(t, p.Find(KindCurvature))
}

func TestPipelineResize(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{})
	require.NoError(t, err)
	p.Resize(320, 240)

	want := [2]float32{320, 240}
	assert.Equal(t, want, p.Find(KindScanlines).(*ScanlinesFilter).Uniforms.Resolution)
	assert.Equal(t, want, p.Find(KindPhosphorMask).(*PhosphorMaskFilter).Uniforms.Resolution)
	assert.Equal(t, want, p.Find(KindBloom).(*BloomFilter).Uniforms.Resolution)
	assert.Equal(t, want, p.Find(KindCurvature).(*CurvatureFilter).Uniforms.Resolution)
}

func TestNewPipelineFromFiltersSkipsNil(t *testing.T) {
	v, err := NewVignetteFilter(VignetteOptions{})
	require.NoError(t, err)
	p := NewPipelineFromFilters(nil, v, nil)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []Kind{KindVignette}, p.Kinds())
}

func TestPipelineApplyEmptyCopies(t *testing.T) {
	p := NewPipelineFromFilters()
	h := &fakeHost{}
	src := &fakeTexture{w: 2, h: 2}
	dst := &fakeTexture{w: 2, h: 2}

	require.NoError(t, p.Apply(h, src, dst))
	assert.Equal(t, 1, h.copies)
	assert.Empty(t, h.calls)
}

func TestPipelineApplySingleStage(t *testing.T) {
	v, err := NewVignetteFilter(VignetteOptions{})
	require.NoError(t, err)
	p := NewPipelineFromFilters(v)
	h := &fakeHost{}
	src := &fakeTexture{name: "src", w: 2, h: 2}
	dst := &fakeTexture{name: "dst", w: 2, h: 2}

	require.NoError(t, p.Apply(h, src, dst))
	require.Len(t, h.calls, 1)
	assert.Same(t, src, h.calls[0].input)
	assert.Same(t, dst, h.calls[0].output)
	assert.Zero(t, h.allocs)
}

func TestPipelineApplyChainsStages(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{})
	require.NoError(t, err)
	h := &fakeHost{}
	src := &fakeTexture{name: "src", w: 64, h: 48}
	dst := &fakeTexture{name: "dst", w: 64, h: 48}

	require.NoError(t, p.Apply(h, src, dst))
	require.Len(t, h.calls, 7)

	assert.Same(t, src, h.calls[0].input)
	assert.Same(t, dst, h.calls[6].output)
	for i := 1; i < len(h.calls); i++ {
		assert.Same(t, h.calls[i-1].output, h.calls[i].input, "stage %d reads previous output", i)
		assert.NotSame(t, h.calls[i].input, h.calls[i].output)
	}
	for i, c := range h.calls {
		assert.Equal(t, Kind(i), c.kind)
		assert.True(t, c.clear)
	}

	assert.Equal(t, 2, h.allocs)
	assert.Len(t, h.released, 2)
	assert.Equal(t, [2]float32{64, 48}, h.calls[KindBloom].resolution)
}

func TestPipelineApplyError(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{})
	require.NoError(t, err)
	h := &fakeHost{fail: true, failOn: KindBloom}
	tex := &fakeTexture{w: 8, h: 8}

	err = p.Apply(h, tex, &fakeTexture{w: 8, h: 8})
	require.ErrorIs(t, err, errFakeRender)
	assert.Contains(t, err.Error(), "bloom")
	assert.Len(t, h.calls, int(KindBloom)+1, "stops at the failing stage")
	assert.Len(t, h.released, 2, "intermediate textures released on error")
}

func TestPipelineApplyAllocError(t *testing.T) {
	p, err := NewPipeline(PipelineOptions{})
	require.NoError(t, err)
	allocErr := errors.New("out of memory")
	h := &fakeHost{allocErr: allocErr}
	tex := &fakeTexture{w: 8, h: 8}

	assert.ErrorIs(t, p.Apply(h, tex, tex), allocErr)
	assert.ErrorIs(t, p.Apply(nil, tex, tex), ErrNilRenderer)
	assert.ErrorIs(t, p.Apply(h, nil, tex), ErrNilTexture)
}

func TestPipelineOptionsEnabled(t *testing.T) {
	opts := PipelineOptions{Curvature: Off[CurvatureOptions]()}
	for _, k := range Kinds() {
		assert.Equal(t, k != KindCurvature, opts.Enabled(k), k.String())
	}
	assert.False(t, opts.Enabled(Kind(99)))
}

func TestPipelineOptionsSetEnabled(t *testing.T) {
	opts := PipelineOptions{Bloom: On(BloomOptions{Radius: Float(9)})}

	opts.SetEnabled(KindBloom, false)
	assert.False(t, opts.Enabled(KindBloom))
	opts.SetEnabled(KindBloom, true)
	assert.True(t, opts.Enabled(KindBloom))
	assert.InDelta(t, 9.0, *opts.Bloom.Options.Radius, 1e-12, "options are kept")

	opts.SetEnabled(Kind(99), false)
	for _, k := range Kinds() {
		assert.True(t, opts.Enabled(k))
	}
}
