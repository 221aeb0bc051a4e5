package crt

import "github.com/gogpu/crt/shader"

// BloomOptions configures the bloom stage.
type BloomOptions struct {
	// Radius is the blur radius in pixels.
	Radius *float64 `toml:"radius,omitempty" yaml:"radius,omitempty"`

	// Cutoff is the brightness threshold for bloom (0-1).
	Cutoff *float64 `toml:"cutoff,omitempty" yaml:"cutoff,omitempty"`

	// Intensity is the bloom intensity multiplier.
	Intensity *float64 `toml:"intensity,omitempty" yaml:"intensity,omitempty"`

	// EdgeBlur softens the threshold for smooth transitions.
	EdgeBlur *float64 `toml:"edge_blur,omitempty" yaml:"edge_blur,omitempty"`
}

// BloomSettings is the effective bloom configuration.
type BloomSettings struct {
	Radius    float64
	Cutoff    float64
	Intensity float64
	EdgeBlur  float64
}

// DefaultBloomSettings returns the bloom defaults.
func DefaultBloomSettings() BloomSettings {
	return BloomSettings{
		Radius:    3.0,
		Cutoff:    0.88,
		Intensity: 0.14,
		EdgeBlur:  1.5,
	}
}

// MergeBloomOptions returns defaults with every set field of o applied.
func MergeBloomOptions(defaults BloomSettings, o BloomOptions) BloomSettings {
	s := defaults
	override(&s.Radius, o.Radius)
	override(&s.Cutoff, o.Cutoff)
	override(&s.Intensity, o.Intensity)
	override(&s.EdgeBlur, o.EdgeBlur)
	return s
}

// Settings merges o over the defaults.
func (o BloomOptions) Settings() BloomSettings {
	return MergeBloomOptions(DefaultBloomSettings(), o)
}

// BloomUniforms mirrors BloomUniforms in bloom.wgsl.
type BloomUniforms struct {
	Resolution [2]float32
	Radius     float32
	Cutoff     float32
	Intensity  float32
	EdgeBlur   float32
}

// Bytes packs the uniforms for upload.
func (u *BloomUniforms) Bytes() []byte {
	var w uniformWriter
	w.vec2(u.Resolution)
	w.f32(u.Radius)
	w.f32(u.Cutoff)
	w.f32(u.Intensity)
	w.f32(u.EdgeBlur)
	return w.bytes()
}

// BloomFilter adds a soft glow around bright areas. The blur radius is in
// pixels, so the filter tracks the input size.
type BloomFilter struct {
	// Uniforms are the live shader parameters. Resolution is overwritten on
	// every Apply.
	Uniforms BloomUniforms

	settings BloomSettings
	program  *Program
}

// NewBloomFilter creates a bloom stage.
func NewBloomFilter(opts BloomOptions) (*BloomFilter, error) {
	s := opts.Settings()
	f := &BloomFilter{
		Uniforms: BloomUniforms{
			Radius:    float32(s.Radius),
			Cutoff:    float32(s.Cutoff),
			Intensity: float32(s.Intensity),
			EdgeBlur:  float32(s.EdgeBlur),
		},
		settings: s,
	}
	p, err := newProgram(KindBloom, shader.BloomSource(), len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *BloomFilter) Kind() Kind { return KindBloom }

// Program implements Filter.
func (f *BloomFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *BloomFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *BloomFilter) Settings() BloomSettings { return f.settings }

// Resize implements Resizer.
func (f *BloomFilter) Resize(width, height int) {
	f.Uniforms.Resolution = resolution(width, height)
}

// Apply implements Filter.
func (f *BloomFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, f.Resize, r, input, output, clear)
}
