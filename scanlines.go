package crt

import "github.com/gogpu/crt/shader"

// ScanlinesOptions configures the scanlines stage.
type ScanlinesOptions struct {
	// PixelHeight is the height of each scanline in pixels.
	PixelHeight *float64 `toml:"pixel_height,omitempty" yaml:"pixel_height,omitempty"`

	// GapBrightness is the brightness of the gap between lines (0-1).
	// 1 turns scanlines off, 0 gives hard dark lines.
	GapBrightness *float64 `toml:"gap_brightness,omitempty" yaml:"gap_brightness,omitempty"`
}

// ScanlinesSettings is the effective scanlines configuration.
type ScanlinesSettings struct {
	PixelHeight   float64
	GapBrightness float64
}

// DefaultScanlinesSettings returns the scanlines defaults.
func DefaultScanlinesSettings() ScanlinesSettings {
	return ScanlinesSettings{
		PixelHeight:   4,
		GapBrightness: 0.7,
	}
}

// MergeScanlinesOptions returns defaults with every set field of o applied.
func MergeScanlinesOptions(defaults ScanlinesSettings, o ScanlinesOptions) ScanlinesSettings {
	s := defaults
	override(&s.PixelHeight, o.PixelHeight)
	override(&s.GapBrightness, o.GapBrightness)
	return s
}

// Settings merges o over the defaults.
func (o ScanlinesOptions) Settings() ScanlinesSettings {
	return MergeScanlinesOptions(DefaultScanlinesSettings(), o)
}

// ScanlinesUniforms mirrors ScanlinesUniforms in scanlines.wgsl.
type ScanlinesUniforms struct {
	Resolution    [2]float32
	PixelHeight   float32
	GapBrightness float32
}

// Bytes packs the uniforms for upload.
func (u *ScanlinesUniforms) Bytes() []byte {
	var w uniformWriter
	w.vec2(u.Resolution)
	w.f32(u.PixelHeight)
	w.f32(u.GapBrightness)
	return w.bytes()
}

// ScanlinesFilter darkens the gaps between horizontal scanlines.
type ScanlinesFilter struct {
	Uniforms ScanlinesUniforms

	settings ScanlinesSettings
	program  *Program
}

// NewScanlinesFilter creates a scanlines stage.
func NewScanlinesFilter(opts ScanlinesOptions) (*ScanlinesFilter, error) {
	s := opts.Settings()
	f := &ScanlinesFilter{
		Uniforms: ScanlinesUniforms{
			PixelHeight:   float32(s.PixelHeight),
			GapBrightness: float32(s.GapBrightness),
		},
		settings: s,
	}
	p, err := newProgram(KindScanlines, shader.ScanlinesSource(), len(f.Uniforms.Bytes()))
	if err != nil {
		return nil, err
	}
	f.program = p
	return f, nil
}

// Kind implements Filter.
func (f *ScanlinesFilter) Kind() Kind { return KindScanlines }

// Program implements Filter.
func (f *ScanlinesFilter) Program() *Program { return f.program }

// UniformBytes implements Filter.
func (f *ScanlinesFilter) UniformBytes() []byte { return f.Uniforms.Bytes() }

// Settings returns the effective options the filter was built with.
func (f *ScanlinesFilter) Settings() ScanlinesSettings { return f.settings }

// Resize implements Resizer.
func (f *ScanlinesFilter) Resize(width, height int) {
	f.Uniforms.Resolution = resolution(width, height)
}

// Apply implements Filter.
func (f *ScanlinesFilter) Apply(r Renderer, input, output Texture, clear bool) error {
	return applyFilter(f, f.Resize, r, input, output, clear)
}
