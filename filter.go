package crt

import "errors"

// Errors returned when a filter is applied without a usable host.
var (
	// ErrNilRenderer is returned when Apply is called with a nil renderer or host.
	ErrNilRenderer = errors.New("crt: renderer is nil")

	// ErrNilTexture is returned when Apply is called with a nil texture.
	ErrNilTexture = errors.New("crt: texture is nil")
)

// Texture is the rendering host's view of an input or output surface.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)
}

// Renderer runs a filter's program against a texture. It is implemented by
// the rendering host (see the software package for a CPU host).
type Renderer interface {
	// ApplyFilter draws input through f's program into output. When clear is
	// true the output is cleared before drawing.
	ApplyFilter(f Filter, input, output Texture, clear bool) error
}

// Host is a Renderer that can also allocate intermediate textures, which
// Pipeline.Apply needs to chain several stages.
type Host interface {
	Renderer

	// NewTexture allocates a texture of the given size.
	NewTexture(width, height int) (Texture, error)

	// ReleaseTexture returns a texture obtained from NewTexture.
	ReleaseTexture(t Texture)

	// CopyTexture copies src into dst unchanged.
	CopyTexture(src, dst Texture) error
}

// Filter is one constructed CRT stage: a compiled program plus a mutable
// block of uniform values.
//
// The program and the layout of the uniform block are fixed at construction.
// Uniform values may be changed between renders through the concrete type's
// Uniforms field; options that change shader source (see Tunable.Structural)
// need a new filter.
type Filter interface {
	// Kind returns the stage kind.
	Kind() Kind

	// Program returns the compiled program owned by the filter.
	Program() *Program

	// UniformBytes packs the current uniform values with the layout of the
	// WGSL uniform struct. The length is a multiple of 16.
	UniformBytes() []byte

	// Apply runs the filter through r. Resolution-dependent stages update
	// their resolution uniform from input before delegating to r.
	Apply(r Renderer, input, output Texture, clear bool) error
}

// Resizer is implemented by stages whose uniforms depend on the input size:
// scanlines, phosphor mask, bloom and curvature.
type Resizer interface {
	// Resize writes width and height into the resolution uniform.
	Resize(width, height int)
}

// applyFilter is the shared Apply body. resize is nil for stages that do not
// depend on the input size.
func applyFilter(f Filter, resize func(width, height int), r Renderer, input, output Texture, clear bool) error {
	if r == nil {
		return ErrNilRenderer
	}
	if input == nil || output == nil {
		return ErrNilTexture
	}
	if resize != nil {
		resize(input.Size())
	}
	return r.ApplyFilter(f, input, output, clear)
}
