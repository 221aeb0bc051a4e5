package software

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/crt"
)

// Errors returned by the renderer.
var (
	// ErrForeignTexture is returned for textures that are not *Image.
	ErrForeignTexture = errors.New("software: texture is not a *software.Image")

	// ErrUnsupportedFilter is returned for filter types the renderer cannot draw.
	ErrUnsupportedFilter = errors.New("software: unsupported filter")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the number of goroutines used per stage. Values below 1
// select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		r.workers = n
	}
}

// Renderer draws CRT filters on the CPU. It implements crt.Host.
// A Renderer has no mutable state and may be shared between goroutines.
type Renderer struct {
	workers int
}

// NewRenderer creates a renderer. By default one goroutine per CPU is used.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the number of goroutines used per stage.
func (r *Renderer) Workers() int { return r.workers }

// NewTexture implements crt.Host.
func (r *Renderer) NewTexture(width, height int) (crt.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid texture size %dx%d", width, height)
	}
	return NewImage(width, height), nil
}

// ReleaseTexture implements crt.Host. Images are garbage collected.
func (r *Renderer) ReleaseTexture(crt.Texture) {}

// CopyTexture implements crt.Host. Sizes may differ; the overlapping region
// is copied.
func (r *Renderer) CopyTexture(src, dst crt.Texture) error {
	s, err := asImage(src)
	if err != nil {
		return err
	}
	d, err := asImage(dst)
	if err != nil {
		return err
	}
	if s == d {
		return nil
	}
	w := min(s.Width, d.Width)
	for y := range min(s.Height, d.Height) {
		copy(d.Pix[y*d.Width*4:y*d.Width*4+w*4], s.Pix[y*s.Width*4:])
	}
	return nil
}

func asImage(t crt.Texture) (*Image, error) {
	if t == nil {
		return nil, crt.ErrNilTexture
	}
	m, ok := t.(*Image)
	if !ok || m == nil {
		return nil, ErrForeignTexture
	}
	return m, nil
}

// ApplyFilter implements crt.Renderer. The output is cleared first when clear
// is set; otherwise the stage result is composited over it with premultiplied
// source-over, like the GPU pipelines.
func (r *Renderer) ApplyFilter(f crt.Filter, input, output crt.Texture, clear bool) error {
	in, err := asImage(input)
	if err != nil {
		return err
	}
	out, err := asImage(output)
	if err != nil {
		return err
	}
	if in == out {
		in = in.clone()
	}

	shade, err := r.shader(f, in)
	if err != nil {
		return err
	}
	if clear {
		out.Clear()
	}
	r.rows(out.Height, func(y int) {
		v := (float32(y) + 0.5) / float32(out.Height)
		for x := range out.Width {
			u := (float32(x) + 0.5) / float32(out.Width)
			c := shade(u, v)
			if clear {
				out.SetRGBA(x, y, c)
				continue
			}
			d := out.RGBA(x, y)
			ia := 1 - c[3]
			out.SetRGBA(x, y, [4]float32{c[0] + d[0]*ia, c[1] + d[1]*ia, c[2] + d[2]*ia, c[3] + d[3]*ia})
		}
	})
	return nil
}

// shader returns the per-pixel function of filter f reading from in.
func (r *Renderer) shader(f crt.Filter, in *Image) (shadeFunc, error) {
	switch f := f.(type) {
	case *crt.RoundedCornersFilter:
		return roundedCorners(f.Uniforms, in), nil
	case *crt.ScanlinesFilter:
		return scanlines(f.Uniforms, in), nil
	case *crt.PhosphorMaskFilter:
		return phosphorMask(f.Uniforms, f.Settings().NumSamples, in), nil
	case *crt.BloomFilter:
		return r.bloom(f.Uniforms, in), nil
	case *crt.CurvatureFilter:
		return curvature(f.Uniforms, f.Settings().Multisampling, in), nil
	case *crt.VignetteFilter:
		return vignette(f.Uniforms, in), nil
	case *crt.ColorAdjustmentFilter:
		return colorAdjustment(f.Uniforms, in), nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedFilter)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedFilter, f)
}

// rows calls fn for every row in [0, height), spreading bands of rows over
// the worker goroutines.
func (r *Renderer) rows(height int, fn func(y int)) {
	workers := max(r.workers, 1)
	if workers == 1 || height < 2 {
		for y := range height {
			fn(y)
		}
		return
	}

	band := max(1, height/(workers*4))
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait() // row functions do not fail
}

func (m *Image) clone() *Image {
	c := &Image{Width: m.Width, Height: m.Height, Pix: make([]float32, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}
