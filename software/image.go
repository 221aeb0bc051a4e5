package software

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Image is a premultiplied RGBA image with float32 channels in [0, 1].
type Image struct {
	Width  int
	Height int

	// Pix holds 4 values per pixel, row by row.
	Pix []float32
}

// NewImage allocates a transparent image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
}

// Size implements crt.Texture.
func (m *Image) Size() (width, height int) { return m.Width, m.Height }

// RGBA returns the premultiplied color of pixel (x, y).
func (m *Image) RGBA(x, y int) [4]float32 {
	i := (y*m.Width + x) * 4
	return [4]float32{m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]}
}

// SetRGBA sets the premultiplied color of pixel (x, y).
func (m *Image) SetRGBA(x, y int, c [4]float32) {
	i := (y*m.Width + x) * 4
	copy(m.Pix[i:i+4], c[:])
}

// Clear makes every pixel transparent.
func (m *Image) Clear() {
	clear(m.Pix)
}

// Fill sets every pixel to c.
func (m *Image) Fill(c [4]float32) {
	for i := 0; i < len(m.Pix); i += 4 {
		copy(m.Pix[i:i+4], c[:])
	}
}

// FromImage converts any image to a premultiplied float image. The result
// starts at (0, 0).
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := NewImage(b.Dx(), b.Dy())

	if rgba, ok := src.(*image.RGBA); ok {
		for y := range m.Height {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := range m.Width * 4 {
				m.Pix[y*m.Width*4+x] = float32(row[x]) / 255
			}
		}
		return m
	}

	for y := range m.Height {
		for x := range m.Width {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.SetRGBA(x, y, [4]float32{
				float32(r) / 0xffff,
				float32(g) / 0xffff,
				float32(bl) / 0xffff,
				float32(a) / 0xffff,
			})
		}
	}
	return m
}

// ToRGBA converts m to an 8-bit premultiplied image, clamping every channel
// to [0, a].
func (m *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		for x := range m.Width {
			c := m.RGBA(x, y)
			a := clamp01(c[3])
			dst.SetRGBA(x, y, color.RGBA{
				R: to8(min(clamp01(c[0]), a)),
				G: to8(min(clamp01(c[1]), a)),
				B: to8(min(clamp01(c[2]), a)),
				A: to8(a),
			})
		}
	}
	return dst
}

func to8(v float32) uint8 {
	return uint8(math32.Round(v * 255))
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}

// sample returns the bilinearly filtered color at normalized coordinates
// (u, v) with clamp-to-edge addressing, like a linear sampler.
func (m *Image) sample(u, v float32) [4]float32 {
	fx := u*float32(m.Width) - 0.5
	fy := v*float32(m.Height) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix := int(x0)
	iy := int(y0)
	c00 := m.clamped(ix, iy)
	c10 := m.clamped(ix+1, iy)
	c01 := m.clamped(ix, iy+1)
	c11 := m.clamped(ix+1, iy+1)

	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*tx
		bottom := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bottom-top)*ty
	}
	return out
}

func (m *Image) clamped(x, y int) [4]float32 {
	x = max(0, min(m.Width-1, x))
	y = max(0, min(m.Height-1, y))
	return m.RGBA(x, y)
}
