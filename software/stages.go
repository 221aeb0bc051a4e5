package software

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/crt"
)

// shadeFunc returns the premultiplied output color at normalized (u, v).
type shadeFunc func(u, v float32) [4]float32

const tau = 2 * math32.Pi

func fract(x float32) float32 { return x - math32.Floor(x) }

func mix(a, b, t float32) float32 { return a + (b-a)*t }

func smoothstep(e0, e1, x float32) float32 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func scaleRGB(c [4]float32, f float32) [4]float32 {
	return [4]float32{c[0] * f, c[1] * f, c[2] * f, c[3]}
}

func roundedCorners(un crt.RoundedCornersUniforms, in *Image) shadeFunc {
	r := max(un.CornerRadius, 0)
	return func(u, v float32) [4]float32 {
		c := in.sample(u, v)
		qx := max(math32.Abs(u-0.5)-(0.5-r), 0)
		qy := max(math32.Abs(v-0.5)-(0.5-r), 0)
		d := math32.Sqrt(qx*qx+qy*qy) - r
		m := 1 - smoothstep(-0.002, 0, d)
		return [4]float32{c[0] * m, c[1] * m, c[2] * m, c[3] * m}
	}
}

func scanlines(un crt.ScanlinesUniforms, in *Image) shadeFunc {
	height := max(un.PixelHeight, 1)
	return func(u, v float32) [4]float32 {
		phase := fract(v * un.Resolution[1] / height)
		wave := 0.5 - 0.5*math32.Cos(phase*tau)
		return scaleRGB(in.sample(u, v), mix(un.GapBrightness, 1, wave))
	}
}

// stripeWeight returns how much of channel ch is lit at phase p in [0, 3).
func stripeWeight(p, ch, softness float32) float32 {
	d := math32.Abs(p - (ch + 0.5))
	d = min(d, 3-d)
	edge := max(softness*0.5, 0.0001)
	return 1 - smoothstep(0.5-edge, 0.5+edge, d)
}

func phosphorMask(un crt.PhosphorMaskUniforms, samples int, in *Image) shadeFunc {
	n := max(samples, 1)
	width := max(un.PixelWidth, 1)
	maskAt := func(x float32) [3]float32 {
		p := fract(x/width) * 3
		var m [3]float32
		for ch := range m {
			lit := stripeWeight(p, float32(ch), un.TransitionWidth)
			m[ch] = mix(un.MaskBrightness, 1, lit)
		}
		return m
	}
	return func(u, v float32) [4]float32 {
		c := in.sample(u, v)
		x := u * un.Resolution[0]
		var mask [3]float32
		for i := range n {
			offset := (float32(i)+0.5)/float32(n) - 0.5
			m := maskAt(x + offset)
			mask[0] += m[0]
			mask[1] += m[1]
			mask[2] += m[2]
		}
		inv := 1 / float32(n)
		return [4]float32{c[0] * mask[0] * inv, c[1] * mask[1] * inv, c[2] * mask[2] * inv, c[3]}
	}
}

// bloom blurs the bright pass of in with a separable Gaussian whose spread
// matches the shader's tap grid, then adds it to the input.
func (r *Renderer) bloom(un crt.BloomUniforms, in *Image) shadeFunc {
	knee := max(un.EdgeBlur*0.05, 0.0001)
	bright := NewImage(in.Width, in.Height)
	r.rows(in.Height, func(y int) {
		for x := range in.Width {
			c := in.RGBA(x, y)
			luma := lumR*c[0] + lumG*c[1] + lumB*c[2]
			k := smoothstep(un.Cutoff-knee, un.Cutoff+knee, luma)
			bright.SetRGBA(x, y, [4]float32{c[0] * k, c[1] * k, c[2] * k, 0})
		}
	})

	// The shader spaces 9 taps radius/4 pixels apart with sigma = 2 taps.
	blurred := r.blur(bright, un.Radius/2)

	return func(u, v float32) [4]float32 {
		c := in.sample(u, v)
		b := blurred.sample(u, v)
		f := un.Intensity * c[3]
		return [4]float32{c[0] + b[0]*f, c[1] + b[1]*f, c[2] + b[2]*f, c[3]}
	}
}

// blur returns src convolved with a Gaussian of the given sigma, in two
// separable passes with edge clamping.
func (r *Renderer) blur(src *Image, sigma float32) *Image {
	if sigma <= 0 {
		return src
	}
	kernel := defaultKernelCache.get(sigma)
	half := len(kernel) / 2
	w, h := src.Width, src.Height

	tmp := NewImage(w, h)
	r.rows(h, func(y int) {
		for x := range w {
			var acc [4]float32
			for k, weight := range kernel {
				c := src.clamped(x+k-half, y)
				for i := range acc {
					acc[i] += c[i] * weight
				}
			}
			tmp.SetRGBA(x, y, acc)
		}
	})

	dst := NewImage(w, h)
	r.rows(h, func(y int) {
		for x := range w {
			var acc [4]float32
			for k, weight := range kernel {
				c := tmp.clamped(x, y+k-half)
				for i := range acc {
					acc[i] += c[i] * weight
				}
			}
			dst.SetRGBA(x, y, acc)
		}
	})
	return dst
}

func curvature(un crt.CurvatureUniforms, multisample bool, in *Image) shadeFunc {
	warped := func(u, v float32) [4]float32 {
		cx := u*2 - 1
		cy := v*2 - 1
		cx, cy = cx*(1+cy*cy*un.CurvatureX), cy*(1+cx*cx*un.CurvatureY)
		wu := cx*0.5 + 0.5
		wv := cy*0.5 + 0.5
		if wu < 0 || wu > 1 || wv < 0 || wv > 1 {
			return [4]float32{}
		}
		return in.sample(wu, wv)
	}
	if !multisample {
		return warped
	}
	dx := 0.25 / max(un.Resolution[0], 1)
	dy := 0.25 / max(un.Resolution[1], 1)
	return func(u, v float32) [4]float32 {
		var sum [4]float32
		for _, o := range [4][2]float32{{-dx, -dy}, {dx, -dy}, {-dx, dy}, {dx, dy}} {
			c := warped(u+o[0], v+o[1])
			for i := range sum {
				sum[i] += c[i] * 0.25
			}
		}
		return sum
	}
}

func vignette(un crt.VignetteUniforms, in *Image) shadeFunc {
	softness := max(un.Softness, 0.0001)
	return func(u, v float32) [4]float32 {
		du := u - 0.5
		dv := v - 0.5
		d := math32.Sqrt(du*du+dv*dv) * 2
		inner := 1 - smoothstep(un.Radius-softness, un.Radius, d)
		return scaleRGB(in.sample(u, v), mix(1-un.Intensity, 1, inner))
	}
}

func colorAdjustment(un crt.ColorAdjustmentUniforms, in *Image) shadeFunc {
	exp := 1 / max(un.Gamma, 0.0001)
	m := saturationMatrix(un.Saturation).scale(un.Brightness)
	return func(u, v float32) [4]float32 {
		c := in.sample(u, v)
		a := c[3]
		if a <= 0 {
			return c
		}
		straight := [4]float32{
			math32.Pow(max(c[0]/a, 0), exp),
			math32.Pow(max(c[1]/a, 0), exp),
			math32.Pow(max(c[2]/a, 0), exp),
			a,
		}
		s := m.apply(straight)
		return [4]float32{s[0] * a, s[1] * a, s[2] * a, a}
	}
}
