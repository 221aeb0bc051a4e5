package software

// Rec. 709 luminance weights, shared with the WGSL stages.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// colorMatrix is a 4x5 row-major color matrix; the fifth column is an offset.
// It operates on straight (non-premultiplied) RGBA.
type colorMatrix [20]float32

// saturationMatrix blends between luminance (s = 0) and identity (s = 1).
// Values above 1 oversaturate.
func saturationMatrix(s float32) colorMatrix {
	inv := 1 - s
	return colorMatrix{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// scale multiplies the color rows of m by f.
func (m colorMatrix) scale(f float32) colorMatrix {
	for i := range 15 {
		m[i] *= f
	}
	return m
}

// apply transforms a straight RGBA color.
func (m *colorMatrix) apply(c [4]float32) [4]float32 {
	var out [4]float32
	for row := range 4 {
		o := row * 5
		out[row] = m[o]*c[0] + m[o+1]*c[1] + m[o+2]*c[2] + m[o+3]*c[3] + m[o+4]
	}
	return out
}
