package crt

// ValueType is the type of a tunable option.
type ValueType uint8

// Tunable value types.
const (
	ValueFloat ValueType = iota
	ValueInt
	ValueBool
)

// String returns the type name.
func (t ValueType) String() string {
	switch t {
	case ValueInt:
		return "int"
	case ValueBool:
		return "bool"
	default:
		return "float"
	}
}

// Tunable describes one option of a stage for tools that build controls or
// documentation. Min, Max and Step are the ranges a UI would offer; values
// outside them are accepted by the filters.
type Tunable struct {
	// Name is the Go field name, e.g. "PixelHeight".
	Name string

	// Key is the preset key, e.g. "pixel_height".
	Key string

	// Doc describes the option.
	Doc string

	Type    ValueType
	Default float64
	Min     float64
	Max     float64
	Step    float64

	// Structural options are compiled into the shader source, so changing
	// them requires a new filter.
	Structural bool
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Tunables returns the options of stage k in declaration order, or nil for an
// invalid kind.
func Tunables(k Kind) []Tunable {
	switch k {
	case KindRoundedCorners:
		d := DefaultRoundedCornersSettings()
		return []Tunable{
			{Name: "CornerRadius", Key: "corner_radius", Doc: "Radius of the rounded corners, relative to the image size.",
				Default: d.CornerRadius, Min: 0, Max: 0.2, Step: 0.01},
		}
	case KindScanlines:
		d := DefaultScanlinesSettings()
		return []Tunable{
			{Name: "PixelHeight", Key: "pixel_height", Doc: "Height of one scanline period in pixels.",
				Default: d.PixelHeight, Min: 2, Max: 8, Step: 0.1},
			{Name: "GapBrightness", Key: "gap_brightness", Doc: "Brightness of the gaps between scanlines.",
				Default: d.GapBrightness, Min: 0, Max: 1, Step: 0.1},
		}
	case KindPhosphorMask:
		d := DefaultPhosphorMaskSettings()
		return []Tunable{
			{Name: "PixelWidth", Key: "pixel_width", Doc: "Width of one red, green and blue triad in pixels.",
				Default: d.PixelWidth, Min: 3, Max: 12, Step: 0.05},
			{Name: "MaskBrightness", Key: "mask_brightness", Doc: "Brightness of the channels masked out by a stripe.",
				Default: d.MaskBrightness, Min: 0, Max: 1, Step: 0.1},
			{Name: "NumSamples", Key: "num_samples", Doc: "Horizontal samples per pixel used to antialias the stripes.",
				Type: ValueInt, Default: float64(d.NumSamples), Min: 1, Max: 16, Step: 1, Structural: true},
			{Name: "TransitionWidth", Key: "transition_width", Doc: "Width of the blend between neighbouring stripes.",
				Default: d.TransitionWidth, Min: 0, Max: 1, Step: 0.05},
		}
	case KindBloom:
		d := DefaultBloomSettings()
		return []Tunable{
			{Name: "Radius", Key: "radius", Doc: "Blur radius in pixels.",
				Default: d.Radius, Min: 1, Max: 10, Step: 0.5},
			{Name: "Cutoff", Key: "cutoff", Doc: "Brightness threshold for bloom.",
				Default: d.Cutoff, Min: 0, Max: 1, Step: 0.01},
			{Name: "Intensity", Key: "intensity", Doc: "Bloom intensity multiplier.",
				Default: d.Intensity, Min: 0, Max: 1, Step: 0.01},
			{Name: "EdgeBlur", Key: "edge_blur", Doc: "Softens the threshold for smooth transitions.",
				Default: d.EdgeBlur, Min: 0, Max: 5, Step: 0.1},
		}
	case KindCurvature:
		d := DefaultCurvatureSettings()
		return []Tunable{
			{Name: "CurvatureX", Key: "curvature_x", Doc: "Horizontal curvature amount.",
				Default: d.CurvatureX, Min: 0, Max: 0.6, Step: 0.01},
			{Name: "CurvatureY", Key: "curvature_y", Doc: "Vertical curvature amount.",
				Default: d.CurvatureY, Min: 0, Max: 0.6, Step: 0.01},
			{Name: "Multisampling", Key: "multisampling", Doc: "4x supersampling for smoother edges. Slower and slightly blurry.",
				Type: ValueBool, Default: b2f(d.Multisampling), Min: 0, Max: 1, Step: 1, Structural: true},
		}
	case KindVignette:
		d := DefaultVignetteSettings()
		return []Tunable{
			{Name: "Intensity", Key: "intensity", Doc: "Darkening at the edges. Negative values brighten.",
				Default: d.Intensity, Min: -1, Max: 1, Step: 0.1},
			{Name: "Radius", Key: "radius", Doc: "Distance from the center where the vignette starts.",
				Default: d.Radius, Min: 0, Max: 2, Step: 0.1},
			{Name: "Softness", Key: "softness", Doc: "Width of the vignette edge.",
				Default: d.Softness, Min: 0, Max: 1, Step: 0.05},
		}
	case KindColorAdjustment:
		d := DefaultColorAdjustmentSettings()
		return []Tunable{
			{Name: "Gamma", Key: "gamma", Doc: "Gamma correction, 1 leaves colors unchanged.",
				Default: d.Gamma, Min: 0.5, Max: 2, Step: 0.1},
			{Name: "Saturation", Key: "saturation", Doc: "Saturation, 0 is grayscale and 1 is unchanged.",
				Default: d.Saturation, Min: 0, Max: 2, Step: 0.1},
			{Name: "Brightness", Key: "brightness", Doc: "Brightness multiplier, 1 is unchanged.",
				Default: d.Brightness, Min: 0, Max: 2, Step: 0.1},
		}
	}
	return nil
}
