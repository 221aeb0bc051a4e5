package shader

import (
	_ "embed"
)

// Embedded WGSL sources.

//go:embed vertex.wgsl
var vertexSource string

//go:embed rounded_corners.wgsl
var roundedCornersSource string

//go:embed scanlines.wgsl
var scanlinesSource string

//go:embed phosphor_mask.wgsl
var phosphorMaskSource string

//go:embed bloom.wgsl
var bloomSource string

//go:embed curvature.wgsl
var curvatureSource string

//go:embed vignette.wgsl
var vignetteSource string

//go:embed color_adjustment.wgsl
var colorAdjustmentSource string

// Entry points shared by every stage module.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Placeholder names consumed by the stage sources.
const (
	// NumSamples is the unrolled sample count of the phosphor mask.
	NumSamples = "NUM_SAMPLES"

	// Multisample toggles 4x supersampling in the curvature stage.
	Multisample = "MULTISAMPLE"
)

// Vertex returns the fullscreen-triangle vertex stage. It declares the
// VertexOutput struct consumed by every fragment source.
func Vertex() string {
	return vertexSource
}

// Module joins the vertex stage and a fragment source into one WGSL module.
func Module(fragment string) string {
	return vertexSource + "\n" + fragment
}

// RoundedCornersSource returns the raw rounded-corners fragment source.
func RoundedCornersSource() string {
	return roundedCornersSource
}

// ScanlinesSource returns the raw scanlines fragment source.
func ScanlinesSource() string {
	return scanlinesSource
}

// PhosphorMaskSource returns the raw phosphor-mask fragment source.
// It contains the {{NUM_SAMPLES}} placeholder.
func PhosphorMaskSource() string {
	return phosphorMaskSource
}

// BloomSource returns the raw bloom fragment source.
func BloomSource() string {
	return bloomSource
}

// CurvatureSource returns the raw curvature fragment source.
// It contains the {{MULTISAMPLE}} placeholder.
func CurvatureSource() string {
	return curvatureSource
}

// VignetteSource returns the raw vignette fragment source.
func VignetteSource() string {
	return vignetteSource
}

// ColorAdjustmentSource returns the raw color-adjustment fragment source.
func ColorAdjustmentSource() string {
	return colorAdjustmentSource
}
