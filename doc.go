// Package crt provides CRT post-processing filters for the gogpu stack.
//
// # Overview
//
// A CRT look is built from seven stages, each a fragment shader with a small
// block of uniforms:
//
//   - rounded corners: clips the image to a rounded screen shape
//   - scanlines: darkens the gaps between horizontal lines
//   - phosphor mask: draws a red, green and blue aperture grille
//   - bloom: adds a soft glow around bright areas
//   - curvature: bends the image like the glass of a tube
//   - vignette: darkens the screen towards its edges
//   - color adjustment: gamma, saturation and brightness
//
// Stages always run in that order. Each stage can be omitted or configured
// independently.
//
// # Quick Start
//
//	import "github.com/gogpu/crt"
//
//	// All stages with default settings.
//	filters, err := crt.Filters(crt.PipelineOptions{})
//
//	// Stronger scanlines, no bloom.
//	filters, err = crt.Filters(crt.PipelineOptions{
//		Scanlines: crt.On(crt.ScanlinesOptions{GapBrightness: crt.Float(0.3)}),
//		Bloom:     crt.Off[crt.BloomOptions](),
//	})
//
// Options use pointer fields; nil fields keep the stage default. The
// Default*Settings and Merge*Options functions expose the merge directly.
//
// # Rendering
//
// Filters do not draw by themselves. A rendering host implements Renderer
// (and Host to run whole pipelines) and receives each filter with its Program
// and packed uniforms. The software package is a CPU host; backend/native
// compiles programs on gogpu/wgpu when registered with RegisterCompiler.
//
// Stages whose uniforms depend on the image size (scanlines, phosphor mask,
// bloom and curvature) update their resolution uniform from the input texture
// on every Apply.
//
// # Shader Sources
//
// The WGSL sources live in the shader package. Options that change the shader
// itself, such as the phosphor mask sample count, are substituted into
// {{NAME}} placeholders when a filter is constructed.
//
// # Presets
//
// LoadPreset and ParsePreset read pipeline options from TOML or YAML:
//
//	bloom = false
//
//	[scanlines]
//	gap_brightness = 0.3
//
// # Logging
//
// Diagnostics go through log/slog. Nothing is logged until SetLogger is
// called.
package crt
