// Package shader holds the WGSL sources of the CRT stages and the
// placeholder substitution used to specialize them before compilation.
//
// Fragment sources are embedded verbatim and exported through accessor
// functions for callers that want to run their own substitution or inspect
// the code. Every fragment source expects the [Vertex] stage to be prepended;
// [Module] does that.
//
// Placeholders are tokens of the form {{NAME}}. They carry compile-time
// constants such as an unrolled sample count:
//
//	src, missing := shader.Replace(shader.PhosphorMaskSource(), shader.Values{
//	    "NUM_SAMPLES": 6,
//	})
//
// Tokens without a value are left in place so the shader compiler reports
// them; the caller receives their names as diagnostics.
package shader
