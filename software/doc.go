// Package software is a CPU rendering host for CRT filters.
//
// Renderer implements crt.Host on Image values, evaluating the same
// per-pixel math as the WGSL stages. It needs no GPU, which makes it useful
// for tests, command-line tools and servers:
//
//	img := software.FromImage(src)
//	out := software.NewImage(img.Width, img.Height)
//
//	p, err := crt.NewPipeline(crt.PipelineOptions{})
//	err = p.Apply(software.NewRenderer(), img, out)
//
//	png.Encode(w, out.ToRGBA())
//
// Rows are processed in parallel. Results match the GPU stages closely but
// not bit for bit: bloom uses a separable Gaussian blur instead of the
// shader's fixed tap grid.
package software
