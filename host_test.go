package crt

import (
	"errors"
	"fmt"
)

type fakeTexture struct {
	name string
	w, h int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type applyCall struct {
	kind          Kind
	input, output Texture
	clear         bool
	resolution    [2]float32
}

// fakeHost records every call instead of drawing.
type fakeHost struct {
	calls    []applyCall
	copies   int
	allocs   int
	released []Texture
	failOn   Kind
	fail     bool
	allocErr error
}

var errFakeRender = errors.New("fake render failure")

func (h *fakeHost) ApplyFilter(f Filter, input, output Texture, clear bool) error {
	c := applyCall{kind: f.Kind(), input: input, output: output, clear: clear}
	switch ff := f.(type) {
	case *ScanlinesFilter:
		c.resolution = ff.Uniforms.Resolution
	case *PhosphorMaskFilter:
		c.resolution = ff.Uniforms.Resolution
	case *BloomFilter:
		c.resolution = ff.Uniforms.Resolution
	case *CurvatureFilter:
		c.resolution = ff.Uniforms.Resolution
	}
	h.calls = append(h.calls, c)
	if h.fail && f.Kind() == h.failOn {
		return errFakeRender
	}
	return nil
}

func (h *fakeHost) NewTexture(w, ht int) (Texture, error) {
	if h.allocErr != nil {
		return nil, h.allocErr
	}
	h.allocs++
	return &fakeTexture{name: fmt.Sprintf("temp%d", h.allocs), w: w, h: ht}, nil
}

func (h *fakeHost) ReleaseTexture(t Texture) { h.released = append(h.released, t) }

func (h *fakeHost) CopyTexture(src, dst Texture) error {
	h.copies++
	return nil
}

// fakeCompiler hands out string handles and can be told to fail.
type fakeCompiler struct {
	compiled []string
	err      error
}

func (c *fakeCompiler) Name() string { return "fake" }

func (c *fakeCompiler) CompileProgram(desc *ProgramDescriptor) (any, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.compiled = append(c.compiled, desc.Label)
	return "handle:" + desc.Label, nil
}
