package crt

import (
	"encoding/binary"
	"math"
)

// uniformWriter packs uniform values following WGSL uniform address space
// layout: f32 aligned to 4, vec2<f32> aligned to 8, struct size rounded up
// to 16.
type uniformWriter struct {
	buf []byte
}

func (w *uniformWriter) f32(v float32) {
	w.align(4)
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *uniformWriter) vec2(v [2]float32) {
	w.align(8)
	w.f32(v[0])
	w.f32(v[1])
}

func (w *uniformWriter) align(n int) {
	for len(w.buf)%n != 0 {
		w.buf = append(w.buf, 0)
	}
}

func (w *uniformWriter) bytes() []byte {
	w.align(16)
	return w.buf
}

// resolution converts a texture size to the vec2 uniform form.
func resolution(width, height int) [2]float32 {
	return [2]float32{float32(width), float32(height)}
}
