package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		values      Values
		want        string
		wantMissing []string
	}{
		{"true", "foo {{A}} bar", Values{"A": true}, "foo 1 bar", nil},
		{"false", "foo {{A}} bar", Values{"A": false}, "foo 0 bar", nil},
		{"missing", "foo {{B}} bar", Values{"A": 1}, "foo {{B}} bar", []string{"B"}},
		{"repeated", "{{A}}-{{A}}", Values{"A": 5}, "5-5", nil},
		{"float", "x = {{X}};", Values{"X": 0.25}, "x = 0.25;", nil},
		{"integral float", "x = {{X}};", Values{"X": 4.0}, "x = 4;", nil},
		{"float32", "x = {{X}};", Values{"X": float32(0.1)}, "x = 0.1;", nil},
		{"string", "{{TYPE}} x;", Values{"TYPE": "f32"}, "f32 x;", nil},
		{"no tokens", "plain", Values{"A": 1}, "plain", nil},
		{"single braces", "{A} {{ A }}", Values{"A": 1}, "{A} {{ A }}", nil},
		{"mixed", "{{A}} {{B}} {{B}} {{C}}", Values{"A": 2}, "2 {{B}} {{B}} {{C}}", []string{"B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := Replace(tt.source, tt.values)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestReplaceIdempotent(t *testing.T) {
	values := Values{"NUM_SAMPLES": 3, "MULTISAMPLE": true}
	src := "{{NUM_SAMPLES}} {{MULTISAMPLE}} {{NUM_SAMPLES}}"

	once, _ := Replace(src, values)
	twice, missing := Replace(once, values)

	assert.Equal(t, "3 1 3", once)
	assert.Equal(t, once, twice)
	assert.Empty(t, missing)
}

func TestReplaceFuncReportsEachOccurrence(t *testing.T) {
	var warned []string
	got := ReplaceFunc("{{X}} {{Y}} {{X}}", Values{"Y": "y"}, func(name string) {
		warned = append(warned, name)
	})

	assert.Equal(t, "{{X}} y {{X}}", got)
	assert.Equal(t, []string{"X", "X"}, warned)
}

func TestReplaceFuncNilWarn(t *testing.T) {
	assert.NotPanics(t, func() {
		got := ReplaceFunc("{{X}}", nil, nil)
		assert.Equal(t, "{{X}}", got)
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"A", "B_2"}, Names("{{A}} {{B_2}} {{A}}"))
	assert.Nil(t, Names("none here"))
	assert.Equal(t, []string{NumSamples}, Names(PhosphorMaskSource()))
	assert.Equal(t, []string{Multisample}, Names(CurvatureSource()))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{true, "1"},
		{false, "0"},
		{int64(-3), "-3"},
		{uint32(7), "7"},
		{1.5, "1.5"},
		{"abc", "abc"},
		{[]int{1}, "[1]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "FormatValue(%#v)", tt.in)
	}
}
