package crt

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven CRT stages.
//
// The numeric order of the constants is the pipeline order: the screen shape
// is clipped first, line and mask detail is drawn on the flat image, bloom
// is taken before curvature warps the image, and vignette and color grading
// come last.
type Kind uint8

// Stage kinds in pipeline order.
const (
	KindRoundedCorners Kind = iota
	KindScanlines
	KindPhosphorMask
	KindBloom
	KindCurvature
	KindVignette
	KindColorAdjustment
)

const numKinds = int(KindColorAdjustment) + 1

var kindNames = [numKinds]string{
	"rounded-corners",
	"scanlines",
	"phosphor-mask",
	"bloom",
	"curvature",
	"vignette",
	"color-adjustment",
}

var kindKeys = [numKinds]string{
	"rounded_corners",
	"scanlines",
	"phosphor_mask",
	"bloom",
	"curvature",
	"vignette",
	"color_adjustment",
}

// Kinds returns every stage kind in pipeline order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the hyphenated stage name, e.g. "phosphor-mask".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Key returns the configuration key of the stage, e.g. "phosphor_mask".
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kindKeys[k]
}

// Label returns the program label used for the stage's shader.
func (k Kind) Label() string {
	return k.String() + "-filter"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return int(k) < numKinds
}

// ResolutionDependent reports whether the stage reads the input size on
// every application.
func (k Kind) ResolutionDependent() bool {
	switch k {
	case KindScanlines, KindPhosphorMask, KindBloom, KindCurvature:
		return true
	default:
		return false
	}
}

// ParseKind parses a stage name. Hyphenated ("color-adjustment"),
// snake_case ("color_adjustment") and camelCase ("colorAdjustment")
// spellings are accepted.
func ParseKind(s string) (Kind, error) {
	norm := normalizeKindName(s)
	for i, name := range kindNames {
		if normalizeKindName(name) == norm {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("crt: unknown stage %q", s)
}

func normalizeKindName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
