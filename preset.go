package crt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// PresetFormat is the encoding of a preset file.
type PresetFormat uint8

// Preset formats.
const (
	FormatTOML PresetFormat = iota
	FormatYAML
)

// String returns the format name.
func (f PresetFormat) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("PresetFormat(%d)", uint8(f))
	}
}

// FormatForPath picks the preset format from a file extension.
func FormatForPath(path string) (PresetFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("crt: unsupported preset extension %q", filepath.Ext(path))
}

// LoadPreset reads a TOML or YAML preset file. The format is taken from the
// file extension.
func LoadPreset(path string) (PipelineOptions, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return PipelineOptions{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return PipelineOptions{}, fmt.Errorf("crt: read preset: %w", err)
	}
	return ParsePreset(data, format)
}

// ParsePreset decodes pipeline options from a preset document.
//
// Every top-level key is a stage key (see Kind.Key). Its value is false to
// omit the stage, true to include it with defaults, or a table of options
// merged over the defaults. Stages that are not mentioned are included with
// defaults. Unknown stage or option keys are errors.
func ParsePreset(data []byte, format PresetFormat) (PipelineOptions, error) {
	switch format {
	case FormatTOML:
		return parseTOMLPreset(data)
	case FormatYAML:
		return parseYAMLPreset(data)
	}
	return PipelineOptions{}, fmt.Errorf("crt: unsupported preset format %s", format)
}

func parseTOMLPreset(data []byte) (PipelineOptions, error) {
	var opts PipelineOptions
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return opts, fmt.Errorf("crt: decode toml preset: %w", err)
	}

	for _, key := range slices.Sorted(maps.Keys(doc)) {
		s, err := opts.stageForKey(key)
		if err != nil {
			return PipelineOptions{}, err
		}
		switch v := doc[key].(type) {
		case bool:
			s.setEnabled(v)
		case map[string]any:
			raw, err := toml.Marshal(v)
			if err != nil {
				return PipelineOptions{}, fmt.Errorf("crt: stage %q: %w", key, err)
			}
			dec := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
			if err := dec.Decode(s.options()); err != nil {
				return PipelineOptions{}, fmt.Errorf("crt: stage %q: %w", key, err)
			}
			s.setEnabled(true)
		default:
			return PipelineOptions{}, fmt.Errorf("crt: stage %q: want bool or table, got %T", key, v)
		}
	}
	return opts, nil
}

func parseYAMLPreset(data []byte) (PipelineOptions, error) {
	var opts PipelineOptions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return PipelineOptions{}, fmt.Errorf("crt: decode yaml preset: %w", err)
	}
	return opts, nil
}

// UnmarshalYAML accepts a boolean or a mapping of stage options.
func (s *Stage[T]) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var on bool
		if err := value.Decode(&on); err != nil {
			return fmt.Errorf("crt: stage must be a bool or a mapping: %w", err)
		}
		s.setEnabled(on)
		return nil
	case yaml.MappingNode:
		// Node.Decode does not apply KnownFields, so decode a copy strictly.
		raw, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&s.Options); err != nil {
			return err
		}
		s.setEnabled(true)
		return nil
	}
	return fmt.Errorf("crt: line %d: stage must be a bool or a mapping", value.Line)
}

// stageValue is the type-erased view of a Stage used by preset decoding.
type stageValue interface {
	setEnabled(on bool)
	options() any
}

func (s *Stage[T]) setEnabled(on bool) { s.Disabled = !on }
func (s *Stage[T]) options() any       { return &s.Options }

func (o *PipelineOptions) stageForKey(key string) (stageValue, error) {
	for _, k := range Kinds() {
		if k.Key() == key {
			return o.stage(k), nil
		}
	}
	return nil, fmt.Errorf("crt: unknown stage key %q", key)
}

func (o *PipelineOptions) stage(k Kind) stageValue {
	switch k {
	case KindRoundedCorners:
		return &o.RoundedCorners
	case KindScanlines:
		return &o.Scanlines
	case KindPhosphorMask:
		return &o.PhosphorMask
	case KindBloom:
		return &o.Bloom
	case KindCurvature:
		return &o.Curvature
	case KindVignette:
		return &o.Vignette
	case KindColorAdjustment:
		return &o.ColorAdjustment
	}
	return nil
}

// ArcadePreset returns a strong arcade-cabinet look: thick scanlines, a
// visible aperture grille, heavy curvature and a bright, saturated grade.
func ArcadePreset() PipelineOptions {
	return PipelineOptions{
		RoundedCorners: On(RoundedCornersOptions{CornerRadius: Float(0.06)}),
		Scanlines: On(ScanlinesOptions{
			PixelHeight:   Float(4),
			GapBrightness: Float(0.3),
		}),
		PhosphorMask: On(PhosphorMaskOptions{
			PixelWidth:      Float(4.5),
			MaskBrightness:  Float(0.3),
			NumSamples:      Int(6),
			TransitionWidth: Float(0.3),
		}),
		Bloom: On(BloomOptions{
			Radius:    Float(6.5),
			Cutoff:    Float(0.88),
			Intensity: Float(0.14),
			EdgeBlur:  Float(1.5),
		}),
		Curvature: On(CurvatureOptions{
			CurvatureX:    Float(0.35),
			CurvatureY:    Float(0.35),
			Multisampling: Bool(true),
		}),
		Vignette: On(VignetteOptions{
			Intensity: Float(0.6),
			Radius:    Float(1.3),
		}),
		ColorAdjustment: On(ColorAdjustmentOptions{
			Gamma:      Float(1),
			Saturation: Float(1.2),
			Brightness: Float(1.5),
		}),
	}
}
