package crt

import "fmt"

// PipelineOptions selects and configures the stages of a CRT pipeline.
//
// The zero value enables every stage with default settings. Use Off to omit
// a stage and On to override some of its options.
type PipelineOptions struct {
	RoundedCorners  Stage[RoundedCornersOptions]  `toml:"rounded_corners" yaml:"rounded_corners"`
	Scanlines       Stage[ScanlinesOptions]       `toml:"scanlines" yaml:"scanlines"`
	PhosphorMask    Stage[PhosphorMaskOptions]    `toml:"phosphor_mask" yaml:"phosphor_mask"`
	Bloom           Stage[BloomOptions]           `toml:"bloom" yaml:"bloom"`
	Curvature       Stage[CurvatureOptions]       `toml:"curvature" yaml:"curvature"`
	Vignette        Stage[VignetteOptions]        `toml:"vignette" yaml:"vignette"`
	ColorAdjustment Stage[ColorAdjustmentOptions] `toml:"color_adjustment" yaml:"color_adjustment"`
}

// Enabled reports whether the stage of kind k is part of the pipeline.
func (o *PipelineOptions) Enabled(k Kind) bool {
	switch k {
	case KindRoundedCorners:
		return o.RoundedCorners.Enabled()
	case KindScanlines:
		return o.Scanlines.Enabled()
	case KindPhosphorMask:
		return o.PhosphorMask.Enabled()
	case KindBloom:
		return o.Bloom.Enabled()
	case KindCurvature:
		return o.Curvature.Enabled()
	case KindVignette:
		return o.Vignette.Enabled()
	case KindColorAdjustment:
		return o.ColorAdjustment.Enabled()
	}
	return false
}

// SetEnabled includes or omits the stage of kind k, keeping its options.
// Invalid kinds are ignored.
func (o *PipelineOptions) SetEnabled(k Kind, on bool) {
	if s := o.stage(k); s != nil {
		s.setEnabled(on)
	}
}

// Filters builds the enabled stages of opts in pipeline order.
//
// Disabled stages are skipped; every enabled stage gets its options merged
// over the stage defaults. When all stages are disabled the result is an
// empty, non-nil slice. The only error source is program compilation.
func Filters(opts PipelineOptions) ([]Filter, error) {
	filters := make([]Filter, 0, numKinds)
	var err error

	if filters, err = appendStage(filters, opts.RoundedCorners, NewRoundedCornersFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.Scanlines, NewScanlinesFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.PhosphorMask, NewPhosphorMaskFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.Bloom, NewBloomFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.Curvature, NewCurvatureFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.Vignette, NewVignetteFilter); err != nil {
		return nil, err
	}
	if filters, err = appendStage(filters, opts.ColorAdjustment, NewColorAdjustmentFilter); err != nil {
		return nil, err
	}

	Logger().Debug("crt: pipeline built", "stages", len(filters))
	return filters, nil
}

func appendStage[T any, F Filter](filters []Filter, s Stage[T], build func(T) (F, error)) ([]Filter, error) {
	if !s.Enabled() {
		return filters, nil
	}
	f, err := build(s.Options)
	if err != nil {
		return nil, err
	}
	return append(filters, f), nil
}

// Pipeline is an ordered chain of CRT stages.
type Pipeline struct {
	filters []Filter
}

// NewPipeline builds the stages selected by opts.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	filters, err := Filters(opts)
	if err != nil {
		return nil, err
	}
	return &Pipeline{filters: filters}, nil
}

// NewPipelineFromFilters wraps an existing sequence. Nil entries are skipped
// and the order is kept as given.
func NewPipelineFromFilters(filters ...Filter) *Pipeline {
	p := &Pipeline{filters: make([]Filter, 0, len(filters))}
	for _, f := range filters {
		if f != nil {
			p.filters = append(p.filters, f)
		}
	}
	return p
}

// Filters returns the stages in application order. The slice is shared with
// the pipeline and must not be modified.
func (p *Pipeline) Filters() []Filter { return p.filters }

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.filters) }

// Kinds returns the kind of every stage in application order.
func (p *Pipeline) Kinds() []Kind {
	kinds := make([]Kind, len(p.filters))
	for i, f := range p.filters {
		kinds[i] = f.Kind()
	}
	return kinds
}

// Find returns the first stage of kind k, or nil.
func (p *Pipeline) Find(k Kind) Filter {
	for _, f := range p.filters {
		if f.Kind() == k {
			return f
		}
	}
	return nil
}

// Resize updates the resolution uniform of every size-dependent stage.
// Apply does this itself; Resize is for hosts that bypass Apply.
func (p *Pipeline) Resize(width, height int) {
	for _, f := range p.filters {
		if r, ok := f.(Resizer); ok {
			r.Resize(width, height)
		}
	}
}

// Apply runs src through every stage and writes the result to dst.
//
// With no stages src is copied to dst. A single stage draws directly from src
// to dst. Longer chains alternate between two intermediate textures
// allocated from h and released before Apply returns. Every stage clears its
// output.
func (p *Pipeline) Apply(h Host, src, dst Texture) error {
	if h == nil {
		return ErrNilRenderer
	}
	if src == nil || dst == nil {
		return ErrNilTexture
	}

	switch len(p.filters) {
	case 0:
		return h.CopyTexture(src, dst)
	case 1:
		return p.apply(h, 0, src, dst)
	}

	w, ht := src.Size()
	var temps [2]Texture
	defer func() {
		for _, t := range temps {
			if t != nil {
				h.ReleaseTexture(t)
			}
		}
	}()
	for i := range temps {
		t, err := h.NewTexture(w, ht)
		if err != nil {
			return fmt.Errorf("crt: allocate intermediate texture: %w", err)
		}
		temps[i] = t
	}

	input := src
	last := len(p.filters) - 1
	for i := range p.filters {
		output := dst
		if i < last {
			output = temps[i%2]
		}
		if err := p.apply(h, i, input, output); err != nil {
			return err
		}
		input = output
	}
	return nil
}

func (p *Pipeline) apply(r Renderer, i int, input, output Texture) error {
	f := p.filters[i]
	if err := f.Apply(r, input, output, true); err != nil {
		return fmt.Errorf("crt: apply %s: %w", f.Kind(), err)
	}
	return nil
}
