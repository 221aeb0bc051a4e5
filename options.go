package crt

// Float returns a pointer to v, for filling optional option fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// override copies *src into *dst when src is set.
func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Stage configures one pipeline stage. The zero value includes the stage
// with default settings.
type Stage[T any] struct {
	// Disabled omits the stage from the pipeline.
	Disabled bool

	// Options are merged over the stage defaults. Nil fields keep the default.
	Options T
}

// Off returns a stage configuration that omits the stage.
func Off[T any]() Stage[T] {
	return Stage[T]{Disabled: true}
}

// On returns a stage configuration that includes the stage with opts merged
// over its defaults.
func On[T any](opts T) Stage[T] {
	return Stage[T]{Options: opts}
}

// Enabled reports whether the stage is part of the pipeline.
func (s Stage[T]) Enabled() bool {
	return !s.Disabled
}
