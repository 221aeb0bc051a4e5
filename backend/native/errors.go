package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNotInitialized is returned when the compiler has no device.
	ErrNotInitialized = errors.New("native: compiler not initialized")

	// ErrNoHAL is returned when a device provider does not expose hal types.
	ErrNoHAL = errors.New("native: provider does not expose HAL device and queue")

	// ErrNoProgram is returned when a filter was built without this compiler.
	ErrNoProgram = errors.New("native: filter program was not compiled by this backend")

	// ErrForeignTexture is returned for textures not created or wrapped by the renderer.
	ErrForeignTexture = errors.New("native: texture does not belong to this renderer")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("native: invalid dimensions")
)
