package cloth

import (
	"errors"
	"fmt"
)

// Domain errors for cloth construction.
var (
	// ErrInvalidLayout indicates grid dimensions or spacing that cannot form a cloth.
	ErrInvalidLayout = errors.New("cloth: invalid layout")

	// ErrUnknownMaterial indicates a material name outside the built-in fabrics.
	ErrUnknownMaterial = errors.New("cloth: unknown material")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("cloth: invalid configuration")

	// ErrUnstable indicates particle positions diverged to NaN or Inf.
	ErrUnstable = errors.New("cloth: simulation unstable (non-finite position)")
)

// ConfigError names the offending field of a rejected configuration.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s = %v", e.Wrapped, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// FrameError wraps an error with the frame at which it was detected.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
