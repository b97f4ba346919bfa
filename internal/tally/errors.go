package tally

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is returned when a tally runs past its deadline; no partial
	// result is produced.
	ErrTimeout = errors.New("tally timed out")

	// ErrInvalidConfig is wrapped by every configuration validation error.
	ErrInvalidConfig = errors.New("invalid tally config")

	// ErrUnsupported marks a recognized option whose requested mode is not
	// implemented.
	ErrUnsupported = errors.New("unsupported")
)

// ConfigError describes one invalid Config field.
type ConfigError struct {
	Field string
	Err   error
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", err.Field, err.Err)
}

// Unwrap allows errors.Is to match both ErrInvalidConfig and the underlying
// cause.
func (err *ConfigError) Unwrap() []error { return []error{ErrInvalidConfig, err.Err} }

// checkpoint returns a non-nil error if ctx is done, naming the pipeline stage
// that noticed. A passed deadline counts even before ctx is marked done.
func checkpoint(ctx context.Context, stage string) error {
	err := ctx.Err()
	if dl, ok := ctx.Deadline(); ok && err == nil && !time.Now().Before(dl) {
		err = context.DeadlineExceeded
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w during %s: %w", ErrTimeout, stage, err)
	default:
		return fmt.Errorf("tally canceled during %s: %w", stage, err)
	}
}
