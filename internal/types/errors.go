package types

import (
	"fmt"
	"time"
)

// ValidationError reports client input that cannot be planned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CompositionError reports a script that cannot be split into enough beats.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string {
	return "compose script: " + e.Reason
}

// GenerationTimeout reports that an external script writer did not answer in time.
type GenerationTimeout struct {
	After time.Duration
}

func (e *GenerationTimeout) Error() string {
	return fmt.Sprintf("script generation timed out after %s", e.After)
}

func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
