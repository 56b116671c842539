package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when the caller supplies no observations.
	// The engine never fabricates a plan out of nothing.
	ErrEmptyInput = errors.New("no weather observations provided")
)

// ValidationError reports a malformed input field. The engine never repairs
// or fabricates input data. Index is -1 when the field is not tied to a
// particular observation.
type ValidationError struct {
	Index int    // position in the input array, or -1
	Field string // offending field name
	Value string // value as received
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("observation[%d]: invalid %s %q", e.Index, e.Field, e.Value)
}

// ConfigError reports policy thresholds that were never supplied. Every
// threshold is required; the engine applies no implicit defaults.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("policy missing required thresholds: %s", strings.Join(e.Missing, ", "))
}
