package dispersal

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed construction errors via errors.Is.
var (
	ErrInvalidDistribution  = errors.New("invalid distribution")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidEnvironment   = errors.New("invalid environment")
)

// InvalidDistributionError reports a percentage outside [0, 100] or a set of
// percentages that does not sum to exactly 100.
type InvalidDistributionError struct {
	Kind  string // "wind" or "fall"
	Label string // offending label, empty when the sum is wrong
	Value int
	Sum   int
}

func (e *InvalidDistributionError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s distribution: %s percentage %d outside [0,100]", e.Kind, e.Label, e.Value)
	}
	return fmt.Sprintf("%s distribution: percentages must sum to 100 (currently %d)", e.Kind, e.Sum)
}

func (e *InvalidDistributionError) Unwrap() error { return ErrInvalidDistribution }

// InvalidConfigurationError reports a model setting that cannot drive a run.
type InvalidConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s=%d %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// InvalidEnvironmentError reports an unusable grid or release point.
type InvalidEnvironmentError struct {
	Reason string
}

func (e *InvalidEnvironmentError) Error() string {
	return "environment: " + e.Reason
}

func (e *InvalidEnvironmentError) Unwrap() error { return ErrInvalidEnvironment }
