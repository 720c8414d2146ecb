package planner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrSynthesisFailed = errors.New("trip synthesis failed")
)

// ValidationError lists every required request field that was left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingFields }

// UserMessage is the single notice shown for any validation failure.
func (e *ValidationError) UserMessage() string {
	return "Please fill in all required fields"
}

// SynthesisError reports a failure inside one of the generators. No partial
// plan accompanies it.
type SynthesisError struct {
	Cause error
}

func (e *SynthesisError) Error() string {
	if e.Cause == nil {
		return ErrSynthesisFailed.Error()
	}
	return fmt.Sprintf("%s: %v", ErrSynthesisFailed, e.Cause)
}

func (e *SynthesisError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrSynthesisFailed}
	}
	return []error{ErrSynthesisFailed, e.Cause}
}

func (e *SynthesisError) UserMessage() string {
	return "Failed to generate trip. Please try again."
}
