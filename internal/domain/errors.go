package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrRepository       = errors.New("repository error")
	ErrCredential       = errors.New("credential error")
	ErrDirtyRepository  = errors.New("repository has uncommitted changes")
	ErrRemoteAPI        = errors.New("remote api error")
	ErrReleaseInProcess = errors.New("another release is in progress")
)

// StepError reports which release step failed. Message is what the operator sees.
type StepError struct {
	Step    StepType
	Message string
	// Status is the HTTP status of the failing call, 0 when none was received.
	Status int
	Kind   error
	Err    error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("step %s failed: %s", e.Step, e.Message)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is matches the step's error kind so callers can use errors.Is(err, ErrRemoteAPI).
func (e *StepError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// UserMessage returns the operator-facing message for err.
func UserMessage(err error) string {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Message
	}
	if errors.Is(err, ErrReleaseInProcess) {
		return "Another release is in progress"
	}
	return err.Error()
}
