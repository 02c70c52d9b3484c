package core

import (
	"errors"
	"fmt"
)

// UnrecoverableError marks a runtime condition under which continuing to
// operate would put the validator's stake at risk of slashing. The supervisor
// treats the first one observed as terminal for the whole process. The
// message always names the corrective action.
type UnrecoverableError struct {
	Message string
}

func (e *UnrecoverableError) Error() string {
	return e.Message
}

func NewUnrecoverableError(format string, args ...interface{}) error {
	return &UnrecoverableError{Message: fmt.Sprintf(format, args...)}
}

func IsUnrecoverable(err error) bool {
	var target *UnrecoverableError

	return errors.As(err, &target)
}

// ValidationError marks a user-fixable precondition failure, surfaced to the
// operator during pre-flight checks. It does not by itself terminate the
// process when raised outside the main loops.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError

	return errors.As(err, &target)
}
