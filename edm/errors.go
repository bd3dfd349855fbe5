package edm

import "github.com/pkg/errors"

// ParameterError reports detector options or input that cannot be used.
// It is the only error kind the detectors return.
type ParameterError struct {
	Message string
}

func (e *ParameterError) Error() string { return e.Message }

func newParameterError(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&ParameterError{Message: err.Error()})
}

// IsParameterError returns true if the cause of err is a ParameterError.
func IsParameterError(err error) bool {
	_, ok := errors.Cause(err).(*ParameterError)
	return ok
}
