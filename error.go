package konvert

import (
	"errors"
	"fmt"
)

var (
	ErrEncodeFailure = errors.New("konvert: encode failure")
	ErrDecodeFailure = errors.New("konvert: decode failure")

	errTooDeep = errors.New("value nesting exceeds maximum depth")
)

type convertError struct {
	op          string
	kind        error
	message     string
	previousErr error
}

func newEncodeError(op string, message string, previousErr error) *convertError {
	return &convertError{
		op:          op,
		kind:        ErrEncodeFailure,
		message:     message,
		previousErr: previousErr,
	}
}

func newDecodeError(op string, message string, previousErr error) *convertError {
	return &convertError{
		op:          op,
		kind:        ErrDecodeFailure,
		message:     message,
		previousErr: previousErr,
	}
}

func (e convertError) Error() string {
	if e.previousErr == nil {
		return fmt.Sprintf("%s error: %s", e.op, e.message)
	}
	return fmt.Sprintf("%s error: %s (%s)", e.op, e.message, e.previousErr.Error())
}

func (e convertError) Is(target error) bool {
	return target == e.kind
}

func (e convertError) Unwrap() error {
	return e.previousErr
}
