package domain

import "errors"

// Error kinds surfaced to callers. Use errors.Is to classify a wrapped error.
var (
	// Invalid or empty input; never retried.
	ErrBusinessRule = errors.New("business rule violation")
	// Directions oracle unreachable or returned an unusable payload.
	ErrExternalService = errors.New("external service failure")
	// Requested record does not exist.
	ErrNotFound = errors.New("not found")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// BusinessRule returns an error carrying msg that matches ErrBusinessRule.
func BusinessRule(msg string) error {
	return &kindError{kind: ErrBusinessRule, msg: msg}
}

// ExternalService wraps err so that it matches ErrExternalService.
func ExternalService(op string, err error) error {
	return &externalError{op: op, err: err}
}

type externalError struct {
	op  string
	err error
}

func (e *externalError) Error() string { return e.op + ": " + e.err.Error() }

func (e *externalError) Unwrap() []error { return []error{ErrExternalService, e.err} }
