package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// CodeParseFailure signals that source text is not syntactically valid
	// in the grammar it was declared to be in. Distinct from every judgment
	// failure: a rate-limited remote call must never look like a syntax error.
	CodeParseFailure ErrorCode = "PARSE_FAILURE"

	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeNotSupported    ErrorCode = "NOT_SUPPORTED"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"

	// Judgment service failure kinds.
	CodeQuotaExceeded     ErrorCode = "QUOTA_EXCEEDED"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeTransportFailure  ErrorCode = "TRANSPORT_FAILURE"
)

const (
	CtxPath      = "path"
	CtxOperation = "operation"
	CtxLanguage  = "language"
	CtxModel     = "model"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

func AddContext(err error, key string, value interface{}) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.WithContext(key, value)
		return de
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]interface{}{key: value},
	}
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsJudgmentFailure reports whether err belongs to the remote judgment
// error family. Callers use it to keep "judgment unavailable" messaging
// apart from structural parse failures.
func IsJudgmentFailure(err error) bool {
	return IsCode(err, CodeQuotaExceeded) ||
		IsCode(err, CodeMalformedResponse) ||
		IsCode(err, CodeTransportFailure)
}
