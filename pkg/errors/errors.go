// Package errors provides structured error types for shannonfano.
//
// Every failure the engine can produce is attributable to its input, so each
// error carries a machine-readable [Code] that front ends map to a prompt,
// an HTTP status, or an exit message:
//   - Validation codes: the caller should re-prompt the user
//   - PRECISION: a probability has no terminating decimal within the digit cap
//   - PARTITION_DEGENERATE: the split guard fired on pathological float input
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTooFewSymbols, "need at least %d symbols", 2)
//	if errors.IsValidation(err) {
//	    // re-prompt
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput           Code = "INVALID_INPUT"
	ErrCodeInvalidFormat          Code = "INVALID_FORMAT"
	ErrCodeDuplicateOrEmptyName   Code = "DUPLICATE_OR_EMPTY_NAME"
	ErrCodeInvalidProbability     Code = "INVALID_PROBABILITY"
	ErrCodeProbabilitySumMismatch Code = "PROBABILITY_SUM_MISMATCH"
	ErrCodeTooFewSymbols          Code = "TOO_FEW_SYMBOLS"
	ErrCodeEmptyInput             Code = "EMPTY_INPUT"
	ErrCodeInvalidCharacters      Code = "INVALID_CHARACTERS"

	// Numeric errors
	ErrCodePrecision           Code = "PRECISION"
	ErrCodePartitionDegenerate Code = "PARTITION_DEGENERATE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

var validationCodes = map[Code]bool{
	ErrCodeInvalidInput:           true,
	ErrCodeInvalidFormat:          true,
	ErrCodeDuplicateOrEmptyName:   true,
	ErrCodeInvalidProbability:     true,
	ErrCodeProbabilitySumMismatch: true,
	ErrCodeTooFewSymbols:          true,
	ErrCodeEmptyInput:             true,
	ErrCodeInvalidCharacters:      true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Join combines errs into one error, dropping nil entries. It returns nil
// when no error remains. [Is], [GetCode] and [UserMessage] see every
// joined error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain, including joined errors, looking for an
// *Error with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error. For joined errors the
// code of the first *Error is returned.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure, i.e. bad input
// the caller can fix by re-prompting.
func IsValidation(err error) bool {
	return validationCodes[GetCode(err)]
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// Joined errors produce one message per line.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msg string
		for i, inner := range joined.Unwrap() {
			if i > 0 {
				msg += "\n"
			}
			msg += UserMessage(inner)
		}
		return msg
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
