package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Move rejections. These are expected outcomes of trying a pour,
	// not faults.
	ErrSameTube                ErrorCode = "SAME_TUBE"
	ErrDestinationFull         ErrorCode = "DESTINATION_FULL"
	ErrSourceEmpty             ErrorCode = "SOURCE_EMPTY"
	ErrSourceAlreadySolved     ErrorCode = "SOURCE_ALREADY_SOLVED"
	ErrColorMismatchOrOverflow ErrorCode = "COLOR_MISMATCH_OR_OVERFLOW"

	// Search errors
	ErrSearchLimit     ErrorCode = "SEARCH_LIMIT"
	ErrSearchCancelled ErrorCode = "SEARCH_CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Input errors
	ErrParse       ErrorCode = "PARSE"
	ErrImageDecode ErrorCode = "IMAGE_DECODE"
	ErrNoTubes     ErrorCode = "NO_TUBES"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Cache errors
	ErrCache ErrorCode = "CACHE"
)

// rejections lists the codes returned for illegal pours.
var rejections = map[ErrorCode]bool{
	ErrSameTube:                true,
	ErrDestinationFull:         true,
	ErrSourceEmpty:             true,
	ErrSourceAlreadySolved:     true,
	ErrColorMismatchOrOverflow: true,
}

// TubesortError represents a structured error with code and details
type TubesortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TubesortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TubesortError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TubesortError) Is(target error) bool {
	var targetErr *TubesortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TubesortError with the given code and message
func New(code ErrorCode, message string) *TubesortError {
	return &TubesortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TubesortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TubesortError {
	return &TubesortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TubesortError
func Wrap(err error, code ErrorCode, message string) *TubesortError {
	if err == nil {
		return nil
	}
	return &TubesortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TubesortError {
	if err == nil {
		return nil
	}
	return &TubesortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TubesortError) WithDetail(key string, value interface{}) *TubesortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TubesortError) WithDetails(details map[string]interface{}) *TubesortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tsErr *TubesortError
	if errors.As(err, &tsErr) {
		return tsErr.Code == code
	}
	return false
}

// IsRejection reports whether err is one of the move rejection codes.
func IsRejection(err error) bool {
	return rejections[GetErrorCode(err)]
}

// IsRejectionCode reports whether code is one of the move rejection codes.
func IsRejectionCode(code ErrorCode) bool {
	return rejections[code]
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TubesortError
func GetErrorCode(err error) ErrorCode {
	var tsErr *TubesortError
	if errors.As(err, &tsErr) {
		return tsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TubesortError
func GetErrorDetails(err error) map[string]interface{} {
	var tsErr *TubesortError
	if errors.As(err, &tsErr) {
		return tsErr.Details
	}
	return nil
}
