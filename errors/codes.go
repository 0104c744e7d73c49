package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lookup errors
const (
	// ErrCodeMissingColumn indicates a row lacks a column named by a filter.
	ErrCodeMissingColumn ErrorCode = "MISSING_COLUMN"
	// ErrCodeNotFound indicates a named table or fixture does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates an argument could not be used.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidFormat indicates a value or document has an unexpected shape.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeValidation indicates a configuration struct failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
)

// Source errors
const (
	// ErrCodeUnsupportedFormat indicates a dataset format with no loader.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeLoadFailed indicates a dataset could not be read or decoded.
	ErrCodeLoadFailed ErrorCode = "LOAD_FAILED"
)
