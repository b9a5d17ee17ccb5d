package common

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a conversion failure kind. Codes are stable and are
// printed in user-facing messages.
type ErrorCode string

const (
	// EmptySource indicates the input array had no records to take a header from
	EmptySource ErrorCode = "EMPTY_SOURCE"
	// MissingField indicates a record lacks one of the header fields
	MissingField ErrorCode = "MISSING_FIELD"
	// FileExists indicates the output path exists and overwriting was not allowed
	FileExists ErrorCode = "FILE_EXISTS"
	// IO indicates a permission, path or disk failure
	IO ErrorCode = "IO"
	// MalformedInput indicates the input is not a JSON array of flat objects
	MalformedInput ErrorCode = "MALFORMED_INPUT"
	// Encoding indicates text could not be represented in the target encoding
	Encoding ErrorCode = "ENCODING"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrEmptySource    = &Error{Code: EmptySource}
	ErrMissingField   = &Error{Code: MissingField}
	ErrFileExists     = &Error{Code: FileExists}
	ErrIO             = &Error{Code: IO}
	ErrMalformedInput = &Error{Code: MalformedInput}
	ErrEncoding       = &Error{Code: Encoding}
)

// Error is the error type returned by every conversion step.
// Record is a zero-based record index, or -1 when not applicable.
type Error struct {
	Code   ErrorCode
	Path   string
	Record int
	Field  string
	Err    error
}

// NewError creates an Error not tied to a record.
func NewError(code ErrorCode, path string, err error) *Error {
	return &Error{Code: code, Path: path, Record: -1, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	if e.Path != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Path)
	}
	if e.Record >= 0 {
		fmt.Fprintf(&sb, ": record %d", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, ": field %q", e.Field)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// WithPath sets path on the first *Error in err's chain if it has none.
// err is returned unchanged.
func WithPath(err error, path string) error {
	var ce *Error
	if errors.As(err, &ce) && ce.Path == "" {
		ce.Path = path
	}
	return err
}
