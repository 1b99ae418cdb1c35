// Package editorerr defines the canonical error taxonomy shared by every
// core package and the editor facade, without any MCP-specific result
// wrapping (that lives in mcpserver, the one package allowed to know
// about mcp-go).
package editorerr

import "fmt"

// Code is a canonical error kind.
type Code string

const (
	// InvalidIndex: out-of-range sheet/table/row/column index.
	InvalidIndex Code = "INVALID_INDEX"
	// MissingWorkbook: mutation attempted when no workbook is initialized.
	MissingWorkbook Code = "MISSING_WORKBOOK"
	// NotFound: document index out of range in a range lookup.
	NotFound Code = "NOT_FOUND"
	// ParseFailure: the underlying parser collaborator failed.
	ParseFailure Code = "PARSE_FAILURE"
)

// Error is the core's error type: a Code plus a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an *Error for code with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidIndexf is a convenience constructor for the common case.
func InvalidIndexf(format string, args ...any) *Error {
	return New(InvalidIndex, format, args...)
}

// NoWorkbook is the canonical MissingWorkbook error.
func NoWorkbook() *Error {
	return New(MissingWorkbook, "No workbook")
}

// NotFoundf is a convenience constructor for NotFound.
func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

// ParseFailuref is a convenience constructor for ParseFailure.
func ParseFailuref(format string, args ...any) *Error {
	return New(ParseFailure, format, args...)
}

// AsResult is the shape every mutation returns on failure: just the
// message text, matching the source's `{error}` contract.
func AsResult(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	return err.Error()
}
