// Package mcperr wraps pkg/editorerr codes (and ad hoc adapter failures)
// into mcp-go tool-result errors, carrying the editor's error taxonomy
// with a stable code/message/retryable/next-steps catalog per entry.
package mcperr

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Code defines a canonical MCP error code used across mdsheet tools.
type Code string

const (
	Validation      Code = "VALIDATION"
	InvalidHandle   Code = "INVALID_HANDLE"
	InvalidIndex    Code = "INVALID_INDEX"
	MissingWorkbook Code = "MISSING_WORKBOOK"
	NotFound        Code = "NOT_FOUND"
	ParseFailure    Code = "PARSE_FAILURE"

	BusyResource    Code = "BUSY_RESOURCE"
	Timeout         Code = "TIMEOUT"
	PayloadTooLarge Code = "PAYLOAD_TOO_LARGE"
	FileTooLarge    Code = "FILE_TOO_LARGE"

	OpenFailed        Code = "OPEN_FAILED"
	WriteFailed       Code = "WRITE_FAILED"
	ExportFailed      Code = "EXPORT_FAILED"
	UnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	PermissionDenied  Code = "PERMISSION_DENIED"
)

// Entry documents a code's standard message and retry semantics.
type Entry struct {
	Code      Code
	Message   string
	Retryable bool
	NextSteps []string
}

var catalog = map[Code]Entry{
	Validation:      {Code: Validation, Message: "invalid inputs", Retryable: true, NextSteps: []string{"Correct the inputs per the tool schema and retry"}},
	InvalidHandle:   {Code: InvalidHandle, Message: "document handle not found or expired", Retryable: true, NextSteps: []string{"Reopen the document via path and retry"}},
	InvalidIndex:    {Code: InvalidIndex, Message: "index out of range", Retryable: true, NextSteps: []string{"Call get_state to verify current sheet/table/row/column indices"}},
	MissingWorkbook: {Code: MissingWorkbook, Message: "document has no Workbook region", Retryable: false, NextSteps: []string{"Add a Workbook heading before editing sheets"}},
	NotFound:        {Code: NotFound, Message: "section not found", Retryable: true, NextSteps: []string{"Call get_state to verify document indices"}},
	ParseFailure:    {Code: ParseFailure, Message: "failed to parse the current document text", Retryable: false, NextSteps: []string{"Inspect the Markdown for malformed tables or unterminated metadata comments"}},

	BusyResource:    {Code: BusyResource, Message: "concurrent request limit reached", Retryable: true, NextSteps: []string{"Retry after a short delay"}},
	Timeout:         {Code: Timeout, Message: "operation exceeded configured time limit", Retryable: true, NextSteps: []string{"Narrow the operation scope or retry"}},
	PayloadTooLarge: {Code: PayloadTooLarge, Message: "request payload exceeds configured size", Retryable: true, NextSteps: []string{"Reduce the range or batch size"}},
	FileTooLarge:    {Code: FileTooLarge, Message: "file exceeds configured size", Retryable: false, NextSteps: []string{"Use a smaller document or increase the limit"}},

	OpenFailed:        {Code: OpenFailed, Message: "failed to open document", Retryable: true, NextSteps: []string{"Verify path, permissions, and extension (.md/.markdown)"}},
	WriteFailed:        {Code: WriteFailed, Message: "failed to save document", Retryable: true, NextSteps: []string{"Verify write permissions on the backing path"}},
	ExportFailed:       {Code: ExportFailed, Message: "failed to export workbook", Retryable: true, NextSteps: []string{"Verify destination path and retry"}},
	UnsupportedFormat:  {Code: UnsupportedFormat, Message: "unsupported document format", Retryable: false, NextSteps: []string{"Use a .md or .markdown file"}},
	PermissionDenied:   {Code: PermissionDenied, Message: "insufficient permissions to access path", Retryable: false, NextSteps: []string{"Adjust permissions or choose an allowed directory"}},
}

func normalize(code Code, msg string) string {
	base := strings.TrimSpace(msg)
	e, ok := catalog[code]
	if !ok {
		if base == "" {
			return string(code)
		}
		return fmt.Sprintf("%s: %s", string(code), base)
	}
	if base == "" {
		base = e.Message
	}
	guidance := ""
	if len(e.NextSteps) > 0 {
		guidance = " | nextSteps: " + strings.Join(e.NextSteps, "; ")
	}
	return fmt.Sprintf("%s: %s%s", e.Code, base, guidance)
}

// FromText parses a "CODE: message" string (the shape of editorerr.Error's
// Error method)
// and enriches it into an MCP tool error result. A string with no
// recognized code prefix is treated as a plain Validation message.
func FromText(text string) *mcp.CallToolResult {
	t := strings.TrimSpace(text)
	if t == "" {
		return mcp.NewToolResultError(normalize(Validation, ""))
	}
	parts := strings.SplitN(t, ":", 2)
	code := Code(strings.TrimSpace(parts[0]))
	if _, known := catalog[code]; !known {
		return mcp.NewToolResultError(normalize(Validation, t))
	}
	msg := ""
	if len(parts) > 1 {
		msg = strings.TrimSpace(parts[1])
	}
	return mcp.NewToolResultError(normalize(code, msg))
}

// New returns an MCP error result for a given code and message override.
func New(code Code, message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(normalize(code, message))
}

// Wrapf formats details and returns an MCP error result for the code.
func Wrapf(code Code, format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError(normalize(code, fmt.Sprintf(format, args...)))
}
