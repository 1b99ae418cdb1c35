package registry

import (
	"context"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// WriteToolFilter conditionally hides document-mutating tools unless
// explicitly enabled. Enable by setting environment variable
// MDSHEET_ENABLE_WRITES=true.
type WriteToolFilter struct {
	allowWrites bool
}

// NewWriteToolFilterFromEnv constructs a filter using MDSHEET_ENABLE_WRITES.
func NewWriteToolFilterFromEnv() *WriteToolFilter {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MDSHEET_ENABLE_WRITES")))
	allow := v == "1" || v == "true" || v == "yes"
	return &WriteToolFilter{allowWrites: allow}
}

// nonMutatingTools lists the tool names that never change document content,
// so they remain discoverable even when writes are disabled.
var nonMutatingTools = map[string]struct{}{
	"open_document":  {},
	"get_state":      {},
	"close_document": {},
}

// FilterTools implements server tool filtering semantics: when writes are
// disabled, every tool except the read-only lifecycle operations above is
// excluded from discovery.
func (f *WriteToolFilter) FilterTools(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	if f.allowWrites {
		return tools
	}
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if _, ok := nonMutatingTools[t.Name]; ok {
			out = append(out, t)
		}
	}
	return out
}

