package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mdsheet/editor"
)

type reorderTabsInput struct {
	DocumentID   string `json:"document_id"`
	FromTabIndex int    `json:"from_tab_index" jsonschema_description:"Index of the dragged tab in the current visual tab strip"`
	ToTabIndex   int    `json:"to_tab_index" jsonschema_description:"Gap index (0..tab count) where the dragged tab is dropped"`
}

func registerReorderTool(s *server.MCPServer, reg *Registry, mgr *editor.Manager) {
	reorderTabs := mcp.NewTool("reorder_tabs",
		mcp.WithDescription("Drag a tab from one position to another in the visual tab strip, classified as no-op, metadata-only, physical, or physical-plus-metadata"),
		mcp.WithInputSchema[reorderTabsInput](),
	)
	reg.Register(reorderTabs)
	s.AddTool(reorderTabs, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in reorderTabsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.ReorderTabs(in.FromTabIndex, in.ToTabIndex)
		}), nil
	}))
}
