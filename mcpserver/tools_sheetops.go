package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mdsheet/editor"
)

type addTableInput struct {
	DocumentID string   `json:"document_id"`
	Sheet      int      `json:"sheet"`
	Name       string   `json:"name"`
	Headers    []string `json:"headers"`
	AfterIndex int      `json:"after_index" jsonschema_description:"Table index to insert after; out of range (e.g. -1) appends"`
}

type deleteTableInput struct {
	DocumentID string `json:"document_id"`
	Sheet      int    `json:"sheet"`
	Table      int    `json:"table"`
}

type renameTableInput struct {
	DocumentID string `json:"document_id"`
	Sheet      int    `json:"sheet"`
	Table      int    `json:"table"`
	Name       string `json:"name"`
}

type updateTableMetadataInput struct {
	DocumentID string         `json:"document_id"`
	Sheet      int            `json:"sheet"`
	Table      int            `json:"table"`
	Metadata   map[string]any `json:"metadata" jsonschema_description:"Free-form key/value pairs merged into the table's metadata"`
}

type addSheetInput struct {
	DocumentID string   `json:"document_id"`
	Name       string   `json:"name" jsonschema_description:"Sheet name; defaulted when empty"`
	Columns    []string `json:"columns" jsonschema_description:"Headers for an initial starting table"`
	AfterIndex int      `json:"after_index" jsonschema_description:"Sheet index to insert after; out of range (e.g. -1) appends"`
}

type deleteSheetInput struct {
	DocumentID string `json:"document_id"`
	Sheet      int    `json:"sheet"`
}

type moveSheetInput struct {
	DocumentID          string `json:"document_id"`
	From                int    `json:"from"`
	To                  int    `json:"to"`
	TargetTabOrderIndex int    `json:"target_tab_order_index" jsonschema_description:"Explicit tab_order slot to update, -1 when not applicable"`
	ClearTabOrder       bool   `json:"clear_tab_order" jsonschema_description:"Drop any explicit tab_order override entirely"`
}

func registerSheetTools(s *server.MCPServer, reg *Registry, mgr *editor.Manager) {
	register := func(tool mcp.Tool) { reg.Register(tool) }

	addTable := mcp.NewTool("add_table",
		mcp.WithDescription("Insert a new table with the given headers into a sheet"),
		mcp.WithInputSchema[addTableInput](),
	)
	register(addTable)
	s.AddTool(addTable, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in addTableInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.AddTable(in.Sheet, in.Name, in.Headers, in.AfterIndex)
		}), nil
	}))

	deleteTable := mcp.NewTool("delete_table",
		mcp.WithDescription("Remove a table from a sheet"),
		mcp.WithInputSchema[deleteTableInput](),
	)
	register(deleteTable)
	s.AddTool(deleteTable, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in deleteTableInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.DeleteTable(in.Sheet, in.Table)
		}), nil
	}))

	renameTable := mcp.NewTool("rename_table",
		mcp.WithDescription("Rename a table within a sheet"),
		mcp.WithInputSchema[renameTableInput](),
	)
	register(renameTable)
	s.AddTool(renameTable, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in renameTableInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.RenameTable(in.Sheet, in.Table, in.Name)
		}), nil
	}))

	updateTableMetadata := mcp.NewTool("update_table_metadata",
		mcp.WithDescription("Merge key/value pairs into a table's free-form metadata"),
		mcp.WithInputSchema[updateTableMetadataInput](),
	)
	register(updateTableMetadata)
	s.AddTool(updateTableMetadata, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateTableMetadataInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateTableMetadata(in.Sheet, in.Table, in.Metadata)
		}), nil
	}))

	addSheet := mcp.NewTool("add_sheet",
		mcp.WithDescription("Append a new sheet, optionally seeded with a starting table"),
		mcp.WithInputSchema[addSheetInput](),
	)
	register(addSheet)
	s.AddTool(addSheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in addSheetInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.AddSheet(in.Name, in.Columns, in.AfterIndex)
		}), nil
	}))

	deleteSheet := mcp.NewTool("delete_sheet",
		mcp.WithDescription("Remove a sheet from the workbook"),
		mcp.WithInputSchema[deleteSheetInput](),
	)
	register(deleteSheet)
	s.AddTool(deleteSheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in deleteSheetInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.DeleteSheet(in.Sheet)
		}), nil
	}))

	moveSheet := mcp.NewTool("move_sheet",
		mcp.WithDescription("Relocate a sheet to a new position, optionally updating tab_order"),
		mcp.WithInputSchema[moveSheetInput](),
	)
	register(moveSheet)
	s.AddTool(moveSheet, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveSheetInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.MoveSheet(in.From, in.To, in.TargetTabOrderIndex, in.ClearTabOrder)
		}), nil
	}))
}
