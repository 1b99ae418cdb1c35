package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mdsheet/editor"
)

type addDocumentInput struct {
	DocumentID               string `json:"document_id"`
	Title                    string `json:"title"`
	AfterDocumentIndex       int    `json:"after_document_index" jsonschema_description:"Document index to insert after, -1 when not applicable"`
	AfterWorkbook            bool   `json:"after_workbook" jsonschema_description:"Insert immediately after the Workbook region"`
	InsertAfterTabOrderIndex int    `json:"insert_after_tab_order_index" jsonschema_description:"tab_order slot to insert after when an explicit override is tracked, -1 otherwise"`
}

type renameDocumentInput struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Title      string `json:"title"`
}

type documentIndexInput struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
}

type moveDocumentSectionInput struct {
	DocumentID       string `json:"document_id"`
	From             int    `json:"from"`
	To               int    `json:"to"`
	ToAfterWorkbook  bool   `json:"to_after_workbook"`
	ToBeforeWorkbook bool   `json:"to_before_workbook"`
}

type moveWorkbookSectionInput struct {
	DocumentID      string `json:"document_id"`
	ToDocumentIndex int    `json:"to_document_index"`
	ToAfterDoc      bool   `json:"to_after_doc"`
	ToBeforeDoc     bool   `json:"to_before_doc"`
}

func registerDocTools(s *server.MCPServer, reg *Registry, mgr *editor.Manager) {
	register := func(tool mcp.Tool) { reg.Register(tool) }

	addDocument := mcp.NewTool("add_document",
		mcp.WithDescription("Insert a new Document region titled title"),
		mcp.WithInputSchema[addDocumentInput](),
	)
	register(addDocument)
	s.AddTool(addDocument, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in addDocumentInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.AddDocument(in.Title, in.AfterDocumentIndex, in.AfterWorkbook, in.InsertAfterTabOrderIndex)
		}), nil
	}))

	renameDocument := mcp.NewTool("rename_document",
		mcp.WithDescription("Replace a Document's heading text"),
		mcp.WithInputSchema[renameDocumentInput](),
	)
	register(renameDocument)
	s.AddTool(renameDocument, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in renameDocumentInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.RenameDocument(in.Index, in.Title)
		}), nil
	}))

	deleteDocument := mcp.NewTool("delete_document",
		mcp.WithDescription("Remove a Document's heading and body"),
		mcp.WithInputSchema[documentIndexInput](),
	)
	register(deleteDocument)
	s.AddTool(deleteDocument, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in documentIndexInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.DeleteDocument(in.Index)
		}), nil
	}))

	moveDocumentSection := mcp.NewTool("move_document_section",
		mcp.WithDescription("Relocate a Document region to a new position, or before/after the Workbook"),
		mcp.WithInputSchema[moveDocumentSectionInput](),
	)
	register(moveDocumentSection)
	s.AddTool(moveDocumentSection, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveDocumentSectionInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.MoveDocumentSection(in.From, in.To, in.ToAfterWorkbook, in.ToBeforeWorkbook)
		}), nil
	}))

	moveWorkbookSection := mcp.NewTool("move_workbook_section",
		mcp.WithDescription("Relocate the Workbook region immediately before or after a Document"),
		mcp.WithInputSchema[moveWorkbookSectionInput](),
	)
	register(moveWorkbookSection)
	s.AddTool(moveWorkbookSection, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveWorkbookSectionInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.MoveWorkbookSection(in.ToDocumentIndex, in.ToAfterDoc, in.ToBeforeDoc)
		}), nil
	}))
}
