package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/editor"
	"github.com/vinodismyname/mdsheet/export"
	"github.com/vinodismyname/mdsheet/pkg/mcperr"
)

// mutationResult mirrors editor.Result as the tool-facing structured
// output: the same content/line-range/error/fileChanged shape the
// core's mutating operations return, wrapped for MCP transport.
type mutationResult struct {
	Content     string `json:"content,omitempty"`
	StartLine   int    `json:"startLine,omitempty"`
	EndLine     int    `json:"endLine,omitempty"`
	FileChanged bool   `json:"fileChanged"`
}

func toToolResult(res editor.Result, summary string) *mcp.CallToolResult {
	if res.Error != "" {
		return mcp.NewToolResultError(res.Error)
	}
	out := mutationResult{Content: res.Content, StartLine: res.StartLine, EndLine: res.EndLine, FileChanged: res.FileChanged}
	return mcp.NewToolResultStructured(out, summary)
}

// withDoc resolves document_id against mgr and runs fn under a write lock,
// converting handle-lookup failures into INVALID_HANDLE tool errors.
func withDoc(mgr *editor.Manager, documentID string, fn func(*editor.Context) editor.Result) *mcp.CallToolResult {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return mcperr.New(mcperr.Validation, "document_id is required")
	}
	var res editor.Result
	err := mgr.WithWrite(documentID, func(c *editor.Context) error {
		res = fn(c)
		return nil
	})
	if err != nil {
		return mcperr.Wrapf(mcperr.InvalidHandle, "%v", err)
	}
	return toToolResult(res, "applied")
}

func alignFromString(s string) model.Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return model.AlignCenter
	case "right":
		return model.AlignRight
	default:
		return model.AlignLeft
	}
}

// --- document lifecycle ---

type openDocumentInput struct {
	Path string `json:"path" jsonschema_description:"Allowed .md/.markdown path to open"`
}

type openDocumentOutput struct {
	DocumentID string `json:"documentId"`
}

type documentIDInput struct {
	DocumentID string `json:"document_id" jsonschema_description:"Handle returned by open_document"`
}

type exportXLSXInput struct {
	DocumentID string `json:"document_id"`
	Dest       string `json:"dest" jsonschema_description:"Destination .xlsx path"`
}

type exportXLSXOutput struct {
	Dest string `json:"dest"`
}

// RegisterTools defines every editor operation as an MCP tool against a
// shared *editor.Manager using the typed-handler idiom.
func RegisterTools(s *server.MCPServer, reg *Registry, mgr *editor.Manager) {
	register := func(tool mcp.Tool) { reg.Register(tool) }

	openDoc := mcp.NewTool("open_document",
		mcp.WithDescription("Open a Markdown workbook document and return a document handle"),
		mcp.WithInputSchema[openDocumentInput](),
		mcp.WithOutputSchema[openDocumentOutput](),
	)
	register(openDoc)
	s.AddTool(openDoc, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in openDocumentInput) (*mcp.CallToolResult, error) {
		path := strings.TrimSpace(in.Path)
		if path == "" {
			return mcperr.New(mcperr.Validation, "path is required"), nil
		}
		id, err := mgr.Open(ctx, path)
		if err != nil {
			return mcperr.Wrapf(mcperr.OpenFailed, "%v", err), nil
		}
		return mcp.NewToolResultStructured(openDocumentOutput{DocumentID: id}, "document opened"), nil
	}))

	getState := mcp.NewTool("get_state",
		mcp.WithDescription("Return the current Workbook tree and FileStructure snapshot"),
		mcp.WithInputSchema[documentIDInput](),
	)
	register(getState)
	s.AddTool(getState, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in documentIDInput) (*mcp.CallToolResult, error) {
		var state map[string]any
		err := mgr.WithRead(in.DocumentID, func(c *editor.Context) error {
			state = c.GetState()
			return nil
		})
		if err != nil {
			return mcperr.Wrapf(mcperr.InvalidHandle, "%v", err), nil
		}
		return mcp.NewToolResultStructured(state, "state read"), nil
	}))

	saveDoc := mcp.NewTool("save_document",
		mcp.WithDescription("Write the document's current text back to its backing file"),
		mcp.WithInputSchema[documentIDInput](),
	)
	register(saveDoc)
	s.AddTool(saveDoc, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in documentIDInput) (*mcp.CallToolResult, error) {
		if err := mgr.Save(in.DocumentID); err != nil {
			return mcperr.Wrapf(mcperr.WriteFailed, "%v", err), nil
		}
		return mcp.NewToolResultStructured(struct{}{}, "document saved"), nil
	}))

	closeDoc := mcp.NewTool("close_document",
		mcp.WithDescription("Close a document handle and release its capacity slot"),
		mcp.WithInputSchema[documentIDInput](),
	)
	register(closeDoc)
	s.AddTool(closeDoc, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in documentIDInput) (*mcp.CallToolResult, error) {
		if err := mgr.CloseHandle(ctx, in.DocumentID); err != nil {
			return mcperr.Wrapf(mcperr.InvalidHandle, "%v", err), nil
		}
		return mcp.NewToolResultStructured(struct{}{}, "document closed"), nil
	}))

	exportTool := mcp.NewTool("export_xlsx",
		mcp.WithDescription("Render the document's current Workbook snapshot to a .xlsx file"),
		mcp.WithInputSchema[exportXLSXInput](),
		mcp.WithOutputSchema[exportXLSXOutput](),
	)
	register(exportTool)
	s.AddTool(exportTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in exportXLSXInput) (*mcp.CallToolResult, error) {
		dest := strings.TrimSpace(in.Dest)
		if dest == "" {
			return mcperr.New(mcperr.Validation, "dest is required"), nil
		}
		var wb model.Workbook
		err := mgr.WithRead(in.DocumentID, func(c *editor.Context) error {
			wb = c.Workbook()
			return nil
		})
		if err != nil {
			return mcperr.Wrapf(mcperr.InvalidHandle, "%v", err), nil
		}
		if err := export.WriteXLSX(wb, dest); err != nil {
			return mcperr.Wrapf(mcperr.ExportFailed, "%v", err), nil
		}
		return mcp.NewToolResultStructured(exportXLSXOutput{Dest: dest}, "exported"), nil
	}))

	registerCellTools(s, reg, mgr)
	registerSheetTools(s, reg, mgr)
	registerDocTools(s, reg, mgr)
	registerReorderTool(s, reg, mgr)
}
