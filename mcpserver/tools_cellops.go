package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mdsheet/core/cellops"
	"github.com/vinodismyname/mdsheet/editor"
)

type cellAddr struct {
	DocumentID string `json:"document_id" jsonschema_description:"Handle returned by open_document"`
	Sheet      int    `json:"sheet" jsonschema_description:"0-based sheet index"`
	Table      int    `json:"table" jsonschema_description:"0-based table index within the sheet"`
}

type updateCellInput struct {
	cellAddr
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Value  string `json:"value"`
}

type insertRowInput struct {
	cellAddr
	Row int `json:"row" jsonschema_description:"Row index a blank row is inserted before"`
}

type rowIndicesInput struct {
	cellAddr
	Rows []int `json:"rows"`
}

type moveRowsInput struct {
	cellAddr
	Rows   []int `json:"rows"`
	Target int   `json:"target"`
}

type sortRowsInput struct {
	cellAddr
	Column    int  `json:"column"`
	Ascending bool `json:"ascending"`
}

type insertColumnInput struct {
	cellAddr
	Column int    `json:"column"`
	Name   string `json:"name"`
}

type columnIndicesInput struct {
	cellAddr
	Columns []int `json:"columns"`
}

type moveColumnsInput struct {
	cellAddr
	Columns []int `json:"columns"`
	Target  int   `json:"target"`
}

type updateColumnWidthInput struct {
	cellAddr
	Column int `json:"column"`
	Width  int `json:"width"`
}

type updateColumnFormatInput struct {
	cellAddr
	Column int    `json:"column"`
	Format string `json:"format"`
}

type updateColumnAlignInput struct {
	cellAddr
	Column int    `json:"column"`
	Align  string `json:"align" jsonschema_description:"left, center, or right"`
}

type updateColumnFilterInput struct {
	cellAddr
	Column int      `json:"column"`
	Hidden []string `json:"hidden" jsonschema_description:"Values to hide via row filtering"`
}

type pasteCellsInput struct {
	cellAddr
	StartRow       int        `json:"start_row"`
	StartColumn    int        `json:"start_col"`
	Data           [][]string `json:"data"`
	IncludeHeaders bool       `json:"include_headers"`
}

type moveCellsInput struct {
	cellAddr
	MinRow    int `json:"min_row"`
	MaxRow    int `json:"max_row"`
	MinColumn int `json:"min_col"`
	MaxColumn int `json:"max_col"`
	DestRow   int `json:"dest_row"`
	DestCol   int `json:"dest_col"`
}

func registerCellTools(s *server.MCPServer, reg *Registry, mgr *editor.Manager) {
	register := func(tool mcp.Tool) { reg.Register(tool) }

	updateCell := mcp.NewTool("update_cell",
		mcp.WithDescription("Set a single cell's value, growing the table when needed"),
		mcp.WithInputSchema[updateCellInput](),
	)
	register(updateCell)
	s.AddTool(updateCell, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateCellInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateCell(in.Sheet, in.Table, in.Row, in.Column, in.Value)
		}), nil
	}))

	insertRow := mcp.NewTool("insert_row",
		mcp.WithDescription("Insert a blank row before the given index"),
		mcp.WithInputSchema[insertRowInput](),
	)
	register(insertRow)
	s.AddTool(insertRow, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in insertRowInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.InsertRow(in.Sheet, in.Table, in.Row)
		}), nil
	}))

	deleteRows := mcp.NewTool("delete_rows",
		mcp.WithDescription("Remove the rows at the given indices"),
		mcp.WithInputSchema[rowIndicesInput](),
	)
	register(deleteRows)
	s.AddTool(deleteRows, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in rowIndicesInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.DeleteRows(in.Sheet, in.Table, in.Rows)
		}), nil
	}))

	moveRows := mcp.NewTool("move_rows",
		mcp.WithDescription("Relocate rows to just before target"),
		mcp.WithInputSchema[moveRowsInput](),
	)
	register(moveRows)
	s.AddTool(moveRows, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveRowsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.MoveRows(in.Sheet, in.Table, in.Rows, in.Target)
		}), nil
	}))

	sortRows := mcp.NewTool("sort_rows",
		mcp.WithDescription("Reorder all rows by a column's values"),
		mcp.WithInputSchema[sortRowsInput](),
	)
	register(sortRows)
	s.AddTool(sortRows, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in sortRowsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.SortRows(in.Sheet, in.Table, in.Column, in.Ascending)
		}), nil
	}))

	insertColumn := mcp.NewTool("insert_column",
		mcp.WithDescription("Insert a new column before the given index"),
		mcp.WithInputSchema[insertColumnInput](),
	)
	register(insertColumn)
	s.AddTool(insertColumn, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in insertColumnInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.InsertColumn(in.Sheet, in.Table, in.Column, in.Name)
		}), nil
	}))

	deleteColumns := mcp.NewTool("delete_columns",
		mcp.WithDescription("Remove the columns at the given indices"),
		mcp.WithInputSchema[columnIndicesInput](),
	)
	register(deleteColumns)
	s.AddTool(deleteColumns, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in columnIndicesInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.DeleteColumns(in.Sheet, in.Table, in.Columns)
		}), nil
	}))

	moveColumns := mcp.NewTool("move_columns",
		mcp.WithDescription("Relocate columns to just before target"),
		mcp.WithInputSchema[moveColumnsInput](),
	)
	register(moveColumns)
	s.AddTool(moveColumns, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveColumnsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.MoveColumns(in.Sheet, in.Table, in.Columns, in.Target)
		}), nil
	}))

	clearColumns := mcp.NewTool("clear_columns",
		mcp.WithDescription("Blank the cell contents of the given columns without removing them"),
		mcp.WithInputSchema[columnIndicesInput](),
	)
	register(clearColumns)
	s.AddTool(clearColumns, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in columnIndicesInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.ClearColumns(in.Sheet, in.Table, in.Columns)
		}), nil
	}))

	updateWidth := mcp.NewTool("update_column_width",
		mcp.WithDescription("Set display width metadata for a column"),
		mcp.WithInputSchema[updateColumnWidthInput](),
	)
	register(updateWidth)
	s.AddTool(updateWidth, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateColumnWidthInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateColumnWidth(in.Sheet, in.Table, in.Column, in.Width)
		}), nil
	}))

	updateFormat := mcp.NewTool("update_column_format",
		mcp.WithDescription("Set display format metadata for a column"),
		mcp.WithInputSchema[updateColumnFormatInput](),
	)
	register(updateFormat)
	s.AddTool(updateFormat, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateColumnFormatInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateColumnFormat(in.Sheet, in.Table, in.Column, in.Format)
		}), nil
	}))

	updateAlign := mcp.NewTool("update_column_align",
		mcp.WithDescription("Set the GFM alignment for a column"),
		mcp.WithInputSchema[updateColumnAlignInput](),
	)
	register(updateAlign)
	s.AddTool(updateAlign, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateColumnAlignInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateColumnAlign(in.Sheet, in.Table, in.Column, alignFromString(in.Align))
		}), nil
	}))

	updateFilter := mcp.NewTool("update_column_filter",
		mcp.WithDescription("Set the hidden-values filter for a column"),
		mcp.WithInputSchema[updateColumnFilterInput](),
	)
	register(updateFilter)
	s.AddTool(updateFilter, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in updateColumnFilterInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.UpdateColumnFilter(in.Sheet, in.Table, in.Column, in.Hidden)
		}), nil
	}))

	pasteCells := mcp.NewTool("paste_cells",
		mcp.WithDescription("Overwrite a block of cells starting at (start_row,start_col)"),
		mcp.WithInputSchema[pasteCellsInput](),
	)
	register(pasteCells)
	s.AddTool(pasteCells, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in pasteCellsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			return c.PasteCells(in.Sheet, in.Table, in.StartRow, in.StartColumn, in.Data, in.IncludeHeaders)
		}), nil
	}))

	moveCells := mcp.NewTool("move_cells",
		mcp.WithDescription("Relocate a rectangular block of cells to a new origin"),
		mcp.WithInputSchema[moveCellsInput](),
	)
	register(moveCells)
	s.AddTool(moveCells, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in moveCellsInput) (*mcp.CallToolResult, error) {
		return withDoc(mgr, in.DocumentID, func(c *editor.Context) editor.Result {
			rect := cellops.Rect{MinR: in.MinRow, MaxR: in.MaxRow, MinC: in.MinColumn, MaxC: in.MaxColumn}
			return c.MoveCells(in.Sheet, in.Table, rect, in.DestRow, in.DestCol)
		}), nil
	}))
}
