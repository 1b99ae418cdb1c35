// Package parser implements the opaque GFM-parsing collaborator's contract:
// ParseWorkbook, ToMarkdown, and a plain-data JSON projection. The
// rest of core/* treats this package as an external dependency; no other
// package reaches into its internals.
//
// Grounded on core/scan's line-walking idiom: no example repo in the
// retrieval pack ships a Markdown-table-plus-metadata-comment parser
// compatible with this bespoke wire format, so this is the one component
// built without a third-party parsing library (see DESIGN.md).
package parser

// Schema is the recognized configuration.
type Schema struct {
	RootMarker          string
	SheetHeaderLevel    int
	TableHeaderLevel    int
	CaptureDescription  bool
	ColumnSeparator     string
	HeaderSeparatorChar string
	RequireOuterPipes   bool
	StripWhitespace     bool
}

// DefaultSchema returns the "# Tables" entry-path defaults.
func DefaultSchema() Schema {
	return Schema{
		RootMarker:          "# Tables",
		SheetHeaderLevel:    2,
		TableHeaderLevel:    3,
		CaptureDescription:  true,
		ColumnSeparator:     "|",
		HeaderSeparatorChar: "-",
		RequireOuterPipes:   true,
		StripWhitespace:     true,
	}
}

// Normalize fills unset fields with defaults and ignores unknown fields
// (config.Options carries those separately via its Unknown bucket).
func (s Schema) Normalize() Schema {
	out := s
	if out.RootMarker == "" {
		out.RootMarker = "# Tables"
	}
	if out.SheetHeaderLevel <= 0 {
		out.SheetHeaderLevel = 2
	}
	if out.TableHeaderLevel <= out.SheetHeaderLevel {
		out.TableHeaderLevel = out.SheetHeaderLevel + 1
	}
	if out.ColumnSeparator == "" {
		out.ColumnSeparator = "|"
	}
	if out.HeaderSeparatorChar == "" {
		out.HeaderSeparatorChar = "-"
	}
	return out
}
