// Package generator re-renders a mutated Workbook and computes the minimal
// line-range replacement needed to splice it back into the original
// document text. It is the only package outside core/parser that calls
// ToMarkdown.
package generator

import (
	"strings"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/core/scan"
	"github.com/vinodismyname/mdsheet/core/structure"
	"github.com/vinodismyname/mdsheet/core/taborder"
)

// Replacement describes a half-open line-range edit against the original
// text: lines [StartLine, EndLine) are replaced wholesale by Content (which
// carries its own trailing newline when EndLine falls short of EOF). EndCol
// is always 0 under the current line-granular editing model; it is carried
// so a host applying byte-precise edits has an explicit column to anchor
// on rather than assuming 0.
type Replacement struct {
	StartLine int
	EndLine   int
	EndCol    int
	Content   string
}

// Generate re-renders wb's Workbook region with parser.ToMarkdown and
// locates that region's current line span in originalText, pruning an
// explicit tab_order that has become redundant with the natural order
// implied by fs before rendering.
func Generate(originalText string, wb model.Workbook, schema parser.Schema, fs model.FileStructure) Replacement {
	schema = schema.Normalize()

	pruned := wb.Clone()
	if len(pruned.Metadata.TabOrder) > 0 && !taborder.IsMetadataRequired(pruned.Metadata.TabOrder, fs) {
		pruned.Metadata.TabOrder = nil
	}

	content := parser.ToMarkdown(pruned, schema)

	r := structure.WorkbookRange(originalText, schema.RootMarker, schema.SheetHeaderLevel)
	lines := scan.Lines(originalText)

	if r.End < len(lines) {
		content += "\n"
	}

	return Replacement{StartLine: r.Start, EndLine: r.End, EndCol: 0, Content: content}
}

// Apply splices rep into originalText, returning the new full document
// text. It is provided for callers (editor, tests) that want the whole
// document back rather than a standalone edit descriptor.
func Apply(originalText string, rep Replacement) string {
	lines := scan.Lines(originalText)
	start := rep.StartLine
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	end := rep.EndLine
	if end < start {
		end = start
	}
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[:start], "\n"))
	if start > 0 {
		b.WriteString("\n")
	}
	b.WriteString(rep.Content)
	if end < len(lines) {
		b.WriteString(strings.Join(lines[end:], "\n"))
	}
	return strings.TrimRight(b.String(), "\n") + trailingNewlineOf(originalText)
}

func trailingNewlineOf(text string) string {
	if strings.HasSuffix(text, "\n") {
		return "\n"
	}
	return ""
}
