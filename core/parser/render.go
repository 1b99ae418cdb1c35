package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/vinodismyname/mdsheet/core/model"
)

func renderRow(cells []string, sep string, outerPipes bool) string {
	inner := strings.Join(cells, " "+sep+" ")
	if outerPipes {
		return sep + " " + inner + " " + sep
	}
	return inner
}

func delimiterCell(a model.Alignment, sepChar string) string {
	dash := strings.Repeat(sepChar, 3)
	switch a {
	case model.AlignCenter:
		return ":" + dash + ":"
	case model.AlignRight:
		return dash + ":"
	default:
		return dash
	}
}

func tabOrderToJSON(items []model.TabOrderItem) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"kind": string(it.Kind), "index": it.Index}
	}
	return out
}

func workbookMetadataJSON(m model.WorkbookMetadata) (string, bool) {
	if m.Empty() {
		return "", false
	}
	payload := map[string]any{}
	for k, v := range m.Extra {
		payload[k] = v
	}
	if len(m.TabOrder) > 0 {
		payload["tab_order"] = tabOrderToJSON(m.TabOrder)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func tableMetadataEmpty(m model.TableMetadata) bool {
	v := m.Visual
	return len(v.Columns) == 0 && len(v.Validation) == 0 && len(v.Filters) == 0 &&
		len(v.Formulas) == 0 && v.ID == 0 && len(m.Validation) == 0 && len(m.Extra) == 0
}

func tableMetadataJSON(m model.TableMetadata) (string, bool) {
	if tableMetadataEmpty(m) {
		return "", false
	}
	payload := map[string]any{}
	for k, v := range m.Extra {
		payload[k] = v
	}
	payload["visual"] = m.Visual
	if len(m.Validation) > 0 {
		payload["validation"] = m.Validation
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// ToMarkdown renders the Workbook region's Markdown, including the
// workbook metadata comment when non-empty and per-table metadata comments
// when non-empty. It does not include a trailing newline; the generator
// (core/generator) appends one when more lines follow the Workbook region.
func ToMarkdown(wb model.Workbook, schema Schema) string {
	schema = schema.Normalize()
	var lines []string

	heading := schema.RootMarker
	if heading == "" {
		heading = "# " + wb.Name
	}
	lines = append(lines, heading)

	if payload, ok := workbookMetadataJSON(wb.Metadata); ok {
		lines = append(lines, "<!-- "+workbookMetaMarker+" "+payload+" -->")
	}

	if wb.RootContent != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(wb.RootContent, "\n")...)
	}

	for _, sheet := range wb.Sheets {
		lines = append(lines, "")
		lines = append(lines, strings.Repeat("#", schema.SheetHeaderLevel)+" "+sheet.Name)
		for _, table := range sheet.Tables {
			lines = append(lines, "")
			lines = append(lines, strings.Repeat("#", schema.TableHeaderLevel)+" "+table.Name)

			if table.Description != "" {
				lines = append(lines, "")
				lines = append(lines, strings.Split(table.Description, "\n")...)
			}
			if payload, ok := tableMetadataJSON(table.Metadata); ok {
				lines = append(lines, "")
				lines = append(lines, "<!-- "+tableMetaMarker+" "+payload+" -->")
			}

			lines = append(lines, "")
			lines = append(lines, renderTableBody(table, schema)...)
		}
	}

	return strings.Join(lines, "\n")
}

func renderTableBody(t model.Table, schema Schema) []string {
	n := len(t.Headers)
	var out []string
	out = append(out, renderRow(t.Headers, schema.ColumnSeparator, schema.RequireOuterPipes))

	delim := make([]string, n)
	for i := range delim {
		delim[i] = delimiterCell(t.AlignmentAt(i), schema.HeaderSeparatorChar)
	}
	out = append(out, renderRow(delim, schema.ColumnSeparator, schema.RequireOuterPipes))

	for _, row := range t.Rows {
		padded := make([]string, n)
		copy(padded, row)
		out = append(out, renderRow(padded, schema.ColumnSeparator, schema.RequireOuterPipes))
	}
	return out
}

// JSON returns a plain-data representation of wb suitable for JSON
// serialization, with integer-string metadata map keys preserved as JSON
// object keys.
func JSON(wb model.Workbook) map[string]any {
	sheets := make([]map[string]any, len(wb.Sheets))
	for i, s := range wb.Sheets {
		tables := make([]map[string]any, len(s.Tables))
		for j, t := range s.Tables {
			tables[j] = map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"headers":     t.Headers,
				"alignments":  t.Alignments,
				"rows":        t.Rows,
				"metadata":    t.Metadata,
			}
		}
		sheets[i] = map[string]any{
			"name":     s.Name,
			"tables":   tables,
			"metadata": s.Metadata,
		}
	}
	return map[string]any{
		"name":        wb.Name,
		"rootContent": wb.RootContent,
		"sheets":      sheets,
		"metadata":    wb.Metadata,
	}
}

// columnKey is a small unexported helper kept for symmetry with
// metaremap's string keys; nothing in the module calls it.
func columnKey(i int) string { return strconv.Itoa(i) }
