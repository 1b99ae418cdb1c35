package parser

import (
	"encoding/json"
	"strings"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/scan"
	"github.com/vinodismyname/mdsheet/core/structure"
)

const (
	workbookMetaMarker = "md-spreadsheet-workbook-metadata:"
	tableMetaMarker    = "md-spreadsheet-table-metadata:"
)

// looksLikeTableRow reports whether line plausibly contains pipe-delimited
// cells.
func looksLikeTableRow(line string) bool {
	return strings.Contains(strings.TrimSpace(line), "|")
}

// isDelimiterRow reports whether line is a GFM table delimiter row
// (hyphens with optional leading/trailing colons per cell).
func isDelimiterRow(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	t = strings.Trim(t, "|")
	if t == "" {
		return false
	}
	for _, part := range strings.Split(t, "|") {
		p := strings.TrimSpace(part)
		p = strings.Trim(p, ":")
		if p == "" || strings.Trim(p, "-") != "" {
			return false
		}
	}
	return true
}

func parseAlignments(line string) []model.Alignment {
	t := strings.TrimSpace(line)
	t = strings.Trim(t, "|")
	parts := strings.Split(t, "|")
	out := make([]model.Alignment, len(parts))
	for i, part := range parts {
		p := strings.TrimSpace(part)
		left := strings.HasPrefix(p, ":")
		right := strings.HasSuffix(p, ":")
		switch {
		case left && right:
			out[i] = model.AlignCenter
		case right:
			out[i] = model.AlignRight
		default:
			out[i] = model.AlignLeft
		}
	}
	return out
}

// splitCells splits a pipe-table row into cell text, respecting
// backtick-delimited inline code and backslash-escaped pipes. The returned
// cell text is left exactly as stored (escaped pipes remain literal
// backslash-pipe sequences; cellops is responsible for escaping on write).
func splitCells(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")

	var cells []string
	var cur strings.Builder
	inCode := false
	for i := 0; i < len(t); i++ {
		ch := t[i]
		switch {
		case ch == '`':
			inCode = !inCode
			cur.WriteByte(ch)
		case ch == '\\' && i+1 < len(t) && t[i+1] == '|':
			cur.WriteByte('\\')
			cur.WriteByte('|')
			i++
		case ch == '|' && !inCode:
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

func headingTitle(line string, level int) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), strings.Repeat("#", level)))
}

// extractComment joins the buffered raw comment lines and returns the JSON
// payload found after marker and before the closing "-->".
func extractComment(buf []string, marker string) (string, bool) {
	raw := strings.Join(buf, "\n")
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return "", false
	}
	rest := raw[idx+len(marker):]
	end := strings.LastIndex(rest, "-->")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func workbookMetadataFromJSON(payload string) model.WorkbookMetadata {
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return model.WorkbookMetadata{}
	}
	var out model.WorkbookMetadata
	if to, ok := raw["tab_order"]; ok {
		if arr, ok := to.([]any); ok {
			for _, entry := range arr {
				em, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				kindStr, _ := em["kind"].(string)
				idxF, _ := em["index"].(float64)
				kind := model.KindSheet
				if kindStr == string(model.KindDocument) {
					kind = model.KindDocument
				}
				out.TabOrder = append(out.TabOrder, model.TabOrderItem{Kind: kind, Index: int(idxF)})
			}
		}
		delete(raw, "tab_order")
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	return out
}

func tableMetadataFromJSON(payload string) model.TableMetadata {
	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return model.TableMetadata{}
	}
	var out model.TableMetadata
	if v, ok := raw["visual"]; ok {
		b, _ := json.Marshal(v)
		_ = json.Unmarshal(b, &out.Visual)
		delete(raw, "visual")
	}
	if v, ok := raw["validation"]; ok {
		b, _ := json.Marshal(v)
		_ = json.Unmarshal(b, &out.Validation)
		delete(raw, "validation")
	}
	if len(raw) > 0 {
		out.Extra = raw
	}
	return out
}

// ParseWorkbook locates the Workbook region and parses its Sheets, Tables,
// and metadata comment, satisfying the parser contract.
func ParseWorkbook(text string, schema Schema) model.Workbook {
	schema = schema.Normalize()
	lines := scan.Lines(text)
	wbRange := structure.WorkbookRange(text, schema.RootMarker, schema.SheetHeaderLevel)

	var wb model.Workbook
	wb.Name = strings.TrimPrefix(strings.TrimSpace(schema.RootMarker), "# ")
	if wbRange.Start >= len(lines) {
		return wb
	}

	var sc scan.Scanner
	for k := 0; k < wbRange.Start; k++ {
		sc.Step(lines[k])
	}
	sc.Step(lines[wbRange.Start]) // consume the heading line itself

	var rootContentLines []string
	var wbMetaBuf []string
	inWBMeta := false

	var currentSheet *model.Sheet
	var currentTable *model.Table
	tableState := 0 // 0=awaiting header/description/meta, 1=awaiting delimiter, 2=in rows
	var descBuf []string
	var tableMetaBuf []string
	inTableMeta := false

	flushTable := func() {
		if currentTable != nil {
			if schema.CaptureDescription && len(descBuf) > 0 {
				currentTable.Description = strings.TrimSpace(strings.Join(descBuf, "\n"))
			}
			currentSheet.Tables = append(currentSheet.Tables, *currentTable)
			currentTable = nil
		}
		descBuf = nil
		tableMetaBuf = nil
		inTableMeta = false
		tableState = 0
	}
	flushSheet := func() {
		flushTable()
		if currentSheet != nil {
			wb.Sheets = append(wb.Sheets, *currentSheet)
			currentSheet = nil
		}
	}

	for i := wbRange.Start + 1; i < wbRange.End && i < len(lines); i++ {
		line := lines[i]
		inCode := sc.InCodeBlock()
		level := sc.HeadingLevel(line)
		sc.Step(line)
		trimmed := strings.TrimSpace(line)

		if inWBMeta {
			wbMetaBuf = append(wbMetaBuf, line)
			if strings.Contains(line, "-->") {
				inWBMeta = false
				if payload, ok := extractComment(wbMetaBuf, workbookMetaMarker); ok {
					wb.Metadata = workbookMetadataFromJSON(payload)
				}
				wbMetaBuf = nil
			}
			continue
		}
		if !inCode && strings.Contains(trimmed, workbookMetaMarker) {
			wbMetaBuf = append(wbMetaBuf, line)
			if strings.Contains(line, "-->") {
				if payload, ok := extractComment(wbMetaBuf, workbookMetaMarker); ok {
					wb.Metadata = workbookMetadataFromJSON(payload)
				}
				wbMetaBuf = nil
			} else {
				inWBMeta = true
			}
			continue
		}

		if !inCode && level == schema.SheetHeaderLevel {
			flushSheet()
			s := model.Sheet{Name: headingTitle(line, level)}
			currentSheet = &s
			continue
		}

		if !inCode && level == schema.TableHeaderLevel && currentSheet != nil {
			flushTable()
			t := model.Table{Name: headingTitle(line, level)}
			currentTable = &t
			continue
		}

		if currentSheet == nil {
			if trimmed != "" || len(rootContentLines) > 0 {
				rootContentLines = append(rootContentLines, line)
			}
			continue
		}

		if currentTable == nil {
			continue
		}

		switch tableState {
		case 0:
			if inTableMeta {
				tableMetaBuf = append(tableMetaBuf, line)
				if strings.Contains(line, "-->") {
					inTableMeta = false
					if payload, ok := extractComment(tableMetaBuf, tableMetaMarker); ok {
						currentTable.Metadata = tableMetadataFromJSON(payload)
					}
					tableMetaBuf = nil
				}
				continue
			}
			if trimmed == "" {
				continue
			}
			if strings.Contains(trimmed, tableMetaMarker) {
				tableMetaBuf = append(tableMetaBuf, line)
				if strings.Contains(line, "-->") {
					if payload, ok := extractComment(tableMetaBuf, tableMetaMarker); ok {
						currentTable.Metadata = tableMetadataFromJSON(payload)
					}
					tableMetaBuf = nil
				} else {
					inTableMeta = true
				}
				continue
			}
			if looksLikeTableRow(line) {
				currentTable.Headers = splitCells(line)
				tableState = 1
			} else if schema.CaptureDescription {
				descBuf = append(descBuf, line)
			}
		case 1:
			if isDelimiterRow(line) {
				currentTable.Alignments = parseAlignments(line)
				tableState = 2
			} else {
				tableState = 0
			}
		case 2:
			if trimmed == "" || !looksLikeTableRow(line) {
				flushTable()
				continue
			}
			currentTable.Rows = append(currentTable.Rows, splitCells(line))
		}
	}
	flushSheet()

	wb.RootContent = strings.TrimRight(strings.Join(rootContentLines, "\n"), "\n")
	return wb
}
