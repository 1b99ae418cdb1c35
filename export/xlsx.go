// Package export renders a parsed Workbook to a real spreadsheet file:
// one excelize sheet per model.Sheet, one native Excel table per
// model.Table, with column width and number-format metadata applied.
// Column alignment is not carried into the exported file.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vinodismyname/mdsheet/core/model"
)

// WriteXLSX renders wb to a new .xlsx file at dest, overwriting any
// existing file. Tables are laid out top to bottom within their sheet,
// separated by one blank row, each wrapped in a native Excel table so
// header styling and column filters survive the round trip.
func WriteXLSX(wb model.Workbook, dest string) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(wb.Sheets) == 0 {
		return fmt.Errorf("export: workbook has no sheets")
	}

	for i, sheet := range wb.Sheets {
		name := sheetName(sheet.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("export: rename sheet %d: %w", i, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: create sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, sheet); err != nil {
			return fmt.Errorf("export: sheet %q: %w", name, err)
		}
	}

	if err := f.SetActiveSheet(0); err != nil {
		return fmt.Errorf("export: set active sheet: %w", err)
	}
	if err := f.SaveAs(dest); err != nil {
		return fmt.Errorf("export: save %s: %w", dest, err)
	}
	return nil
}

func sheetName(name string, idx int) string {
	if name == "" {
		return fmt.Sprintf("Sheet%d", idx+1)
	}
	return name
}

func writeSheet(f *excelize.File, sheetName string, sheet model.Sheet) error {
	row := 1
	for ti, t := range sheet.Tables {
		if ti > 0 {
			row++
		}
		headerRow := row
		for col, h := range t.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, h); err != nil {
				return err
			}
		}
		row++

		for _, r := range t.Rows {
			for col, v := range r {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheetName, cell, v); err != nil {
					return err
				}
			}
			row++
		}

		if err := applyTableStyle(f, sheetName, t, headerRow, row-1); err != nil {
			return err
		}
		if err := applyColumnMetadata(f, sheetName, t, headerRow); err != nil {
			return err
		}
	}
	return nil
}

// applyTableStyle registers a native Excel table over the rendered range
// so header shading and the AutoFilter dropdown survive export, mirroring
// how a GFM table's header row is visually distinguished in Markdown.
func applyTableStyle(f *excelize.File, sheetName string, t model.Table, headerRow, lastRow int) error {
	if len(t.Headers) == 0 {
		return nil
	}
	if lastRow < headerRow {
		lastRow = headerRow
	}
	topLeft, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(len(t.Headers), lastRow)
	if err != nil {
		return err
	}
	name := t.Name
	if name == "" {
		name = fmt.Sprintf("Table%d", headerRow)
	}
	format := fmt.Sprintf(`{"table_name": %q, "table_style": "TableStyleMedium2"}`, sanitizeTableName(name))
	return f.AddTable(sheetName, topLeft, bottomRight, format)
}

// applyColumnMetadata carries visual.columns width/format metadata onto
// the exported sheet's column widths and cell number formats; align is
// ignored.
func applyColumnMetadata(f *excelize.File, sheetName string, t model.Table, headerRow int) error {
	for idxStr, meta := range t.Metadata.Visual.Columns {
		col := 0
		if _, err := fmt.Sscanf(idxStr, "%d", &col); err != nil {
			continue
		}
		colLetter, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		if meta.Width > 0 {
			if err := f.SetColWidth(sheetName, colLetter, colLetter, float64(meta.Width)); err != nil {
				return err
			}
		}
		if meta.Format != "" {
			styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &meta.Format})
			if err != nil {
				return err
			}
			rangeRef := fmt.Sprintf("%s%d:%s1048576", colLetter, headerRow+1, colLetter)
			if err := f.SetCellStyle(sheetName, colLetter+fmt.Sprint(headerRow+1), rangeRef, styleID); err != nil {
				return err
			}
		}
	}
	return nil
}

func sanitizeTableName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "Table1"
	}
	return string(out)
}
