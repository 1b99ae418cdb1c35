// Package structure locates the Workbook region and each Document region in
// Markdown text and extracts the flat, file-order Section sequence.
package structure

import (
	"strings"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/scan"
)

// DefaultRootMarker is used when no Workbook has been parsed yet and no
// configuration override is supplied.
const DefaultRootMarker = "# Tables"

// Range is a half-open [Start, End) line span.
type Range struct {
	Start int
	End   int
}

// Len reports the number of lines spanned by r.
func (r Range) Len() int { return r.End - r.Start }

// WorkbookRange locates the Workbook region: start is the first line
// outside a fenced code block whose trimmed text equals rootMarker (or
// len(lines) if absent); end is the first heading afterward whose level is
// less than sheetHeaderLevel and which is outside a fenced code block, or
// len(lines) otherwise.
func WorkbookRange(text string, rootMarker string, sheetHeaderLevel int) Range {
	lines := scan.Lines(text)
	start := len(lines)
	found := false

	var sc scan.Scanner
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		sc.Step(line)
		if !found && !inCode && strings.TrimSpace(line) == rootMarker {
			start = i
			found = true
			continue
		}
	}
	if !found {
		return Range{Start: len(lines), End: len(lines)}
	}

	sc.Reset()
	end := len(lines)
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		level := sc.HeadingLevel(line)
		sc.Step(line)
		if i <= start {
			continue
		}
		if !inCode && level > 0 && level < sheetHeaderLevel {
			end = i
			break
		}
	}
	return Range{Start: start, End: end}
}

// ErrNotFound is returned by DocumentSectionRange when sectionIndex is out
// of range.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "document section not found" }

// DocumentSectionRange locates the sectionIndex-th level-1 heading that is
// not equal to rootMarker (0-based, in file order), and returns its half
// open range up to the next level-1 heading (including the Workbook
// marker) or EOF.
func DocumentSectionRange(text string, rootMarker string, sectionIndex int) (Range, error) {
	lines := scan.Lines(text)
	starts := level1HeadingLines(lines, rootMarker, false)
	if sectionIndex < 0 || sectionIndex >= len(starts) {
		return Range{}, ErrNotFound
	}
	start := starts[sectionIndex]
	end := len(lines)
	allHeadings := level1HeadingLines(lines, "", true)
	for _, h := range allHeadings {
		if h > start {
			end = h
			break
		}
	}
	return Range{Start: start, End: end}, nil
}

// level1HeadingLines returns the 0-based line indices of every level-1
// heading outside fenced code blocks. When includeAll is false and
// rootMarker is non-empty, lines equal to rootMarker are skipped; when
// includeAll is true, rootMarker is ignored and every level-1 heading is
// returned (used to find "the next level-1 heading" generically).
func level1HeadingLines(lines []string, rootMarker string, includeAll bool) []int {
	var out []int
	var sc scan.Scanner
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		sc.Step(line)
		if inCode {
			continue
		}
		if !scan.IsLevel1Heading(line) {
			continue
		}
		if !includeAll && rootMarker != "" && strings.TrimSpace(line) == rootMarker {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Extract walks text once and emits the flat Section sequence in file
// order: a Workbook section for the rootMarker line, and a Document section
// for every other level-1 heading, with Content being the '\n'-joined
// following lines up to (exclusive) the next level-1 heading or EOF.
func Extract(text string, rootMarker string) []model.Section {
	lines := scan.Lines(text)
	var out []model.Section
	var sc scan.Scanner
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		inCode := sc.InCodeBlock()
		sc.Step(line)
		if inCode || !scan.IsLevel1Heading(line) {
			continue
		}
		if strings.TrimSpace(line) == rootMarker {
			out = append(out, model.Section{Kind: model.SectionWorkbook})
			continue
		}
		title := strings.TrimPrefix(line, "# ")
		end := len(lines)
		sc2 := sc // copy: continue fence tracking from here for the end search
		for j := i + 1; j < len(lines); j++ {
			inCode2 := sc2.InCodeBlock()
			sc2.Step(lines[j])
			if !inCode2 && scan.IsLevel1Heading(lines[j]) {
				end = j
				break
			}
		}
		content := strings.Join(lines[i+1:end], "\n")
		out = append(out, model.Section{Kind: model.SectionDocument, Title: title, Content: content})
	}
	return out
}

// FileStructureOf derives the FileStructure from the raw
// text: document indices before/after the Workbook zone, and the number of
// sheets found by scanning the Workbook region for sheetHeaderLevel
// headings.
func FileStructureOf(text string, rootMarker string, sheetHeaderLevel int) model.FileStructure {
	sections := Extract(text, rootMarker)
	var fs model.FileStructure
	docIdx := 0
	seenWB := false
	for _, sec := range sections {
		switch sec.Kind {
		case model.SectionWorkbook:
			fs.HasWorkbook = true
			seenWB = true
		case model.SectionDocument:
			if seenWB {
				fs.DocsAfterWB = append(fs.DocsAfterWB, docIdx)
			} else {
				fs.DocsBeforeWB = append(fs.DocsBeforeWB, docIdx)
			}
			docIdx++
		}
	}
	if fs.HasWorkbook {
		wbRange := WorkbookRange(text, rootMarker, sheetHeaderLevel)
		n := countSheetHeadings(text, wbRange, sheetHeaderLevel)
		fs.Sheets = make([]int, n)
		for i := range fs.Sheets {
			fs.Sheets[i] = i
		}
	}
	return fs
}

func countSheetHeadings(text string, wb Range, sheetHeaderLevel int) int {
	lines := scan.Lines(text)
	count := 0
	var sc scan.Scanner
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		level := sc.HeadingLevel(line)
		sc.Step(line)
		if i < wb.Start || i >= wb.End {
			continue
		}
		if !inCode && level == sheetHeaderLevel {
			count++
		}
	}
	return count
}
