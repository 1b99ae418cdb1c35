// Package scan implements the structural line-range scanner: it walks
// Markdown text line by line, tracking fenced code blocks so that headings
// inside a fence are never mistaken for structural boundaries.
package scan

import "strings"

// Lines splits text at '\n' with no CRLF normalization, matching the
// one-split-per-newline contract every other core package relies on.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Scanner walks lines while tracking whether the current line is inside a
// fenced code block. It holds no other state and is safe to reuse across
// independent scans by calling Reset.
type Scanner struct {
	inCodeBlock bool
}

// Reset clears fence-tracking state for a fresh scan.
func (s *Scanner) Reset() {
	s.inCodeBlock = false
}

// InCodeBlock reports whether the scanner currently believes it is inside a
// fenced code block, as of the last line fed to Step.
func (s *Scanner) InCodeBlock() bool {
	return s.inCodeBlock
}

// Step processes one line, flipping the fence state when the trimmed line
// starts with three backticks. It must be called once per line in order.
func (s *Scanner) Step(line string) {
	if strings.HasPrefix(strings.TrimSpace(line), "```") {
		s.inCodeBlock = !s.inCodeBlock
	}
}

// HeadingLevel returns the heading level (run-length of leading '#') for
// line when it is a heading outside a fenced code block and not inside one,
// or 0 when it is not a heading. The scanner's fence state as of the call
// (i.e. before Step is invoked for this line) determines the fence check.
func (s *Scanner) HeadingLevel(line string) int {
	if s.inCodeBlock {
		return 0
	}
	return headingLevel(line)
}

// headingLevel returns the run-length of leading '#' characters when line
// starts with N '#' followed by a single space, else 0.
func headingLevel(line string) int {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != ' ' {
		return 0
	}
	return i
}

// IsLevel1Heading reports whether line is a level-1 heading ("# " prefix)
// and not a level-2-or-deeper heading sharing the same leading byte (i.e.
// it must not start with "## ").
func IsLevel1Heading(line string) bool {
	if strings.HasPrefix(line, "## ") {
		return false
	}
	return headingLevel(line) == 1
}

// Walk invokes fn for every line with its 0-based index, the heading level
// (0 if not a heading), and whether the line sits inside a fenced code
// block. It is the single entry point every higher-level package should use
// to avoid re-deriving fence-tracking logic.
func Walk(lines []string, fn func(idx int, line string, level int, inCode bool)) {
	var sc Scanner
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		level := sc.HeadingLevel(line)
		sc.Step(line)
		fn(i, line, level, inCode)
	}
}
