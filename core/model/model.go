// Package model defines the immutable value types that make up a parsed
// Markdown workbook: Workbook, Sheet, Table, Section, and the column-indexed
// metadata sub-maps that ride along with a Table.
//
// Every mutating operation in the sibling core/* packages consumes a value
// of these types and returns a new value; nothing here is mutated in place
// once constructed, so a caller may freely share a Workbook across reads.
package model

// Alignment is a GFM table column alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ColumnMeta carries per-column display metadata keyed by column index.
type ColumnMeta struct {
	Width  int    `json:"width,omitempty"`
	Format string `json:"format,omitempty"`
	Align  string `json:"align,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
	Type   string `json:"type,omitempty"`
}

// ValidationRule describes a per-column validation constraint.
type ValidationRule struct {
	Kind    string   `json:"kind"` // list|date|integer|email|url
	Options []string `json:"options,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// ArithmeticFormula is a computed-column definition over local columns.
type ArithmeticFormula struct {
	FunctionType  string   `json:"functionType"` // expression|sum|avg|count|min|max
	Expression    string   `json:"expression,omitempty"`
	Columns       []string `json:"columns,omitempty"`
	SourceTableID *int     `json:"sourceTableId,omitempty"`
}

// LookupFormula is a computed-column definition that joins another table.
type LookupFormula struct {
	SourceTableID int    `json:"sourceTableId"`
	JoinKeyLocal  string `json:"joinKeyLocal"`
	JoinKeyRemote string `json:"joinKeyRemote"`
	TargetField   string `json:"targetField"`
}

// FormulaDef is a tagged union of the two formula shapes the core stores and
// migrates verbatim without evaluating.
type FormulaDef struct {
	Kind       string             `json:"kind"` // arithmetic|lookup
	Arithmetic *ArithmeticFormula `json:"arithmetic,omitempty"`
	Lookup     *LookupFormula     `json:"lookup,omitempty"`
}

// VisualMetadata is the recognized `visual` sub-tree of a Table's metadata.
// Columns/Validation/Filters/Formulas are column-indexed maps keyed by a
// string-encoded non-negative integer; see core/metaremap for the shift
// rules applied on every row/column mutation.
type VisualMetadata struct {
	ID         int                       `json:"id,omitempty"`
	Columns    map[string]ColumnMeta     `json:"columns,omitempty"`
	Validation map[string]ValidationRule `json:"validation,omitempty"`
	Filters    map[string][]string       `json:"filters,omitempty"`
	Formulas   map[string]FormulaDef     `json:"formulas,omitempty"`
}

// Clone returns a deep copy of v.
func (v VisualMetadata) Clone() VisualMetadata {
	out := VisualMetadata{ID: v.ID}
	if v.Columns != nil {
		out.Columns = make(map[string]ColumnMeta, len(v.Columns))
		for k, cm := range v.Columns {
			out.Columns[k] = cm
		}
	}
	if v.Validation != nil {
		out.Validation = make(map[string]ValidationRule, len(v.Validation))
		for k, vr := range v.Validation {
			out.Validation[k] = vr
		}
	}
	if v.Filters != nil {
		out.Filters = make(map[string][]string, len(v.Filters))
		for k, f := range v.Filters {
			cp := make([]string, len(f))
			copy(cp, f)
			out.Filters[k] = cp
		}
	}
	if v.Formulas != nil {
		out.Formulas = make(map[string]FormulaDef, len(v.Formulas))
		for k, fd := range v.Formulas {
			out.Formulas[k] = fd
		}
	}
	return out
}

// TableMetadata is a Table's free-form metadata bag, plus the recognized
// `visual` sub-tree and the legacy top-level `validation` alias (open
// question: both locations are preserved as stored, never unified).
type TableMetadata struct {
	Visual     VisualMetadata            `json:"visual,omitempty"`
	Validation map[string]ValidationRule `json:"validation,omitempty"` // legacy alias
	Extra      map[string]any            `json:"-"`
}

// Clone returns a deep copy of m.
func (m TableMetadata) Clone() TableMetadata {
	out := TableMetadata{Visual: m.Visual.Clone()}
	if m.Validation != nil {
		out.Validation = make(map[string]ValidationRule, len(m.Validation))
		for k, vr := range m.Validation {
			out.Validation[k] = vr
		}
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Ambiguous reports whether both the legacy top-level validation alias and
// the nested visual.validation map are present and disagree. Per its open
// question, the core never silently picks one; callers surface this flag.
func (m TableMetadata) Ambiguous() bool {
	if len(m.Validation) == 0 || len(m.Visual.Validation) == 0 {
		return false
	}
	if len(m.Validation) != len(m.Visual.Validation) {
		return true
	}
	for k, v := range m.Validation {
		if other, ok := m.Visual.Validation[k]; !ok || other != v {
			return true
		}
	}
	return false
}

// Table is an ordered GFM table: headers, per-column alignment, data rows,
// and column-indexed metadata. Rows may be shorter than Headers; readers
// treat missing cells as empty string.
type Table struct {
	Name        string
	Description string
	Headers     []string
	Alignments  []Alignment
	Rows        [][]string
	Metadata    TableMetadata
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := Table{Name: t.Name, Description: t.Description, Metadata: t.Metadata.Clone()}
	out.Headers = append([]string(nil), t.Headers...)
	out.Alignments = append([]Alignment(nil), t.Alignments...)
	out.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}

// Cell returns the value at (r,c), treating out-of-range reads as empty.
func (t Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) {
		return ""
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// AlignmentAt returns the alignment for column c, defaulting to left and
// right-extending conceptually to len(Headers) without mutating t.
func (t Table) AlignmentAt(c int) Alignment {
	if c >= 0 && c < len(t.Alignments) {
		return t.Alignments[c]
	}
	return AlignLeft
}

// Sheet is an ordered sequence of Tables plus free-form metadata.
type Sheet struct {
	Name     string
	Tables   []Table
	Metadata map[string]any
}

// Clone returns a deep copy of s.
func (s Sheet) Clone() Sheet {
	out := Sheet{Name: s.Name}
	out.Tables = make([]Table, len(s.Tables))
	for i, t := range s.Tables {
		out.Tables[i] = t.Clone()
	}
	if s.Metadata != nil {
		out.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// TabKind distinguishes Sheet and Document tabs in the heterogeneous tab
// strip the reorder classifier operates over.
type TabKind string

const (
	KindSheet    TabKind = "sheet"
	KindDocument TabKind = "document"
)

// TabOrderItem is one entry of an explicit visual-order override stored in
// Workbook metadata. Index is 0-based within that Kind's natural-order
// sequence.
type TabOrderItem struct {
	Kind  TabKind `json:"kind"`
	Index int     `json:"index"`
}

// Equal reports whether two TabOrderItem values refer to the same tab.
func (t TabOrderItem) Equal(o TabOrderItem) bool {
	return t.Kind == o.Kind && t.Index == o.Index
}

// WorkbookMetadata is the Workbook's free-form metadata mapping. TabOrder is
// the only recognized key; everything else passes through Extra.
type WorkbookMetadata struct {
	TabOrder []TabOrderItem `json:"tab_order,omitempty"`
	Extra    map[string]any `json:"-"`
}

// Clone returns a deep copy of m.
func (m WorkbookMetadata) Clone() WorkbookMetadata {
	out := WorkbookMetadata{}
	if m.TabOrder != nil {
		out.TabOrder = append([]TabOrderItem(nil), m.TabOrder...)
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Empty reports whether the metadata carries nothing worth emitting.
func (m WorkbookMetadata) Empty() bool {
	return len(m.TabOrder) == 0 && len(m.Extra) == 0
}

// Workbook is the single spreadsheet region's parsed tree: an ordered
// sequence of Sheets plus a heading-derived name, optional free-form
// root content between the heading and the first Sheet, and metadata.
type Workbook struct {
	Name        string
	RootContent string
	Sheets      []Sheet
	Metadata    WorkbookMetadata
}

// Clone returns a deep copy of w.
func (w Workbook) Clone() Workbook {
	out := Workbook{Name: w.Name, RootContent: w.RootContent, Metadata: w.Metadata.Clone()}
	out.Sheets = make([]Sheet, len(w.Sheets))
	for i, s := range w.Sheets {
		out.Sheets[i] = s.Clone()
	}
	return out
}

// SectionKind distinguishes the Workbook singleton region from a Document
// region in the flat, file-order Section sequence.
type SectionKind string

const (
	SectionWorkbook SectionKind = "workbook"
	SectionDocument SectionKind = "document"
)

// Section is one top-level region of the file in document order.
type Section struct {
	Kind    SectionKind
	Title   string // Document only; empty for Workbook
	Content string // Document only; empty for Workbook
}

// FileStructure is the derived zone layout used by the reorder classifier.
type FileStructure struct {
	DocsBeforeWB []int // document indices, in file order, before the Workbook
	Sheets       []int // sheet indices 0..len(sheets)
	DocsAfterWB  []int // document indices, in file order, after the Workbook
	HasWorkbook  bool
}

// NumDocs returns the total number of documents across both zones.
func (fs FileStructure) NumDocs() int {
	return len(fs.DocsBeforeWB) + len(fs.DocsAfterWB)
}

// NumSheets returns the number of sheets in the Workbook zone.
func (fs FileStructure) NumSheets() int {
	return len(fs.Sheets)
}
