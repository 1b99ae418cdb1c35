// Package config models the recognized configuration surface as a
// validated Options struct, teacher style: a package-level validator
// singleton with custom registered tags, grounded on
// github.com/vinodismyname/mdsheet/pkg/validation.
package config

import (
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/pkg/validation"
)

// Options is the recognized configuration surface. Unknown carries every
// key present in a raw configuration map that Options does not recognize;
// those keys are preserved but ignored rather than rejected.
type Options struct {
	RootMarker          string         `json:"rootMarker,omitempty" validate:"omitempty,min=1"`
	SheetHeaderLevel    int            `json:"sheetHeaderLevel,omitempty" validate:"omitempty,headinglevel"`
	TableHeaderLevel    int            `json:"tableHeaderLevel,omitempty" validate:"omitempty,headinglevel"`
	CaptureDescription  bool           `json:"captureDescription"`
	ColumnSeparator     string         `json:"columnSeparator,omitempty"`
	HeaderSeparatorChar string         `json:"headerSeparatorChar,omitempty"`
	RequireOuterPipes   bool           `json:"requireOuterPipes"`
	StripWhitespace     bool           `json:"stripWhitespace"`
	Unknown             map[string]any `json:"-"`
}

// DefaultOptions returns the "# Tables" entry-path defaults.
func DefaultOptions() Options {
	return Options{
		RootMarker:          DefaultRootMarker,
		SheetHeaderLevel:    DefaultSheetHeaderLevel,
		TableHeaderLevel:    DefaultTableHeaderLevel,
		CaptureDescription:  true,
		ColumnSeparator:     DefaultColumnSeparator,
		HeaderSeparatorChar: DefaultHeaderSeparatorChar,
		RequireOuterPipes:   true,
		StripWhitespace:     true,
	}
}

// FromMap builds Options from a raw configuration map, recognizing the
// keys and stashing everything else under Unknown.
func FromMap(raw map[string]any) Options {
	out := DefaultOptions()
	out.Unknown = map[string]any{}
	for k, v := range raw {
		switch k {
		case "rootMarker":
			if s, ok := v.(string); ok {
				out.RootMarker = s
			}
		case "sheetHeaderLevel":
			if n, ok := asInt(v); ok {
				out.SheetHeaderLevel = n
			}
		case "tableHeaderLevel":
			if n, ok := asInt(v); ok {
				out.TableHeaderLevel = n
			}
		case "captureDescription":
			if b, ok := v.(bool); ok {
				out.CaptureDescription = b
			}
		case "columnSeparator":
			if s, ok := v.(string); ok {
				out.ColumnSeparator = s
			}
		case "headerSeparatorChar":
			if s, ok := v.(string); ok {
				out.HeaderSeparatorChar = s
			}
		case "requireOuterPipes":
			if b, ok := v.(bool); ok {
				out.RequireOuterPipes = b
			}
		case "stripWhitespace":
			if b, ok := v.(bool); ok {
				out.StripWhitespace = b
			}
		default:
			out.Unknown[k] = v
		}
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Validate reports a user-friendly error string when Options fails
// validation (see pkg/validation's custom tags), empty when valid.
func (o Options) Validate() string {
	return validation.ValidateStruct(o)
}

// ToSchema projects Options onto the parser's recognized Schema.
func (o Options) ToSchema() parser.Schema {
	return parser.Schema{
		RootMarker:          o.RootMarker,
		SheetHeaderLevel:    o.SheetHeaderLevel,
		TableHeaderLevel:    o.TableHeaderLevel,
		CaptureDescription:  o.CaptureDescription,
		ColumnSeparator:     o.ColumnSeparator,
		HeaderSeparatorChar: o.HeaderSeparatorChar,
		RequireOuterPipes:   o.RequireOuterPipes,
		StripWhitespace:     o.StripWhitespace,
	}.Normalize()
}
