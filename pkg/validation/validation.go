// Package validation wraps go-playground/validator with the custom tags
// the editor's configuration and MCP tool inputs need, teacher style: a
// package-level singleton Validator() with custom registered tags and a
// ValidateStruct helper that turns the first validation error into a
// user-friendly message.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	if v == nil {
		v = validator.New()
		// Custom: a heading level must be a positive level (1-6, the GFM
		// ceiling on ATX heading depth).
		_ = v.RegisterValidation("headinglevel", func(fl validator.FieldLevel) bool {
			n := fl.Field().Int()
			return n >= 1 && n <= 6
		})
		// Custom: a tab_order candidate's kind must be "sheet" or "document".
		_ = v.RegisterValidation("tabkind", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "sheet" || s == "document"
		})
		// Custom: a Markdown document path, distinguished from binary
		// spreadsheet formats.
		_ = v.RegisterValidation("mdpath", func(fl validator.FieldLevel) bool {
			s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			if s == "" {
				return false
			}
			return strings.HasSuffix(s, ".md") || strings.HasSuffix(s, ".markdown")
		})
	}
	return v
}

// ValidateStruct validates s and returns a user-friendly error string
// suitable for surfacing to a caller, empty when valid.
func ValidateStruct(s any) string {
	if err := Validator().Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			fe := ve[0]
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				return fmt.Sprintf("VALIDATION: %s is required", field)
			case "headinglevel":
				return fmt.Sprintf("VALIDATION: %s must be a heading level between 1 and 6", field)
			case "tabkind":
				return fmt.Sprintf("VALIDATION: %s must be \"sheet\" or \"document\"", field)
			case "mdpath":
				return "VALIDATION: path must be a Markdown file (.md, .markdown)"
			case "min", "max", "gte", "lte":
				return fmt.Sprintf("VALIDATION: %s must satisfy %s=%s", field, fe.Tag(), fe.Param())
			}
			return fmt.Sprintf("VALIDATION: invalid %s", field)
		}
		return "VALIDATION: invalid inputs"
	}
	return ""
}
