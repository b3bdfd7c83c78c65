// Package templates guards the template document schema: structural
// validation, import with name-collision handling, and export envelopes.
package templates

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-quotedoc/render"
)

// DefaultCategory is the catch-all template category.
const DefaultCategory = "custom"

// knownCategories lists categories the gallery understands. Anything else
// coerces to DefaultCategory with a warning.
var knownCategories = map[string]struct{}{
	"professional":  {},
	"creative":      {},
	"minimal":       {},
	"modern":        {},
	"classic":       {},
	DefaultCategory: {},
}

// NormalizeCategory maps a category onto the known set. The second return
// reports whether the input was already known.
func NormalizeCategory(category string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return DefaultCategory, true
	}
	if _, ok := knownCategories[normalized]; ok {
		return normalized, true
	}
	return DefaultCategory, false
}

// Result is the outcome of validating one template document. Errors are
// fatal to import; warnings are informational and never block.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate structurally checks an entire template document, collecting
// every problem instead of failing on the first. It never panics on
// malformed input.
func Validate(doc *render.Document) Result {
	var result Result
	if doc == nil {
		result.errorf("template document is required")
		return result
	}

	if strings.TrimSpace(doc.Name) == "" {
		result.errorf("template name is required")
	}
	if _, known := NormalizeCategory(doc.Category); !known {
		result.warnf("unknown category %q, treating as %q", doc.Category, DefaultCategory)
	}

	validateMetadata(doc.Metadata, &result)
	validateTheme(doc.Theme, &result)
	validateElements(doc.Elements, &result)

	result.Valid = len(result.Errors) == 0
	return result
}

func validateMetadata(metadata render.PageMetadata, result *Result) {
	switch metadata.PageSize {
	case render.PageA4, render.PageLetter, render.PageLegal:
	case "":
		result.errorf("metadata.pageSize is required")
	default:
		result.errorf("metadata.pageSize %q is not one of A4, Letter, Legal", metadata.PageSize)
	}

	switch metadata.Orientation {
	case render.OrientationPortrait, render.OrientationLandscape:
	case "":
		result.errorf("metadata.orientation is required")
	default:
		result.errorf("metadata.orientation %q is not portrait or landscape", metadata.Orientation)
	}

	margins := map[string]float64{
		"top":    metadata.Margins.Top,
		"right":  metadata.Margins.Right,
		"bottom": metadata.Margins.Bottom,
		"left":   metadata.Margins.Left,
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		if margins[side] < 0 {
			result.errorf("metadata.margins.%s must be non-negative", side)
		}
	}
}

func validateTheme(theme render.Theme, result *Result) {
	colors := map[string]string{
		"primary":       theme.Colors.Primary,
		"secondary":     theme.Colors.Secondary,
		"textPrimary":   theme.Colors.TextPrimary,
		"textSecondary": theme.Colors.TextSecondary,
		"background":    theme.Colors.Background,
	}
	for _, name := range []string{"primary", "secondary", "textPrimary", "textSecondary", "background"} {
		if strings.TrimSpace(colors[name]) == "" {
			result.errorf("theme.colors.%s is required", name)
		}
	}

	fonts := map[string]render.Font{
		"heading": theme.Fonts.Heading,
		"body":    theme.Fonts.Body,
		"small":   theme.Fonts.Small,
	}
	for _, slot := range []string{"heading", "body", "small"} {
		font := fonts[slot]
		if strings.TrimSpace(font.Family) == "" {
			result.errorf("theme.fonts.%s.family is required", slot)
		}
		if font.Size <= 0 {
			result.errorf("theme.fonts.%s.size must be a positive number", slot)
		}
	}
}

func validateElements(elements []render.Element, result *Result) {
	if elements == nil {
		result.errorf("elements must be an array")
		return
	}
	if len(elements) == 0 {
		result.warnf("template has no elements")
		return
	}

	seen := make(map[string]struct{}, len(elements))
	for i, el := range elements {
		at := fmt.Sprintf("elements[%d]", i)
		if strings.TrimSpace(el.ID) == "" {
			result.errorf("%s.id is required", at)
		} else if _, dup := seen[el.ID]; dup {
			result.errorf("%s.id %q is not unique", at, el.ID)
		} else {
			seen[el.ID] = struct{}{}
		}

		if el.Type == "" {
			result.errorf("%s.type is required", at)
		} else if !render.IsKnownElementType(el.Type) {
			// Forward compatible: newer element types warn, never error.
			result.warnf("%s.type %q is not a known element type and may not render correctly", at, el.Type)
		}

		if el.Order < 0 {
			result.errorf("%s.order must be non-negative", at)
		}

		if !el.Position.Auto && (el.Position.X < 0 || el.Position.Y < 0) {
			result.errorf("%s.position coordinates must be non-negative", at)
		}
		if !el.Size.Width.Auto && el.Size.Width.Value <= 0 {
			result.errorf("%s.size.width must be \"auto\" or a positive number", at)
		}
		if !el.Size.Height.Auto && el.Size.Height.Value <= 0 {
			result.errorf("%s.size.height must be \"auto\" or a positive number", at)
		}

		if el.Properties == nil {
			result.errorf("%s.properties object is required", at)
		}
	}
}
