package render

import "strings"

// props wraps an element's open property bag with typed, default-aware
// accessors. Renderers read every property through these so a missing or
// mistyped key degrades to its default instead of failing the element.
type props map[string]any

func elementProps(el Element) props {
	if el.Properties == nil {
		return props{}
	}
	return props(el.Properties)
}

func (p props) str(key, fallback string) string {
	if value, ok := p[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func (p props) number(key string, fallback float64) float64 {
	switch value := p[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case float32:
		return float64(value)
	}
	return fallback
}

func (p props) boolean(key string, fallback bool) bool {
	if value, ok := p[key].(bool); ok {
		return value
	}
	return fallback
}

func (p props) object(key string) props {
	if value, ok := p[key].(map[string]any); ok {
		return props(value)
	}
	return props{}
}

func (p props) array(key string) []any {
	if value, ok := p[key].([]any); ok {
		return value
	}
	return nil
}

// alignTo maps an authored alignment onto the layout alignment the
// assembler consumes.
func alignTo(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "center":
		return "center"
	case "right":
		return "flex-end"
	default:
		return "flex-start"
	}
}

// DefaultTheme returns the theme applied when a document omits values.
func DefaultTheme() Theme {
	return Theme{
		Colors: Palette{
			Primary:       "#2563eb",
			Secondary:     "#64748b",
			TextPrimary:   "#0f172a",
			TextSecondary: "#475569",
			Background:    "#ffffff",
		},
		Fonts: FontSet{
			Heading: Font{Family: "Helvetica", Size: 18, Weight: 700},
			Body:    Font{Family: "Helvetica", Size: 10, Weight: 400},
			Small:   Font{Family: "Helvetica", Size: 8, Weight: 400},
		},
	}
}

// mergeTheme fills any unset document theme slot from the defaults.
func mergeTheme(theme Theme) Theme {
	defaults := DefaultTheme()
	if theme.Colors.Primary == "" {
		theme.Colors.Primary = defaults.Colors.Primary
	}
	if theme.Colors.Secondary == "" {
		theme.Colors.Secondary = defaults.Colors.Secondary
	}
	if theme.Colors.TextPrimary == "" {
		theme.Colors.TextPrimary = defaults.Colors.TextPrimary
	}
	if theme.Colors.TextSecondary == "" {
		theme.Colors.TextSecondary = defaults.Colors.TextSecondary
	}
	if theme.Colors.Background == "" {
		theme.Colors.Background = defaults.Colors.Background
	}
	theme.Fonts.Heading = mergeFont(theme.Fonts.Heading, defaults.Fonts.Heading)
	theme.Fonts.Body = mergeFont(theme.Fonts.Body, defaults.Fonts.Body)
	theme.Fonts.Small = mergeFont(theme.Fonts.Small, defaults.Fonts.Small)
	return theme
}

func mergeFont(font, fallback Font) Font {
	if font.Family == "" {
		font.Family = fallback.Family
	}
	if font.Size <= 0 {
		font.Size = fallback.Size
	}
	if font.Weight == 0 {
		font.Weight = fallback.Weight
	}
	return font
}

func fontStyle(font Font, color string) Style {
	return Style{
		FontFamily: font.Family,
		FontSize:   font.Size,
		FontWeight: font.Weight,
		Color:      color,
	}
}
