package render

import (
	"regexp"
	"strings"
	"time"
)

var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z][a-zA-Z0-9_]*)\s*\}\}`)

// Escape sentinels keep escaped braces out of the interpolation pass.
const (
	escapedOpen  = "\x00{{\x00"
	escapedClose = "\x00}}\x00"
)

// Interpolate replaces every supported {{identifier}} token in text with its
// resolved value. Identifier matching is case-insensitive. Unsupported
// tokens are left verbatim so template authors can see them in the output.
// A `\\{{name\\}}` escape survives as literal `{{name}}` text.
func Interpolate(text string, rc *RenderContext) string {
	return interpolateAt(text, rc, time.Now())
}

// interpolateAt is Interpolate with an injectable clock for the
// currentDate/currentTime variables.
func interpolateAt(text string, rc *RenderContext, now time.Time) string {
	if text == "" || !strings.Contains(text, "{{") && !strings.Contains(text, `\\`) {
		return text
	}

	text = strings.ReplaceAll(text, `\\{{`, escapedOpen)
	text = strings.ReplaceAll(text, `\\}}`, escapedClose)

	text = variablePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		def, ok := variableIndex[strings.ToLower(name)]
		if !ok {
			return match
		}
		return sanitizeValue(def.resolve(rc, now))
	})

	text = strings.ReplaceAll(text, escapedOpen, "{{")
	text = strings.ReplaceAll(text, escapedClose, "}}")
	return text
}

// InterpolateDeep walks an arbitrary JSON-like value and applies Interpolate
// to every string leaf, returning a structurally identical deep copy. The
// input is never mutated.
func InterpolateDeep(value any, rc *RenderContext) any {
	return interpolateDeepAt(value, rc, time.Now())
}

func interpolateDeepAt(value any, rc *RenderContext, now time.Time) any {
	switch v := value.(type) {
	case string:
		return interpolateAt(v, rc, now)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = interpolateDeepAt(item, rc, now)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = interpolateDeepAt(item, rc, now)
		}
		return out
	default:
		return value
	}
}

// ExtractVariableNames returns the deduplicated identifiers referenced in
// text, in first-seen order and original casing.
func ExtractVariableNames(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range variablePattern.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(match[1])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, match[1])
	}
	return names
}

// FindUnsupportedVariables returns the referenced identifiers absent from
// the variable catalog.
func FindUnsupportedVariables(text string) []string {
	var unsupported []string
	for _, name := range ExtractVariableNames(text) {
		if !IsSupportedVariable(name) {
			unsupported = append(unsupported, name)
		}
	}
	return unsupported
}
