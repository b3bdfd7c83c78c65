package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Operator names a condition comparison. Symbolic aliases from authored JSON
// normalize onto the canonical names.
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "not_equals"
	OpGreaterThan        Operator = "greater_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThan           Operator = "less_than"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpExists             Operator = "exists"
	OpNotExists          Operator = "not_exists"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpIn                 Operator = "in"
	OpNotIn              Operator = "not_in"
	OpStartsWith         Operator = "starts_with"
	OpEndsWith           Operator = "ends_with"
	OpMatches            Operator = "matches"
)

var operatorAliases = map[Operator]Operator{
	"==":    OpEquals,
	"===":   OpEquals,
	"eq":    OpEquals,
	"!=":    OpNotEquals,
	"!==":   OpNotEquals,
	"neq":   OpNotEquals,
	">":     OpGreaterThan,
	">=":    OpGreaterThanOrEqual,
	"<":     OpLessThan,
	"<=":    OpLessThanOrEqual,
	"regex": OpMatches,
}

func normalizeOperator(op Operator) Operator {
	op = Operator(strings.TrimSpace(string(op)))
	if canonical, ok := operatorAliases[op]; ok {
		return canonical
	}
	return op
}

// Condition is one visibility rule. Value is ignored for the existence
// operators.
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

// Evaluate AND-reduces conditions against the context. No conditions means
// always visible. An unevaluable condition counts as false so a broken rule
// hides its element instead of crashing the render. diags may be nil.
func Evaluate(conditions []Condition, rc *RenderContext, diags *Diagnostics) bool {
	if len(conditions) == 0 {
		return true
	}
	for _, condition := range conditions {
		if !evaluateOne(condition, rc, diags) {
			return false
		}
	}
	return true
}

func evaluateOne(condition Condition, rc *RenderContext, diags *Diagnostics) (result bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			diags.Warnf("", "condition on %q failed to evaluate: %v", condition.Field, recovered)
			result = false
		}
	}()

	if strings.TrimSpace(condition.Field) == "" {
		diags.Warnf("", "condition has no field")
		return false
	}

	value := FieldValue(condition.Field, rc)
	return Compare(value, condition.Operator, condition.Value, diags)
}

// Compare applies one operator to a resolved field value. Unknown operators
// warn and return false.
func Compare(fieldValue any, op Operator, compareValue any, diags *Diagnostics) bool {
	switch normalizeOperator(op) {
	case OpExists:
		return !isEmptyValue(fieldValue)
	case OpNotExists:
		return isEmptyValue(fieldValue)
	}

	// Every remaining operator treats missing data as an automatic miss.
	if fieldValue == nil {
		return false
	}

	switch normalizeOperator(op) {
	case OpEquals:
		return looseEquals(fieldValue, compareValue)
	case OpNotEquals:
		return !looseEquals(fieldValue, compareValue)
	case OpGreaterThan:
		return toNumber(fieldValue) > toNumber(compareValue)
	case OpGreaterThanOrEqual:
		return toNumber(fieldValue) >= toNumber(compareValue)
	case OpLessThan:
		return toNumber(fieldValue) < toNumber(compareValue)
	case OpLessThanOrEqual:
		return toNumber(fieldValue) <= toNumber(compareValue)
	case OpContains:
		return containsValue(fieldValue, compareValue)
	case OpNotContains:
		return !containsValue(fieldValue, compareValue)
	case OpIn:
		return inSet(fieldValue, compareValue)
	case OpNotIn:
		return !inSet(fieldValue, compareValue)
	case OpStartsWith:
		return strings.HasPrefix(lowerString(fieldValue), lowerString(compareValue))
	case OpEndsWith:
		return strings.HasSuffix(lowerString(fieldValue), lowerString(compareValue))
	case OpMatches:
		pattern, err := regexp.Compile(stringify(compareValue))
		if err != nil {
			diags.Warnf("", "invalid condition pattern %q", stringify(compareValue))
			return false
		}
		return pattern.MatchString(stringify(fieldValue))
	default:
		diags.Warnf("", "unknown condition operator %q", string(op))
		return false
	}
}

// isEmptyValue reports whether a field value counts as absent: nil or the
// empty string.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func looseEquals(a, b any) bool {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.EqualFold(sa, sb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return ba == bb
		}
	}
	if isNumeric(a) || isNumeric(b) {
		return toNumber(a) == toNumber(b)
	}
	// Composite values compare by serialization.
	return stringify(a) == stringify(b)
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return true
	}
	return false
}

// toNumber coerces a value to a float for numeric comparison. Non-numeric
// strings coerce to 0, booleans to 0/1, so string-encoded numbers authored
// in JSON compare naturally.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func containsValue(fieldValue, compareValue any) bool {
	switch v := fieldValue.(type) {
	case []any:
		for _, member := range v {
			if looseEquals(member, compareValue) {
				return true
			}
		}
		return false
	case string:
		return strings.Contains(strings.ToLower(v), lowerString(compareValue))
	default:
		return false
	}
}

func inSet(fieldValue, compareValue any) bool {
	switch set := compareValue.(type) {
	case []any:
		for _, member := range set {
			if looseEquals(fieldValue, member) {
				return true
			}
		}
	case []string:
		for _, member := range set {
			if looseEquals(fieldValue, member) {
				return true
			}
		}
	}
	return false
}

func lowerString(value any) string {
	return strings.ToLower(stringify(value))
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	default:
		return fmt.Sprint(v)
	}
}
