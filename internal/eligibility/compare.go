package eligibility

import (
	"fmt"
	"reflect"
	"strings"

	profileModel "yojana/internal/profile/models"
	schemeModel "yojana/internal/scheme/models"
)

// Compare evaluates one comparison. It never returns an error: a nil actual,
// a coercion failure, a malformed expected value, or an unknown operator all
// yield false so that one bad rule or field can never abort an evaluation.
func Compare(actual any, op schemeModel.Operator, expected any) bool {
	if actual == nil {
		return false
	}

	switch op {
	case schemeModel.OpEqual:
		return looseEqual(actual, expected)
	case schemeModel.OpNotEqual:
		return !looseEqual(actual, expected)
	case schemeModel.OpLess, schemeModel.OpLessOrEqual,
		schemeModel.OpGreater, schemeModel.OpGreaterOrEqual:
		return compareNumeric(actual, op, expected)
	case schemeModel.OpIn:
		return memberOf(actual, expected)
	case schemeModel.OpNotIn:
		if asList(expected) == nil {
			return false
		}
		return !memberOf(actual, expected)
	case schemeModel.OpContains:
		return strings.Contains(stringify(actual), stringify(expected))
	default:
		return false
	}
}

// looseEqual treats all numeric types as one domain so a stored int rule
// value matches a JSON-decoded float64 field. Everything else is structural
// equality with no coercion: "200000" never equals 200000.
func looseEqual(actual, expected any) bool {
	actualNum, actualOK := numericValue(actual)
	expectedNum, expectedOK := numericValue(expected)
	if actualOK && expectedOK {
		return actualNum == expectedNum
	}
	if actualOK != expectedOK {
		return false
	}
	return reflect.DeepEqual(actual, expected)
}

// numericValue coerces numeric types only. Unlike the ordering operators it
// does not accept numeric strings.
func numericValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}

func compareNumeric(actual any, op schemeModel.Operator, expected any) bool {
	actualNum, ok := profileModel.Float(actual)
	if !ok {
		return false
	}
	expectedNum, ok := profileModel.Float(expected)
	if !ok {
		return false
	}
	switch op {
	case schemeModel.OpLess:
		return actualNum < expectedNum
	case schemeModel.OpLessOrEqual:
		return actualNum <= expectedNum
	case schemeModel.OpGreater:
		return actualNum > expectedNum
	case schemeModel.OpGreaterOrEqual:
		return actualNum >= expectedNum
	}
	return false
}

// memberOf tests list membership. Textual actuals compare case-insensitively
// against the stringified list, which absorbs casing drift in extracted
// category codes ("sc" vs "SC"). Non-textual actuals use direct membership.
func memberOf(actual, expected any) bool {
	list := asList(expected)
	if list == nil {
		return false
	}
	if text, ok := actual.(string); ok {
		upper := strings.ToUpper(text)
		for _, element := range list {
			if strings.ToUpper(stringify(element)) == upper {
				return true
			}
		}
		return false
	}
	for _, element := range list {
		if looseEqual(actual, element) {
			return true
		}
	}
	return false
}

func asList(expected any) []any {
	switch list := expected.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}

// Explain renders a one-line, direction-aware account of a comparison. It is
// audit output only and has no effect on the boolean outcome.
func Explain(field profileModel.FieldName, actual any, op schemeModel.Operator, expected any, matched bool) string {
	if actual == nil {
		return fmt.Sprintf("%s not provided (required to be %s %v)", field, op, expected)
	}

	switch op {
	case schemeModel.OpEqual:
		return fmt.Sprintf("%s is %v (expected: %v)", field, actual, expected)
	case schemeModel.OpLess:
		if matched {
			return fmt.Sprintf("%s %v < %v", field, actual, expected)
		}
		return fmt.Sprintf("%s %v >= %v", field, actual, expected)
	case schemeModel.OpLessOrEqual:
		if matched {
			return fmt.Sprintf("%s %v <= %v", field, actual, expected)
		}
		return fmt.Sprintf("%s %v > %v", field, actual, expected)
	case schemeModel.OpGreater:
		if matched {
			return fmt.Sprintf("%s %v > %v", field, actual, expected)
		}
		return fmt.Sprintf("%s %v <= %v", field, actual, expected)
	case schemeModel.OpGreaterOrEqual:
		if matched {
			return fmt.Sprintf("%s %v >= %v", field, actual, expected)
		}
		return fmt.Sprintf("%s %v < %v", field, actual, expected)
	case schemeModel.OpIn:
		if matched {
			return fmt.Sprintf("%s (%v) is one of %v", field, actual, expected)
		}
		return fmt.Sprintf("%s (%v) is not in %v", field, actual, expected)
	case schemeModel.OpNotIn:
		if matched {
			return fmt.Sprintf("%s (%v) is not in %v", field, actual, expected)
		}
		return fmt.Sprintf("%s (%v) is in %v", field, actual, expected)
	default:
		return fmt.Sprintf("%s: %v %s %v", field, actual, op, expected)
	}
}
