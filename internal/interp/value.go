package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// isTruthy implements Lox truthiness: nil and false are false, everything
// else (including 0 and "") is true.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox structural equality: nil equals only nil, values
// of different dynamic types are never equal, numbers compare by host ==.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders v the way `print` and string concatenation do: nil is
// "nil", booleans are "true"/"false", numbers drop a trailing ".0", strings
// are themselves, and everything else falls back to its own String method.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		text := strconv.FormatFloat(val, 'f', -1, 64)
		return strings.TrimSuffix(text, ".0")
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
