// SPDX-License-Identifier: AGPL-3.0-or-later

package eval

import "strconv"

// isTruthy implements Lox truthiness: nil and false are false, every other
// value — including 0, 0.0, and the empty string — is true.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's deep value equality. nil equals only nil;
// booleans, numbers, and strings are distinct kinds that never compare
// equal to one another.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Value the way `print` does:
// nil -> "nil", booleans lowercased, integer-valued floats without a
// fractional part, other numbers with their minimal decimal form, strings
// without surrounding quotes, and callables via their own String().
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case Callable:
		return val.String()
	default:
		return ""
	}
}
