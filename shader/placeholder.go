package shader

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// placeholderPattern matches {{NAME}} tokens. NAME is a run of word characters.
var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Values maps placeholder names to their replacement. Supported value types
// are bool, the integer and float kinds, and string; anything else is
// rendered with fmt.Sprint.
type Values map[string]any

// Replace substitutes every {{NAME}} token in source with the text form of
// values[NAME]. Booleans become "1" or "0" so they can be used as integer
// literals in WGSL. Tokens with no entry in values are left unchanged and
// their names are returned, each once, in order of first appearance.
//
// Replace is pure: calling it twice with the same values yields the same
// output, because substituted text no longer contains matching tokens.
func Replace(source string, values Values) (string, []string) {
	var missing []string
	out := ReplaceFunc(source, values, func(name string) {
		if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	})
	return out, missing
}

// ReplaceFunc is like Replace but reports every unresolved token occurrence
// to warn instead of collecting them. A nil warn drops the diagnostics.
func ReplaceFunc(source string, values Values, warn func(name string)) string {
	return placeholderPattern.ReplaceAllStringFunc(source, func(token string) string {
		name := token[2 : len(token)-2]
		v, ok := values[name]
		if !ok {
			if warn != nil {
				warn(name)
			}
			return token
		}
		return FormatValue(v)
	})
}

// Names returns the distinct placeholder names used in source, in order of
// first appearance.
func Names(source string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(source, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// FormatValue renders v the way Replace writes it into shader source.
func FormatValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "1"
		}
		return "0"
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
