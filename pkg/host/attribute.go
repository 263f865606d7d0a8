package host

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ApplyAttribute applies one property to n following the attribute rule
// described in the package documentation.
func ApplyAttribute(a Adapter, n Node, name string, value any) error {
	switch name {
	case "children", "key":
		return nil
	case "className":
		return a.SetAttribute(n, "class", Stringify(value))
	case "style":
		if css, ok := StyleString(value); ok {
			return a.SetAttribute(n, "style", css)
		}
		return a.SetAttribute(n, "style", Stringify(value))
	}
	if typ, ok := EventType(name, value); ok {
		return a.BindEvent(n, typ, value)
	}
	return a.SetAttribute(n, name, Stringify(value))
}

// EventType reports whether name/value describe an event binding and returns
// the event type: the lowercased remainder after "on".
func EventType(name string, value any) (string, bool) {
	if len(name) <= 2 || !strings.HasPrefix(name, "on") {
		return "", false
	}
	if value != nil && reflect.TypeOf(value).Kind() != reflect.Func {
		return "", false
	}
	return strings.ToLower(name[2:]), true
}

// StyleString flattens a style map into "key:value;" pairs in key order.
// It reports false when value is not a map.
func StyleString(value any) (string, bool) {
	var keys []string
	var get func(string) string

	switch s := value.(type) {
	case map[string]string:
		for k := range s {
			keys = append(keys, k)
		}
		get = func(k string) string { return s[k] }
	case map[string]any:
		for k := range s {
			keys = append(keys, k)
		}
		get = func(k string) string { return Stringify(s[k]) }
	default:
		return "", false
	}

	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(Hyphenate(k))
		b.WriteByte(':')
		b.WriteString(get(k))
		b.WriteByte(';')
	}
	return b.String(), true
}

// Hyphenate converts a camelCase style key to its CSS form: fontSize →
// font-size.
func Hyphenate(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Stringify converts a prop value to its attribute string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
