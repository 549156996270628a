package frontmatter

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	specialChars = ":-[]{}#&*!|>'\"%@`"
	leadingChars = "-?:,[]{}#&*!|>'\"%@`"
)

var (
	reservedLiteral = regexp.MustCompile(`(?i)^(true|false|yes|no|on|off|null|~)$`)
	colonSpace      = regexp.MustCompile(`:\s`)

	shortEscapes = map[rune]string{
		'\\':     `\\`,
		'"':      `\"`,
		'\n':     `\n`,
		'\r':     `\r`,
		'\t':     `\t`,
		'\u0085': `\N`,
		'\u2028': `\L`,
		'\u2029': `\P`,
	}
)

// EscapeValue renders value so it can be embedded after "key: " in a header
// block without changing its meaning.
//
// nil renders as null, booleans and numbers verbatim, slices and arrays as a
// bracketed, comma-joined list of escaped elements, and time values as RFC3339.
// Everything else is treated as a string and double-quoted when a YAML parser
// could misread it.
func EscapeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return escapeString(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return "null"
		}
		return escapeString(v.Format(time.RFC3339))
	case fmt.Stringer:
		return escapeString(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return EscapeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "null"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = EscapeValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	}
	return escapeString(fmt.Sprint(value))
}

func escapeString(value string) string {
	if !needsQuoting(value) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for _, r := range value {
		switch {
		case shortEscapes[r] != "":
			b.WriteString(shortEscapes[r])
		case unprintable(r):
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// unprintable reports runes a YAML parser treats as line breaks or refuses
// to read raw, even inside double quotes.
func unprintable(r rune) bool {
	switch r {
	case '\u0085', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.IsControl(r)
}

func needsQuoting(value string) bool {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		return true
	case trimmed != value:
		return true
	case strings.ContainsAny(trimmed, specialChars):
		return true
	case strings.ContainsRune(leadingChars, rune(trimmed[0])):
		return true
	case reservedLiteral.MatchString(trimmed):
		return true
	case trimmed[0] >= '0' && trimmed[0] <= '9':
		return true
	case colonSpace.MatchString(trimmed):
		return true
	case strings.IndexFunc(value, unprintable) >= 0:
		return true
	}
	return false
}
