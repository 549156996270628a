package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the maximum number of runes SanitizeName returns.
const MaxNameLength = 200

var (
	separatorReplacer    = strings.NewReplacer("\\", "-", "/", "-", ":", "-", "|", "-")
	openBracketReplacer  = strings.NewReplacer("[", "(", "<", "(", "{", "(")
	closeBracketReplacer = strings.NewReplacer("]", ")", ">", ")", "}", ")")
	hashReplacer         = strings.NewReplacer("#", "no ")
	deleteReplacer       = strings.NewReplacer("?", "", "*", "", "^", "")
	quoteReplacer        = strings.NewReplacer("\"", "'")
)

// SanitizeName rewrites name into a filesystem-safe document or folder name.
//
// Path separators, colons, and pipes become hyphens; opening brackets become
// "(" and closing brackets ")"; "#" becomes "no "; "?", "*" and "^" are
// dropped; double quotes become single quotes. Whitespace runs collapse to a
// single space, the result is trimmed, NFC-normalized, and truncated to
// MaxNameLength runes.
func SanitizeName(name string) string {
	name = separatorReplacer.Replace(name)
	name = openBracketReplacer.Replace(name)
	name = closeBracketReplacer.Replace(name)
	name = hashReplacer.Replace(name)
	name = deleteReplacer.Replace(name)
	name = quoteReplacer.Replace(name)
	name = collapseSpace(name)
	name = strings.TrimSpace(name)
	name = norm.NFC.String(name)
	return truncateRunes(name, MaxNameLength)
}

func collapseSpace(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	inSpace := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func truncateRunes(value string, limit int) string {
	count := 0
	for idx := range value {
		if count == limit {
			return strings.TrimRightFunc(value[:idx], unicode.IsSpace)
		}
		count++
	}
	return value
}
