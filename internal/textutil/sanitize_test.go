package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeNameRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"separators", `AC/DC \ Live: Part|Two`, "AC-DC - Live- Part-Two"},
		{"brackets", "[Live] <Remastered> {HD}", "(Live) (Remastered) (HD)"},
		{"hash", "Episode #4", "Episode no 4"},
		{"hash at end", "Top#", "Topno"},
		{"deleted", "Why? *Really* ^^", "Why Really"},
		{"quotes", `The "Best" Of`, "The 'Best' Of"},
		{"whitespace", "  lots \t of\n\nspace  ", "lots of space"},
		{"empty", "", ""},
		{"only reserved", "???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("\u00e9", 250)
	got := SanitizeName(long)
	if n := utf8.RuneCountInString(got); n != MaxNameLength {
		t.Fatalf("expected %d runes, got %d", MaxNameLength, n)
	}

	// A space landing on the cut must not survive as a trailing space.
	spaced := strings.Repeat("a", MaxNameLength-1) + " tail"
	got = SanitizeName(spaced)
	if strings.HasSuffix(got, " ") {
		t.Fatalf("expected trailing space trimmed after truncation, got %q", got)
	}
}

func TestSanitizeNameTotality(t *testing.T) {
	inputs := []string{
		`a\b/c:d*e?f"g<h>i|j`,
		"# ? * ^ \" / \\",
		"e?\u0301 combining",
		"Café [Remix] #1",
		strings.Repeat("x ", 150) + "#",
		" spaced\u3000out ",
		"<<<>>>",
		"trailing whitespace \t",
	}
	const forbidden = `\/:*?"<>|`
	for _, in := range inputs {
		once := SanitizeName(in)
		if strings.ContainsAny(once, forbidden) {
			t.Errorf("SanitizeName(%q) = %q contains a reserved character", in, once)
		}
		if utf8.RuneCountInString(once) > MaxNameLength {
			t.Errorf("SanitizeName(%q) exceeds %d runes", in, MaxNameLength)
		}
		if twice := SanitizeName(once); twice != once {
			t.Errorf("SanitizeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitizeNameNormalizesComposition(t *testing.T) {
	decomposed := "Cafe\u0301"
	composed := "Caf\u00e9"
	if SanitizeName(decomposed) != SanitizeName(composed) {
		t.Fatalf("expected equal names for composed and decomposed input")
	}
}
