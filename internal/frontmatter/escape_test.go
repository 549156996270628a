package frontmatter

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEscapeValueKinds(t *testing.T) {
	published := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"plain string", "Intro to Go", "Intro to Go"},
		{"empty string", "", `""`},
		{"hyphen", "a-b", `"a-b"`},
		{"leading question", "?what", `"?what"`},
		{"reserved literal", "Yes", `"Yes"`},
		{"tilde", "~", `"~"`},
		{"leading digit", "1984", `"1984"`},
		{"colon space", "Part 1: Begin", `"Part 1: Begin"`},
		{"surrounding space", " padded ", `" padded "`},
		{"escapes", "say \"hi\"\\now", `"say \"hi\"\\now"`},
		{"newline", "line one\nline two", `"line one\nline two"`},
		{"line separator", "Part one\u2028Part two", `"Part one\LPart two"`},
		{"paragraph separator", "a\u2029b", `"a\Pb"`},
		{"next line", "a\u0085b", `"a\Nb"`},
		{"bell", "ding\x07", `"ding\u0007"`},
		{"slice", []any{"plain", 3, nil, "a: b"}, `[plain, 3, null, "a: b"]`},
		{"string slice", []string{"x", "y"}, "[x, y]"},
		{"time", published, `"2024-03-09T14:05:00Z"`},
		{"zero time", time.Time{}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeValue(tt.value); got != tt.want {
				t.Errorf("EscapeValue(%#v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestEscapeValueRoundTrip(t *testing.T) {
	values := []string{
		"Part 1: The Beginning",
		"2001: A Space Odyssey",
		"true",
		"NULL",
		"off",
		"42",
		"He said \"go\" \\ left",
		"tab\there",
		" leading and trailing ",
		"#hashtag",
		"@handle",
		"100% Pure",
		"plain title",
		"Part one\u2028Part two",
		"a\u2029b",
		"a\u0085b",
		"ding\x07dong",
		"zero\ufeffwidth",
	}
	for _, value := range values {
		escaped := EscapeValue(value)
		var decoded map[string]string
		if err := yaml.Unmarshal([]byte("title: "+escaped+"\n"), &decoded); err != nil {
			t.Fatalf("unmarshal %q (escaped %s): %v", value, escaped, err)
		}
		if decoded["title"] != value {
			t.Errorf("round trip mismatch: got %q want %q (escaped %s)", decoded["title"], value, escaped)
		}
	}
}

func TestHeaderString(t *testing.T) {
	var h Header
	h.Add("type", "playlist-item").Add("position", 3).Add("title", "Part 1: Go")
	want := "---\ntype: \"playlist-item\"\nposition: 3\ntitle: \"Part 1: Go\"\n---\n"
	if got := h.String(); got != want {
		t.Fatalf("unexpected header:\n%s\nwant:\n%s", got, want)
	}
}
