package frontmatter

import (
	"errors"
	"testing"
)

func TestFieldsReadsScalarsAsText(t *testing.T) {
	doc := "---\ntype: \"playlist-item\"\nvideo_id: 12345678901\ntitle: \"Part 1: Go\"\nprevious: null\ntags: [a, b]\n---\n\n# Body\n"
	fields, err := Fields(doc)
	if err != nil {
		t.Fatalf("Fields returned error: %v", err)
	}
	if fields["video_id"] != "12345678901" {
		t.Fatalf("expected literal video id, got %q", fields["video_id"])
	}
	if fields["title"] != "Part 1: Go" {
		t.Fatalf("unexpected title %q", fields["title"])
	}
	if _, ok := fields["previous"]; ok {
		t.Fatal("expected null field to be omitted")
	}
	if _, ok := fields["tags"]; ok {
		t.Fatal("expected sequence field to be omitted")
	}
}

func TestFieldsRejectsMissingHeader(t *testing.T) {
	cases := map[string]string{
		"no header":       "# Just a note\n",
		"unterminated":    "---\nvideo_id: abc\n",
		"empty document":  "",
		"late delimiter":  "intro\n---\nvideo_id: abc\n---\n",
		"indented opener": " ---\nvideo_id: abc\n---\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Fields(doc); !errors.Is(err, ErrNoHeader) {
				t.Fatalf("expected ErrNoHeader, got %v", err)
			}
		})
	}
}

func TestFieldsRejectsInvalidYAML(t *testing.T) {
	if _, err := Fields("---\nvideo_id: [unclosed\n---\n"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Fields("---\n- just\n- a list\n---\n"); err == nil {
		t.Fatal("expected error for non-mapping header")
	}
}

func TestFieldHandlesCRLFAndBOM(t *testing.T) {
	doc := "\ufeff---\r\nvideo_id: abcDEF12345\r\n---\r\nbody\r\n"
	id, ok := Field(doc, "video_id")
	if !ok || id != "abcDEF12345" {
		t.Fatalf("expected video id from CRLF document, got %q ok=%v", id, ok)
	}
}

func TestFieldWithHeaderBuilder(t *testing.T) {
	var h Header
	h.Add("video_id", "-dQw4w9WgXc").Add("title", "yes")
	doc := h.String() + "\n# Title\n"
	id, ok := Field(doc, "video_id")
	if !ok || id != "-dQw4w9WgXc" {
		t.Fatalf("unexpected video id %q ok=%v", id, ok)
	}
	title, _ := Field(doc, "title")
	if title != "yes" {
		t.Fatalf("expected reserved literal to survive as text, got %q", title)
	}
}

func TestFieldReadsHeaderWithUnicodeLineBreaks(t *testing.T) {
	for _, title := range []string{"a\u2028b", "a\u2029b", "a\u0085b"} {
		var h Header
		h.Add("title", title).Add("video_id", "abcdefghijk")
		doc := h.String()
		got, ok := Field(doc, "title")
		if !ok || got != title {
			t.Fatalf("title %q read back as %q ok=%v", title, got, ok)
		}
		if id, ok := Field(doc, "video_id"); !ok || id != "abcdefghijk" {
			t.Fatalf("video id lost next to title %q: %q ok=%v", title, id, ok)
		}
	}
}
