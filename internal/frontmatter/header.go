package frontmatter

import "strings"

// Delimiter opens and closes a header block.
const Delimiter = "---"

type field struct {
	key   string
	value any
}

// Header accumulates key/value pairs and renders them as a delimited block.
type Header struct {
	fields []field
}

// Add appends a field. Keys are written verbatim; values go through EscapeValue.
func (h *Header) Add(key string, value any) *Header {
	h.fields = append(h.fields, field{key: key, value: value})
	return h
}

// String renders the block including both delimiter lines and a trailing newline.
func (h *Header) String() string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for _, f := range h.fields {
		b.WriteString(f.key)
		b.WriteString(": ")
		b.WriteString(EscapeValue(f.value))
		b.WriteByte('\n')
	}
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	return b.String()
}
