package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoHeader indicates the document does not start with a header block.
var ErrNoHeader = errors.New("no front matter block")

// Extract returns the raw text between the opening and closing delimiter lines.
func Extract(text string) (string, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	first, rest, ok := cutLine(text)
	if !ok || strings.TrimRight(first, " \t") != Delimiter {
		return "", ErrNoHeader
	}
	var block strings.Builder
	for {
		line, remainder, more := cutLine(rest)
		if strings.TrimRight(line, " \t") == Delimiter {
			return block.String(), nil
		}
		if !more {
			return "", fmt.Errorf("%w: closing delimiter missing", ErrNoHeader)
		}
		block.WriteString(line)
		block.WriteByte('\n')
		rest = remainder
	}
}

// Fields parses the header block and returns its scalar fields as literal
// text. Null values and nested collections are omitted.
func Fields(text string) (map[string]string, error) {
	block, err := Extract(text)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	fields := make(map[string]string)
	if len(doc.Content) == 0 {
		return fields, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse front matter: expected mapping, got kind %d", root.Kind)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
			continue
		}
		fields[key.Value] = value.Value
	}
	return fields, nil
}

// Field returns a single scalar field from the header block. ok is false when
// the document has no parsable header or the field is absent.
func Field(text, key string) (string, bool) {
	fields, err := Fields(text)
	if err != nil {
		return "", false
	}
	value, ok := fields[key]
	return value, ok
}

func cutLine(text string) (string, string, bool) {
	if text == "" {
		return "", "", false
	}
	line, rest, found := strings.Cut(text, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !found {
		return line, "", false
	}
	return line, rest, true
}
