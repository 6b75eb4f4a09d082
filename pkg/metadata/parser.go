package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Document is the result of splitting a file into front matter and body
type Document struct {
	Meta     map[string]any
	Body     string
	Warnings []string
}

// Parse splits content into its front-matter block and trimmed body.
// It never fails: content without front matter yields empty metadata, and
// malformed front matter is treated as plain body with a warning recorded.
func Parse(content string) Document {
	meta := make(map[string]any)
	if strings.TrimSpace(content) == "" {
		return Document{Meta: meta}
	}

	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return Document{
			Meta:     map[string]any{},
			Body:     strings.TrimSpace(content),
			Warnings: []string{fmt.Sprintf("front matter ignored: %v", err)},
		}
	}

	return Document{
		Meta: meta,
		Body: strings.TrimSpace(string(body)),
	}
}

// Has reports whether the metadata defines key
func (d Document) Has(key string) bool {
	_, ok := d.Meta[key]
	return ok
}

// String returns the metadata value for key as a string, or fallback when
// the key is missing or empty.
func (d Document) String(key, fallback string) string {
	v, ok := d.Meta[key]
	if !ok || v == nil {
		return fallback
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case time.Time:
		s = val.UTC().Format(time.RFC3339)
	default:
		s = fmt.Sprint(val)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// Strings returns a list value for key. Both YAML sequences and
// comma-separated strings are accepted. Missing keys yield an empty slice.
func (d Document) Strings(key string) []string {
	out := []string{}

	switch val := d.Meta[key].(type) {
	case []any:
		for _, item := range val {
			if t := strings.TrimSpace(fmt.Sprint(item)); t != "" {
				out = append(out, t)
			}
		}
	case []string:
		for _, item := range val {
			if t := strings.TrimSpace(item); t != "" {
				out = append(out, t)
			}
		}
	case string:
		for _, part := range strings.Split(val, ",") {
			if t := strings.TrimSpace(part); t != "" {
				out = append(out, t)
			}
		}
	}

	return out
}

// Format renders meta as a YAML front-matter block followed by body.
// Keys are written in sorted order so output is stable.
func Format(meta map[string]any, body string) (string, error) {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var value yaml.Node
		if err := value.Encode(meta[k]); err != nil {
			return "", fmt.Errorf("failed to encode %q: %w", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &value)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}

// ParseRecord handles JSON asset records: objects that carry their own
// fields plus a string "code" field. It reports false for any other JSON,
// which callers should then treat as plain content.
func ParseRecord(content string) (Document, bool) {
	var record map[string]any
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return Document{}, false
	}

	code, ok := record["code"].(string)
	if !ok {
		return Document{}, false
	}
	delete(record, "code")

	return Document{
		Meta: record,
		Body: strings.TrimSpace(code),
	}, true
}
