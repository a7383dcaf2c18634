package store

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block written at the top of markdown
// artifacts. Field order is preserved from insertion so serialization
// is deterministic.
type Frontmatter struct {
	fields map[string]interface{}
	order  []string
}

// NewFrontmatter creates an empty frontmatter block.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{
		fields: make(map[string]interface{}),
		order:  make([]string, 0),
	}
}

// FromMap creates a Frontmatter from a map with keys sorted
// alphabetically, since Go maps carry no order of their own.
func FromMap(m map[string]interface{}) *Frontmatter {
	f := NewFrontmatter()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Set(k, m[k])
	}
	return f
}

// Set adds or updates a field, keeping first-insertion order.
func (f *Frontmatter) Set(key string, value interface{}) {
	if _, exists := f.fields[key]; !exists {
		f.order = append(f.order, key)
	}
	f.fields[key] = value
}

// Get retrieves a field value.
func (f *Frontmatter) Get(key string) (interface{}, bool) {
	v, ok := f.fields[key]
	return v, ok
}

// Map returns the fields as a plain map.
func (f *Frontmatter) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(f.fields))
	for k, v := range f.fields {
		m[k] = v
	}
	return m
}

// Render produces the delimited metadata block, one mapping entry per
// line, followed by the blank separator line.
func (f *Frontmatter) Render() string {
	if len(f.fields) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	for _, key := range f.order {
		sb.WriteString(formatField(key, f.fields[key]))
	}
	sb.WriteString("---\n\n")
	return sb.String()
}

func formatField(key string, value interface{}) string {
	switch v := value.(type) {
	case string:
		if needsQuoting(v) {
			return fmt.Sprintf("%s: %q\n", key, v)
		}
		return fmt.Sprintf("%s: %s\n", key, v)
	case int, int32, int64:
		return fmt.Sprintf("%s: %d\n", key, v)
	case float32, float64:
		return fmt.Sprintf("%s: %v\n", key, v)
	case bool:
		return fmt.Sprintf("%s: %t\n", key, v)
	case []string:
		return formatList(key, v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return formatList(key, items)
	default:
		return fmt.Sprintf("%s: %v\n", key, v)
	}
}

func formatList(key string, values []string) string {
	if len(values) == 0 {
		return fmt.Sprintf("%s: []\n", key)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", key)
	for _, v := range values {
		if needsQuoting(v) {
			fmt.Fprintf(&sb, "  - %q\n", v)
		} else {
			fmt.Fprintf(&sb, "  - %s\n", v)
		}
	}
	return sb.String()
}

// needsQuoting checks if a string value needs YAML quoting.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, ":#[]{},&*!|>'\"%@`") {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "null", "yes", "no":
		return true
	}
	return strings.TrimSpace(s) != s
}

// SplitDocument separates a raw artifact into its metadata map and
// content. Documents without a leading delimiter return the raw text
// and a nil map. A malformed metadata block returns an error along
// with the raw text so callers can degrade gracefully.
func SplitDocument(raw string) (map[string]interface{}, string, error) {
	if !strings.HasPrefix(raw, "---") {
		return nil, raw, nil
	}

	parts := strings.SplitN(raw, "---", 3)
	if len(parts) < 3 {
		return nil, raw, nil
	}

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, raw, fmt.Errorf("parsing metadata block: %w", err)
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return meta, strings.TrimSpace(parts[2]), nil
}
