package store

import (
	"strings"
	"testing"
)

func TestFrontmatterRenderOrder(t *testing.T) {
	f := NewFrontmatter()
	f.Set("zeta", "last inserted first rendered")
	f.Set("alpha", 1)
	f.Set("zeta", "updated in place")

	out := f.Render()
	if !strings.HasPrefix(out, "---\n") || !strings.HasSuffix(out, "---\n\n") {
		t.Errorf("missing delimiters: %q", out)
	}
	zetaIdx := strings.Index(out, "zeta")
	alphaIdx := strings.Index(out, "alpha")
	if zetaIdx > alphaIdx {
		t.Errorf("insertion order not preserved: %q", out)
	}
	if !strings.Contains(out, "updated in place") {
		t.Errorf("Set should update in place: %q", out)
	}
}

func TestFrontmatterEmptyRendersNothing(t *testing.T) {
	if out := NewFrontmatter().Render(); out != "" {
		t.Errorf("empty frontmatter should render empty, got %q", out)
	}
}

func TestFromMapIsDeterministic(t *testing.T) {
	m := map[string]interface{}{"c": 3, "a": 1, "b": 2}
	first := FromMap(m).Render()
	for i := 0; i < 10; i++ {
		if got := FromMap(m).Render(); got != first {
			t.Fatalf("rendering not deterministic: %q vs %q", first, got)
		}
	}
	if strings.Index(first, "a:") > strings.Index(first, "b:") {
		t.Errorf("FromMap should sort keys: %q", first)
	}
}

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"plain", false},
		{"", true},
		{"has: colon", true},
		{"true", true},
		{"No", true},
		{" padded", true},
		{"with#hash", true},
	}
	for _, tt := range tests {
		if got := needsQuoting(tt.s); got != tt.want {
			t.Errorf("needsQuoting(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestSplitDocumentRoundTrip(t *testing.T) {
	f := FromMap(map[string]interface{}{
		"status":  "draft",
		"version": 2,
		"title":   "Payment flows: v2",
	})
	content := "# Document\n\nBody text with --- inside is fine."
	raw := f.Render() + content

	meta, got, err := SplitDocument(raw)
	if err != nil {
		t.Fatalf("SplitDocument: %v", err)
	}
	if got != content {
		t.Errorf("content = %q, want %q", got, content)
	}
	if meta["status"] != "draft" {
		t.Errorf("status = %v", meta["status"])
	}
	if meta["version"] != 2 {
		t.Errorf("version = %v (%T)", meta["version"], meta["version"])
	}
	if meta["title"] != "Payment flows: v2" {
		t.Errorf("title = %v", meta["title"])
	}
}

func TestSplitDocumentNoBlock(t *testing.T) {
	meta, content, err := SplitDocument("just plain text")
	if err != nil || meta != nil || content != "just plain text" {
		t.Errorf("plain text should pass through: meta=%v content=%q err=%v", meta, content, err)
	}
}

func TestSplitDocumentMalformedBlock(t *testing.T) {
	raw := "---\n{not valid yaml: [\n---\n\nbody"
	meta, content, err := SplitDocument(raw)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if meta != nil {
		t.Error("malformed block should yield nil metadata")
	}
	if content != raw {
		t.Error("malformed block should return raw text for graceful degradation")
	}
}
