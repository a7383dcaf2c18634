package checklist

import "testing"

func TestParseSectionsAndItems(t *testing.T) {
	content := `# PM Checklist

Intro text before any section is ignored.
- [ ] orphan item before first section

## Planning
Make sure the plan holds together.
Across multiple lines.
- [ ] Define project scope
- [ ] Identify stakeholders

### Subheading is not a section
- [ ] Item under subheading still belongs to Planning

## Requirements
- [ ] Requirements are clear
`

	cl := Parse(content, "pm_checklist")

	if cl.Name != "pm_checklist" {
		t.Errorf("name = %q", cl.Name)
	}
	if len(cl.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(cl.Sections))
	}
	if cl.TotalItems != 4 {
		t.Errorf("total items = %d, want 4", cl.TotalItems)
	}

	planning := cl.Sections[0]
	if planning.Title != "Planning" {
		t.Errorf("first section = %q", planning.Title)
	}
	if planning.Description != "Make sure the plan holds together. Across multiple lines." {
		t.Errorf("description = %q", planning.Description)
	}
	if len(planning.Items) != 3 {
		t.Fatalf("planning items = %d, want 3", len(planning.Items))
	}
	for _, item := range planning.Items {
		if item.Category != "Planning" {
			t.Errorf("item %q category = %q, want Planning", item.Text, item.Category)
		}
		if !item.Required {
			t.Errorf("item %q should be required", item.Text)
		}
	}

	if cl.Sections[1].Title != "Requirements" {
		t.Errorf("second section = %q", cl.Sections[1].Title)
	}
}

func TestParseItemsBeforeSectionDropped(t *testing.T) {
	cl := Parse("- [ ] floating item\n- [ ] another\n", "loose")
	if cl.TotalItems != 0 || len(cl.Sections) != 0 {
		t.Errorf("items before any heading must be dropped, got %+v", cl)
	}
}

func TestParseTotalMatchesSectionSum(t *testing.T) {
	content := "## A\n- [ ] one\n- [ ] two\n## B\n- [ ] three\n"
	cl := Parse(content, "sum")

	sum := 0
	for _, s := range cl.Sections {
		sum += len(s.Items)
	}
	if cl.TotalItems != sum {
		t.Errorf("TotalItems %d != section sum %d", cl.TotalItems, sum)
	}
}

func TestParseFinalSectionFlushed(t *testing.T) {
	cl := Parse("## Last\n- [ ] only item", "tail")
	if len(cl.Sections) != 1 || len(cl.Sections[0].Items) != 1 {
		t.Errorf("trailing section lost: %+v", cl)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cl := Parse("", "empty")
	if cl.TotalItems != 0 || len(cl.Sections) != 0 {
		t.Errorf("empty document should produce empty checklist, got %+v", cl)
	}
}
