// Package checklist implements the document quality-gate engine:
// loading markdown checklists, scoring documents against them under a
// strictness mode, and aggregating the verdicts into a report.
package checklist

import (
	"strings"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// Parse turns a markdown checklist document into its structured form.
//
// The source format is a constrained markdown subset: a "##" heading
// (but not "###") opens a section, "- [ ]" adds an item to the open
// section, and any other non-empty line that is neither a heading nor
// a list marker accumulates onto the section description. Items that
// appear before the first section heading are dropped.
func Parse(content, name string) *core.Checklist {
	cl := &core.Checklist{Name: name}
	var current *core.ChecklistSection

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###"):
			if current != nil {
				cl.Sections = append(cl.Sections, *current)
			}
			title := strings.TrimSpace(strings.ReplaceAll(line, "#", ""))
			current = &core.ChecklistSection{Title: title}

		case strings.HasPrefix(line, "- [ ]"):
			if current == nil {
				continue
			}
			text := strings.TrimSpace(strings.TrimPrefix(line, "- [ ]"))
			current.Items = append(current.Items, core.ChecklistItem{
				Text:     text,
				Required: true,
				Category: current.Title,
			})
			cl.TotalItems++

		case current != nil && line != "" && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "-"):
			if current.Description != "" {
				current.Description += " " + line
			} else {
				current.Description = line
			}
		}
	}

	if current != nil {
		cl.Sections = append(cl.Sections, *current)
	}

	return cl
}
