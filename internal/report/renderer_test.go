package report

import (
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

func sampleResult(passed, failed, na int) *core.ExecutionResult {
	return &core.ExecutionResult{
		ChecklistName: "pm_checklist",
		TotalItems:    passed + failed + na,
		PassedItems:   passed,
		FailedItems:   failed,
		NAItems:       na,
		Sections: []core.SectionResult{
			{Title: "Planning", Total: passed + failed + na, Passed: passed, Failed: failed, NA: na},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	result := sampleResult(9, 1, 0)
	out := Render(result, core.ModeStandard, 1234)

	for _, want := range []string{
		"## Checklist: Pm Checklist",
		"**Document Length:** 1234 characters",
		"**Validation Mode:** standard",
		"**Passed Items:** 9",
		"**Failed Items:** 1",
		"**Pass Rate:** 90.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderStatusBands(t *testing.T) {
	tests := []struct {
		passed, failed int
		want           string
	}{
		{9, 1, "EXCELLENT"},
		{8, 2, "GOOD"},
		{7, 3, "NEEDS IMPROVEMENT"},
		{5, 5, "REQUIRES REVISION"},
	}
	for _, tt := range tests {
		out := Render(sampleResult(tt.passed, tt.failed, 0), core.ModeStandard, 500)
		if !strings.Contains(out, tt.want) {
			t.Errorf("%d/%d pass: expected band %q", tt.passed, tt.passed+tt.failed, tt.want)
		}
	}
}

func TestRenderFailedDetails(t *testing.T) {
	result := sampleResult(0, 1, 0)
	result.FailedDetails = []core.FailedDetail{
		{Category: "Planning", Description: "Define scope", Recommendation: "Define clear, measurable goals"},
	}
	result.Recommendations = []string{"Focus on addressing failed items systematically"}

	out := Render(result, core.ModeStrict, 50)
	if !strings.Contains(out, "1. **Planning:** Define scope") {
		t.Errorf("failed detail missing:\n%s", out)
	}
	if !strings.Contains(out, "*Recommendation:* Define clear, measurable goals") {
		t.Errorf("item recommendation missing:\n%s", out)
	}
	if !strings.Contains(out, "1. Focus on addressing failed items systematically") {
		t.Errorf("overall recommendation missing:\n%s", out)
	}
	if !strings.Contains(out, "Re-run validation after improvements") {
		t.Errorf("low-band next steps missing:\n%s", out)
	}
}

func TestRenderNextStepsHighBand(t *testing.T) {
	out := Render(sampleResult(10, 0, 0), core.ModeLenient, 5000)
	if !strings.Contains(out, "Document is ready for next phase") {
		t.Errorf("high-band next steps missing:\n%s", out)
	}
}

func TestMetadata(t *testing.T) {
	meta := Metadata(sampleResult(2, 1, 0), core.ModeLenient)
	if meta["status"] != "completed" {
		t.Errorf("status = %v", meta["status"])
	}
	if meta["checklist_name"] != "pm_checklist" {
		t.Errorf("checklist_name = %v", meta["checklist_name"])
	}
	if meta["validation_mode"] != "lenient" {
		t.Errorf("validation_mode = %v", meta["validation_mode"])
	}
	if meta["pass_rate"] != 66.6 {
		t.Errorf("pass_rate = %v", meta["pass_rate"])
	}
}

func TestArtifactPath(t *testing.T) {
	if got := ArtifactPath("pm_checklist", "prd"); got != "checklists/validation_pm_checklist_prd.md" {
		t.Errorf("path = %q", got)
	}
	if got := ArtifactPath("pm_checklist", ""); got != "checklists/validation_pm_checklist_document.md" {
		t.Errorf("default path = %q", got)
	}
}
