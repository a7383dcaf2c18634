// Package report renders checklist execution results as markdown
// validation reports.
package report

import (
	"fmt"
	"strings"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// Banding thresholds for the overall status line.
const (
	bandExcellent = 90
	bandGood      = 80
	bandNeedsWork = 70
)

// Render produces the full markdown validation report for one
// checklist execution. documentLength is the size of the validated
// document in characters.
func Render(result *core.ExecutionResult, mode core.Mode, documentLength int) string {
	var sb strings.Builder

	passRate := result.PassRate()

	fmt.Fprintf(&sb, "# Checklist Validation Report\n\n")
	fmt.Fprintf(&sb, "## Checklist: %s\n\n", titleCase(result.ChecklistName))
	sb.WriteString("### Validation Summary\n")
	fmt.Fprintf(&sb, "- **Document Length:** %d characters\n", documentLength)
	fmt.Fprintf(&sb, "- **Validation Mode:** %s\n", mode)
	fmt.Fprintf(&sb, "- **Total Checklist Items:** %d\n", result.TotalItems)
	fmt.Fprintf(&sb, "- **Passed Items:** %d\n", result.PassedItems)
	fmt.Fprintf(&sb, "- **Failed Items:** %d\n", result.FailedItems)
	fmt.Fprintf(&sb, "- **Not Applicable:** %d\n", result.NAItems)
	fmt.Fprintf(&sb, "- **Pass Rate:** %.1f%%\n\n", passRate)

	sb.WriteString("### Overall Status\n")
	sb.WriteString(statusLine(passRate))
	sb.WriteString("\n")

	if len(result.Sections) > 0 {
		sb.WriteString("\n### Section Results\n")
		for _, section := range result.Sections {
			rate := 0.0
			if section.Total > 0 {
				rate = float64(section.Passed) / float64(section.Total) * 100
			}
			fmt.Fprintf(&sb, "- **%s:** %d/%d (%.0f%%) %s\n",
				section.Title, section.Passed, section.Total, rate, sectionIcon(rate))
		}
	}

	if len(result.FailedDetails) > 0 {
		sb.WriteString("\n### Failed Items Requiring Attention\n")
		for i, item := range result.FailedDetails {
			fmt.Fprintf(&sb, "%d. **%s:** %s\n", i+1, item.Category, item.Description)
			if item.Recommendation != "" {
				fmt.Fprintf(&sb, "   *Recommendation:* %s\n", item.Recommendation)
			}
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\n### Specific Recommendations\n")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}

	sb.WriteString("\n### Next Steps\n")
	if passRate >= bandGood {
		sb.WriteString("- Document is ready for next phase\n")
		sb.WriteString("- Address any failed items for optimal quality\n")
	} else {
		sb.WriteString("- Address all failed items before proceeding\n")
		sb.WriteString("- Re-run validation after improvements\n")
	}

	return sb.String()
}

func statusLine(passRate float64) string {
	switch {
	case passRate >= bandExcellent:
		return "**EXCELLENT** - Document meets quality standards"
	case passRate >= bandGood:
		return "**GOOD** - Document meets most requirements with minor improvements needed"
	case passRate >= bandNeedsWork:
		return "**NEEDS IMPROVEMENT** - Several areas require attention"
	default:
		return "**REQUIRES REVISION** - Significant improvements needed before proceeding"
	}
}

func sectionIcon(rate float64) string {
	switch {
	case rate >= 80:
		return "OK"
	case rate >= 60:
		return "WARN"
	default:
		return "FAIL"
	}
}

// titleCase turns a checklist identifier like pm_checklist into
// "Pm Checklist" for the report heading.
func titleCase(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Metadata builds the artifact metadata attached to a saved report.
func Metadata(result *core.ExecutionResult, mode core.Mode) map[string]interface{} {
	passRate := result.PassRate()
	return map[string]interface{}{
		"status":          "completed",
		"checklist_name":  result.ChecklistName,
		"validation_mode": string(mode),
		"pass_rate":       float64(int(passRate*10)) / 10,
	}
}

// ArtifactPath returns the store path for a saved validation report.
func ArtifactPath(checklistName, documentType string) string {
	if documentType == "" {
		documentType = "document"
	}
	return fmt.Sprintf("checklists/validation_%s_%s.md", checklistName, documentType)
}
