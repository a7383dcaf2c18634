package checklist

import (
	"fmt"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// Execute scores every item of the checklist against the document and
// aggregates per-section and overall tallies, failed-item details, and
// overall recommendations. Sections and items are visited in
// declaration order.
func Execute(cl *core.Checklist, document string, ctx *core.ValidationContext, mode core.Mode) (*core.ExecutionResult, error) {
	if !core.ValidMode(mode) {
		return nil, core.ErrValidation(core.CodeInvalidMode,
			"validation mode must be one of strict, standard, lenient").
			WithDetail("mode", string(mode))
	}

	result := &core.ExecutionResult{
		ChecklistName: cl.Name,
		TotalItems:    cl.TotalItems,
	}

	for _, section := range cl.Sections {
		sectionResult := core.SectionResult{
			Title: section.Title,
			Total: len(section.Items),
		}

		for _, item := range section.Items {
			itemResult := evaluateItem(item, document, ctx, mode)
			sectionResult.Items = append(sectionResult.Items, itemResult)

			switch itemResult.Status {
			case core.StatusPass:
				sectionResult.Passed++
				result.PassedItems++
			case core.StatusFail:
				sectionResult.Failed++
				result.FailedItems++
				result.FailedDetails = append(result.FailedDetails, core.FailedDetail{
					Category:       section.Title,
					Description:    item.Text,
					Recommendation: itemResult.Recommendation,
				})
			default:
				sectionResult.NA++
				result.NAItems++
			}
		}

		result.Sections = append(result.Sections, sectionResult)
	}

	result.Recommendations = overallRecommendations(result)
	return result, nil
}

// overallRecommendations derives the free-text advice appended to
// every execution result.
func overallRecommendations(result *core.ExecutionResult) []string {
	var recs []string

	passRate := result.PassRate()
	if passRate < 70 {
		recs = append(recs,
			"Document requires significant improvement before proceeding to next phase",
			"Focus on addressing failed items systematically")
	} else if passRate < 85 {
		recs = append(recs,
			"Document is good but could benefit from addressing remaining failed items")
	}

	// Name the section with the most failures, first seen wins ties.
	if len(result.FailedDetails) > 0 {
		counts := make(map[string]int)
		var order []string
		for _, d := range result.FailedDetails {
			if _, seen := counts[d.Category]; !seen {
				order = append(order, d.Category)
			}
			counts[d.Category]++
		}

		worst := order[0]
		for _, category := range order {
			if counts[category] > counts[worst] {
				worst = category
			}
		}

		recs = append(recs, fmt.Sprintf(
			"Pay special attention to '%s' section - %d items need improvement",
			worst, counts[worst]))
	}

	return recs
}
