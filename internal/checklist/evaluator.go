package checklist

import (
	"strings"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// rule pairs a keyword with a predicate over the document. A rule is
// relevant to an item when the keyword occurs as a substring of the
// lower-cased item text; every relevant rule votes on the verdict.
type rule struct {
	keyword string
	applies func(doc docView) bool
}

// docView caches the lower-cased document so predicates don't redo
// the work per rule.
type docView struct {
	raw   string
	lower string
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// rules is the static, ordered keyword-predicate table. The heuristics
// are intentionally keyword and length based; thresholds are part of
// the scoring contract and must not drift.
var rules = []rule{
	// Content presence
	{"clear", func(d docView) bool { return containsAny(d.lower, "clear", "clearly", "specific", "detailed") }},
	{"goal", func(d docView) bool { return strings.Contains(d.lower, "goal") }},
	{"requirement", func(d docView) bool { return containsAny(d.lower, "requirement", "must", "should", "shall") }},
	{"user", func(d docView) bool { return strings.Contains(d.lower, "user") }},
	{"story", func(d docView) bool { return strings.Contains(d.lower, "story") }},
	{"acceptance", func(d docView) bool { return containsAny(d.lower, "acceptance", "criteria") }},
	{"epic", func(d docView) bool { return strings.Contains(d.lower, "epic") }},
	{"architecture", func(d docView) bool { return strings.Contains(d.lower, "architecture") }},
	{"technical", func(d docView) bool { return containsAny(d.lower, "technical", "technology", "tech") }},
	{"testing", func(d docView) bool { return containsAny(d.lower, "test", "testing", "quality") }},
	{"security", func(d docView) bool { return strings.Contains(d.lower, "security") }},

	// Structure
	{"section", func(d docView) bool { return strings.Count(d.lower, "#") >= 3 }},
	{"list", func(d docView) bool { return strings.Count(d.lower, "-") >= 3 }},
	{"table", func(d docView) bool { return strings.Contains(d.lower, "|") }},

	// Length
	{"comprehensive", func(d docView) bool { return len(d.raw) > 2000 }},
	{"detailed", func(d docView) bool { return len(d.raw) > 1000 }},
	{"brief", func(d docView) bool { return len(d.raw) < 1000 }},
}

// naMarkers mark an item as conditionally applicable.
var naMarkers = []string{"if applicable", "if needed", "optional"}

// domainMarkers are the document hints that make a conditional item
// applicable after all.
var domainMarkers = []string{"ui", "frontend", "api", "database"}

// minSubstantialLength is the fallback threshold when no rule is
// relevant: any document longer than this passes. Coarse, but part of
// the scoring contract.
const minSubstantialLength = 100

// evaluateItem scores a single checklist item against the document.
// Pure function of its inputs.
func evaluateItem(item core.ChecklistItem, document string, _ *core.ValidationContext, mode core.Mode) core.ItemResult {
	itemText := strings.ToLower(item.Text)
	doc := docView{raw: document, lower: strings.ToLower(document)}

	if containsAny(itemText, naMarkers...) && !containsAny(doc.lower, domainMarkers...) {
		return core.ItemResult{Text: item.Text, Status: core.StatusNA}
	}

	var relevant []rule
	for _, r := range rules {
		if strings.Contains(itemText, r.keyword) {
			relevant = append(relevant, r)
		}
	}

	status := core.StatusFail
	if len(relevant) == 0 {
		if len(document) > minSubstantialLength {
			status = core.StatusPass
		}
	} else {
		passed := 0
		for _, r := range relevant {
			if r.applies(doc) {
				passed++
			}
		}
		required := mode.PassFraction() * float64(len(relevant))
		if float64(passed) >= required {
			status = core.StatusPass
		}
	}

	result := core.ItemResult{Text: item.Text, Status: status}
	if status == core.StatusFail {
		result.Recommendation = remediation(itemText)
	}
	return result
}

// remediation returns the first matching keyword-specific fix for a
// failed item.
func remediation(itemText string) string {
	switch {
	case strings.Contains(itemText, "clear"):
		return "Add more specific and detailed explanations"
	case strings.Contains(itemText, "goal"):
		return "Define clear, measurable goals"
	case strings.Contains(itemText, "requirement"):
		return "Add explicit requirements with clear language"
	case strings.Contains(itemText, "testing"):
		return "Include testing strategy and requirements"
	default:
		return "Review and enhance this aspect of the document"
	}
}
