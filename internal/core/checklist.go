package core

// ItemStatus is the verdict for a single checklist item.
type ItemStatus string

const (
	StatusPass ItemStatus = "pass"
	StatusFail ItemStatus = "fail"
	StatusNA   ItemStatus = "na"
)

// ChecklistItem is a single quality criterion within a section.
// Immutable once parsed.
type ChecklistItem struct {
	Text     string `json:"text"`
	Required bool   `json:"required"`
	Category string `json:"category"` // owning section title
}

// ChecklistSection groups related items under a title. Item order is
// significant and drives report ordering.
type ChecklistSection struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Items       []ChecklistItem `json:"items"`
}

// Checklist is a named, ordered set of quality sections.
type Checklist struct {
	Name       string             `json:"name"`
	Sections   []ChecklistSection `json:"sections"`
	TotalItems int                `json:"total_items"`
}

// Clone returns a deep copy of the checklist so cached instances
// cannot be mutated by callers.
func (c *Checklist) Clone() *Checklist {
	clone := &Checklist{
		Name:       c.Name,
		TotalItems: c.TotalItems,
		Sections:   make([]ChecklistSection, len(c.Sections)),
	}
	for i, s := range c.Sections {
		sec := ChecklistSection{
			Title:       s.Title,
			Description: s.Description,
			Items:       make([]ChecklistItem, len(s.Items)),
		}
		copy(sec.Items, s.Items)
		clone.Sections[i] = sec
	}
	return clone
}

// ItemResult is the verdict for one checklist item.
type ItemResult struct {
	Text           string     `json:"text"`
	Status         ItemStatus `json:"status"`
	Recommendation string     `json:"recommendation,omitempty"`
}

// SectionResult aggregates verdicts for one section.
type SectionResult struct {
	Title  string       `json:"title"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	NA     int          `json:"na"`
	Items  []ItemResult `json:"items"`
}

// FailedDetail captures one failed item for the remediation list.
type FailedDetail struct {
	Category       string `json:"category"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ExecutionResult is the complete outcome of running a checklist
// against a document. Created fresh per execution; never mutated
// after return.
type ExecutionResult struct {
	ChecklistName   string          `json:"checklist_name"`
	TotalItems      int             `json:"total_items"`
	PassedItems     int             `json:"passed_items"`
	FailedItems     int             `json:"failed_items"`
	NAItems         int             `json:"na_items"`
	Sections        []SectionResult `json:"section_results"`
	FailedDetails   []FailedDetail  `json:"failed_items_details"`
	Recommendations []string        `json:"recommendations"`
}

// PassRate returns the overall pass rate as a percentage.
// NA items count against the rate the same way the executor counts them.
func (r *ExecutionResult) PassRate() float64 {
	if r.TotalItems == 0 {
		return 0
	}
	return float64(r.PassedItems) / float64(r.TotalItems) * 100
}

// ValidationContext carries optional caller hints into evaluation.
// The evaluator is free to ignore fields it has no rule for.
type ValidationContext struct {
	DocumentType         string   `json:"document_type,omitempty"`
	ProjectPhase         string   `json:"project_phase,omitempty"`
	SpecificRequirements []string `json:"specific_requirements,omitempty"`
}
