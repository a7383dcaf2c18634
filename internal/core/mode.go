package core

// Mode controls how strictly checklist items are scored.
type Mode string

const (
	// ModeStrict requires every relevant rule to pass.
	ModeStrict Mode = "strict"

	// ModeStandard requires at least 70% of relevant rules to pass.
	ModeStandard Mode = "standard"

	// ModeLenient requires at least 50% of relevant rules to pass.
	ModeLenient Mode = "lenient"
)

// AllModes returns all modes from strictest to most permissive.
func AllModes() []Mode {
	return []Mode{ModeStrict, ModeStandard, ModeLenient}
}

// ValidMode checks if a mode value is recognized.
func ValidMode(m Mode) bool {
	switch m {
	case ModeStrict, ModeStandard, ModeLenient:
		return true
	default:
		return false
	}
}

// ParseMode converts a string to a Mode with validation.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !ValidMode(m) {
		return "", ErrValidation(CodeInvalidMode,
			"validation mode must be one of strict, standard, lenient").
			WithDetail("mode", s)
	}
	return m, nil
}

// PassFraction returns the fraction of relevant rules that must pass
// for an item to be scored as passing under this mode.
func (m Mode) PassFraction() float64 {
	switch m {
	case ModeStrict:
		return 1.0
	case ModeLenient:
		return 0.5
	default:
		return 0.7
	}
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeStrict:
		return "All relevant rules must pass"
	case ModeStandard:
		return "At least 70% of relevant rules must pass"
	case ModeLenient:
		return "At least 50% of relevant rules must pass"
	default:
		return "Unknown mode"
	}
}
