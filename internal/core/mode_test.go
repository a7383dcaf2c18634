package core

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"strict", ModeStrict, false},
		{"standard", ModeStandard, false},
		{"lenient", ModeLenient, false},
		{"", "", true},
		{"STRICT", "", true},
		{"relaxed", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error, got %v", tt.input, got)
				continue
			}
			if !IsCategory(err, ErrCatValidation) {
				t.Errorf("ParseMode(%q): expected validation error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPassFractionOrdering(t *testing.T) {
	// Strict must demand the most, lenient the least.
	if !(ModeStrict.PassFraction() > ModeStandard.PassFraction()) {
		t.Error("strict should require more than standard")
	}
	if !(ModeStandard.PassFraction() > ModeLenient.PassFraction()) {
		t.Error("standard should require more than lenient")
	}
}

func TestModeDescriptions(t *testing.T) {
	for _, m := range AllModes() {
		if m.Description() == "Unknown mode" {
			t.Errorf("mode %s has no description", m)
		}
	}
}
