package algorithms

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		increase int
		want     Severity
	}{
		{-1, SeverityMinor},
		{0, SeverityMinor},
		{1, SeverityLow},
		{2, SeverityModerate},
		{9, SeverityModerate},
		{10, SeverityHigh},
		{49, SeverityHigh},
		{50, SeverityCritical},
		{5000, SeverityCritical},
	}

	for _, tt := range tests {
		if got := Classify(tt.increase); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.increase, got, tt.want)
		}
	}
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range Severities {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", s, err)
		}
		var parsed Severity
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if parsed != s {
			t.Errorf("Parsed %q as %v", text, parsed)
		}
	}

	var s Severity
	if err := s.UnmarshalText([]byte("catastrophic")); !errors.Is(err, ErrUnknownSeverity) {
		t.Errorf("Expected ErrUnknownSeverity, got %v", err)
	}
	if Severity(42).String() != "unknown" {
		t.Error("Out-of-range severity should print as unknown")
	}
}
