package analyzer

import (
	"testing"

	"github.com/pthm/promptly/internal/rules"
)

func TestComputeMetrics(t *testing.T) {
	raw := "Write a good launch plan\nfor my product.\n"
	m := ComputeMetrics(raw, Analyze(raw, rules.IntentWrite))

	if m.Words != 8 {
		t.Errorf("Words = %d, want 8", m.Words)
	}
	if m.Lines != 2 {
		t.Errorf("Lines = %d, want 2", m.Lines)
	}
	if m.Characters != 41 {
		t.Errorf("Characters = %d, want 41", m.Characters)
	}
	if m.EstimatedTokens != 11 {
		t.Errorf("EstimatedTokens = %d, want 11", m.EstimatedTokens)
	}
	if got := m.CountBySeverity(rules.High); got != 1 {
		t.Errorf("CountBySeverity(high) = %d, want 1", got)
	}
	if got := m.CountBySeverity(rules.Low); got != 2 {
		t.Errorf("CountBySeverity(low) = %d, want 2", got)
	}
	if got := m.SuggestionsByCategory["constraints"]; got != 1 {
		t.Errorf("SuggestionsByCategory[constraints] = %d, want 1", got)
	}
	// R004 and R007 have autofixers.
	if m.Autofixable != 2 {
		t.Errorf("Autofixable = %d, want 2", m.Autofixable)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics("", nil)
	if m.Characters != 0 || m.Words != 0 || m.Lines != 0 || m.EstimatedTokens != 0 {
		t.Errorf("ComputeMetrics(\"\") = %+v, want zero counts", m)
	}
}
