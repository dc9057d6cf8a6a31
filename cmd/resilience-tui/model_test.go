package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/topology"
)

func newTestModel(t *testing.T, sampleSize int) model {
	t.Helper()
	opts := algorithms.Options{Workers: 2, Trials: 4, SampleSize: sampleSize, Seed: 7}
	analyzer := algorithms.NewAnalyzer(topology.SmallNetwork(), opts)
	m := newModel(context.Background(), analyzer, "demo network", 5)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(model)
}

// finish runs the analysis command synchronously and feeds its result back
func finish(t *testing.T, m model) model {
	t.Helper()
	msg := m.analyze()()
	updated, _ := m.Update(msg)
	return updated.(model)
}

func press(m model, msg tea.KeyMsg) model {
	updated, _ := m.Update(msg)
	return updated.(model)
}

func TestModel_AnalysisPopulatesTables(t *testing.T) {
	m := newTestModel(t, 2)
	if !m.running {
		t.Fatal("Expected model to start running")
	}
	if !strings.Contains(m.View(), "Analyzing") {
		t.Error("Expected progress view while running")
	}

	m = finish(t, m)
	if m.running || m.err != nil {
		t.Fatalf("Expected finished run, got running=%v err=%v", m.running, m.err)
	}
	if len(m.nodeTable.Rows()) != 2 {
		t.Errorf("Expected 2 articulation point rows, got %d", len(m.nodeTable.Rows()))
	}
	if len(m.bridgeTable.Rows()) != 2 {
		t.Errorf("Expected 2 bridge rows, got %d", len(m.bridgeTable.Rows()))
	}
	if len(m.multiTable.Rows()) != 4 {
		t.Errorf("Expected 4 trial rows, got %d", len(m.multiTable.Rows()))
	}

	out := m.View()
	for _, want := range []string{"Articulation points:", "Primary vulnerability", "demo network"} {
		if !strings.Contains(out, want) {
			t.Errorf("Overview missing %q", want)
		}
	}
}

func TestModel_TabNavigation(t *testing.T) {
	m := finish(t, newTestModel(t, 2))

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.currentView != nodesView {
		t.Errorf("Expected nodes view after tab, got %d", m.currentView)
	}
	if !strings.Contains(m.View(), "Articulation point impact") {
		t.Error("Nodes view should render the impact table")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentView != multiView {
		t.Errorf("Expected shift+tab to wrap to the multi view, got %d", m.currentView)
	}
	if !strings.Contains(m.View(), "Sample size: 2") {
		t.Error("Multi view should show sweep parameters")
	}
}

func TestModel_Rerun(t *testing.T) {
	m := finish(t, newTestModel(t, 2))

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !m.running {
		t.Fatal("Expected rerun to start a new analysis")
	}

	// A second rerun while running is ignored
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil || !updated.(model).running {
		t.Error("Rerun while running should be a no-op")
	}
}

func TestModel_AnalysisError(t *testing.T) {
	// The demo network has only two articulation points
	m := finish(t, newTestModel(t, 3))

	if !errors.Is(m.err, algorithms.ErrInsufficientElements) {
		t.Fatalf("Expected ErrInsufficientElements, got %v", m.err)
	}
	if !strings.Contains(m.View(), "Analysis failed") {
		t.Error("Expected error view")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, 2)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestMultiRows_Skipped(t *testing.T) {
	if rows := multiRows(nil); rows == nil || len(rows) != 0 {
		t.Errorf("Expected empty rows for a skipped sweep, got %v", rows)
	}
}
