package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/report"
)

type view int

const (
	overviewView view = iota
	nodesView
	bridgesView
	multiView
	viewCount
)

var tabNames = []string{"Overview", "Articulation points", "Bridges", "Multi-failure"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Rerun    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rerun"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Rerun, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Rerun},
		{k.Up, k.Down},
		{k.Quit},
	}
}

// analysisMsg carries a finished run back to Update
type analysisMsg struct {
	report  *algorithms.Report
	err     error
	elapsed time.Duration
}

type model struct {
	ctx      context.Context
	analyzer *algorithms.Analyzer
	source   string
	topN     int

	currentView view
	nodeTable   table.Model
	bridgeTable table.Model
	multiTable  table.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int

	running bool
	err     error
	report  *algorithms.Report
	summary *report.Summary
	elapsed time.Duration
}

func newModel(ctx context.Context, analyzer *algorithms.Analyzer, source string, topN int) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(report.ColorPrimary)

	return model{
		ctx:         ctx,
		analyzer:    analyzer,
		source:      source,
		topN:        topN,
		currentView: overviewView,
		nodeTable:   newImpactTable(),
		bridgeTable: newImpactTable(),
		multiTable:  newMultiTable(),
		spinner:     s,
		help:        help.New(),
		keys:        keys,
		running:     true,
	}
}

func newImpactTable() table.Model {
	widths := []int{16, 11, 9, 8, 13, 10}
	columns := make([]table.Column, len(report.ImpactHeaders))
	for i, title := range report.ImpactHeaders {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	return styledTable(columns)
}

func newMultiTable() table.Model {
	return styledTable([]table.Column{
		{Title: "Trial", Width: 7},
		{Title: "Removed", Width: 30},
		{Title: "Components", Width: 11},
		{Title: "LCC", Width: 8},
	})
}

func styledTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(report.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(report.ColorText).
		Background(report.ColorPrimary).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.analyze())
}

func (m model) analyze() tea.Cmd {
	analyzer, ctx := m.analyzer, m.ctx
	return func() tea.Msg {
		start := time.Now()
		rep, err := analyzer.Analyze(ctx)
		return analysisMsg{report: rep, err: err, elapsed: time.Since(start)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisMsg:
		m.running = false
		m.elapsed = msg.elapsed
		m.err = msg.err
		if msg.err == nil {
			m.setReport(msg.report)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.Rerun):
			if m.running {
				return m, nil
			}
			m.running = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.analyze())
		}
	}

	// Forward navigation to the visible table
	switch m.currentView {
	case nodesView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
	case bridgesView:
		m.bridgeTable, cmd = m.bridgeTable.Update(msg)
	case multiView:
		m.multiTable, cmd = m.multiTable.Update(msg)
	}
	return m, cmd
}

func (m *model) setReport(rep *algorithms.Report) {
	m.report = rep
	m.summary = report.Summarize(rep, m.topN)

	m.nodeTable.SetRows(impactRows(rep.NodeImpacts))
	m.bridgeTable.SetRows(impactRows(rep.EdgeImpacts))
	m.multiTable.SetRows(multiRows(rep.Multi))
}

func impactRows(records []algorithms.ImpactRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = report.ImpactRow(r)
	}
	return rows
}

func multiRows(stats *algorithms.MultiRemovalStats) []table.Row {
	if stats == nil {
		return []table.Row{}
	}
	rows := make([]table.Row, len(stats.Results))
	for i, trial := range stats.Results {
		removed := make([]string, len(trial.Removed))
		for j, id := range trial.Removed {
			removed[j] = strconv.FormatUint(id, 10)
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strings.Join(removed, ", "),
			strconv.Itoa(trial.Components),
			strconv.Itoa(trial.LargestComponentSize),
		}
	}
	return rows
}
