package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
	"github.com/dd0wney/cluso-resilience/pkg/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorPrimary).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorText).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(report.ColorBorder).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorText).
			Background(report.ColorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(report.ColorMuted).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(report.ColorBorder).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(report.SeverityColor(algorithms.SeverityCritical)).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			MarginTop(1).
			MarginLeft(2)
)

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Network Resilience: " + m.source))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch {
	case m.running:
		s.WriteString(contentStyle.Render(m.spinner.View() + " Analyzing..."))
	case m.err != nil:
		s.WriteString(contentStyle.Render(errorStyle.Render("✗ Analysis failed: " + m.err.Error())))
	default:
		s.WriteString(m.renderView())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderView() string {
	switch m.currentView {
	case nodesView:
		return m.renderTable("Articulation point impact", len(m.report.NodeImpacts), m.nodeTable.View())
	case bridgesView:
		return m.renderTable("Bridge impact", len(m.report.EdgeImpacts), m.bridgeTable.View())
	case multiView:
		return m.renderMulti()
	default:
		return m.renderOverview()
	}
}

func (m model) renderOverview() string {
	sum := m.summary

	stats := fmt.Sprintf(`Graph
Nodes:                %d
Edges:                %d
Components:           %d
Largest component:    %d

Critical elements
Articulation points:  %d
Bridges:              %d

Analysis took %s`,
		sum.Nodes,
		sum.Edges,
		sum.BaselineComponents,
		sum.LargestComponentSize,
		sum.ArticulationPoints,
		sum.Bridges,
		m.elapsed.Round(time.Millisecond),
	)

	var counts strings.Builder
	counts.WriteString("Severity        APs  Bridges\n")
	for i := len(algorithms.Severities) - 1; i >= 0; i-- {
		sev := algorithms.Severities[i]
		name := lipgloss.NewStyle().Foreground(report.SeverityColor(sev)).Width(14).Render(sev.String())
		fmt.Fprintf(&counts, "%s %5d %8d\n", name, sum.NodeImpact.Count(sev), sum.EdgeImpact.Count(sev))
	}

	verdict := fmt.Sprintf("Primary vulnerability: %s\n%s", sum.Verdict.Headline, sum.Verdict.Detail)
	if sum.Verdict.MultiDetail != "" {
		verdict += "\n\nMulti-failure concern: " + string(sum.Verdict.MultiConcern) + "\n" + sum.Verdict.MultiDetail
	}

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(stats),
		statsBoxStyle.Render(strings.TrimRight(counts.String(), "\n")),
	)
	width := max(m.width-8, 40)
	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		boxes,
		statsBoxStyle.Width(width).Render(verdict),
	))
}

func (m model) renderTable(title string, n int, body string) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n\n")
	if n == 0 {
		s.WriteString(helpStyle.Render("None found"))
	} else {
		s.WriteString(body)
	}
	return contentStyle.Render(s.String())
}

func (m model) renderMulti() string {
	multi := m.report.Multi
	if multi == nil {
		return contentStyle.Render(headerStyle.Render("Multi-failure simulation") + "\n\n" +
			helpStyle.Render("Skipped: the graph has no articulation points"))
	}

	stats := fmt.Sprintf("Trials: %d   Sample size: %d   Components mean %.2f, min %d, max %d",
		multi.Trials, multi.SampleSize, multi.Mean, multi.Min, multi.Max)
	return m.renderTable("Multi-failure simulation", len(multi.Results), stats+"\n\n"+m.multiTable.View())
}
