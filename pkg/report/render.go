package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
)

// Palette shared by the console report and the TUI
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#626262")
	ColorText    = lipgloss.Color("#FAFAFA")
	ColorBorder  = lipgloss.Color("#874BFD")

	severityColors = map[algorithms.Severity]lipgloss.Color{
		algorithms.SeverityCritical: lipgloss.Color("#FF3B30"),
		algorithms.SeverityHigh:     lipgloss.Color("#FF9500"),
		algorithms.SeverityModerate: lipgloss.Color("#FFCC00"),
		algorithms.SeverityLow:      lipgloss.Color("#04B575"),
		algorithms.SeverityMinor:    lipgloss.Color("#626262"),
	}
)

// SeverityColor returns the display color of s
func SeverityColor(s algorithms.Severity) lipgloss.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return ColorMuted
}

// styles is bound to one renderer so color output follows the destination
// writer, not os.Stdout
type styles struct {
	r        *lipgloss.Renderer
	title    lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	muted    lipgloss.Style
	box      lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	verdict  lipgloss.Style
	concern  lipgloss.Style
	tableBdr lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		r: r,
		title: r.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1),
		section: r.NewStyle().Bold(true).Foreground(ColorPrimary).MarginTop(1),
		label:   r.NewStyle().Foreground(ColorMuted),
		value:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(ColorMuted).Italic(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		header:   r.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
		verdict:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF9500")),
		concern:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF3B30")),
		tableBdr: r.NewStyle().Foreground(ColorBorder),
	}
}

func (st *styles) severity(s algorithms.Severity) lipgloss.Style {
	return st.r.NewStyle().Foreground(SeverityColor(s)).Bold(s >= algorithms.SeverityHigh)
}

// Render writes s as a styled console report. Colors degrade to plain text
// when w is not a terminal.
func Render(w io.Writer, s *Summary) error {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString(st.title.Render("Network Resilience Report"))
	b.WriteString("\n")
	if s.RunID != "" {
		b.WriteString(st.muted.Render("run " + s.RunID))
		b.WriteString("\n")
	}

	b.WriteString(st.box.Render(strings.Join([]string{
		st.kv("Nodes", strconv.Itoa(s.Nodes)),
		st.kv("Edges", strconv.Itoa(s.Edges)),
		st.kv("Components", strconv.Itoa(s.BaselineComponents)),
		st.kv("Largest component", strconv.Itoa(s.LargestComponentSize)),
		st.kv("Articulation points", strconv.Itoa(s.ArticulationPoints)),
		st.kv("Bridges", strconv.Itoa(s.Bridges)),
	}, "\n")))
	b.WriteString("\n")

	st.renderKind(&b, "Articulation point impact", &s.NodeImpact)
	st.renderKind(&b, "Bridge impact", &s.EdgeImpact)
	st.renderMulti(&b, s.Multi)

	b.WriteString(st.section.Render("Verdict"))
	b.WriteString("\n")
	b.WriteString(st.verdict.Render("Primary vulnerability: " + s.Verdict.Headline))
	b.WriteString("\n")
	b.WriteString(s.Verdict.Detail)
	b.WriteString("\n")
	if s.Verdict.MultiConcern != ConcernNone && s.Verdict.MultiDetail != "" {
		b.WriteString(st.concern.Render(strings.ToUpper(string(s.Verdict.MultiConcern)) + " concern"))
		b.WriteString("\n")
		b.WriteString(s.Verdict.MultiDetail)
		b.WriteString("\n")
	}

	b.WriteString(st.muted.Render(fmt.Sprintf("detection %s, sweep %s, multi %s",
		s.Timings.Detection, s.Timings.Sweep, s.Timings.Multi)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (st *styles) kv(label, value string) string {
	return st.label.Render(fmt.Sprintf("%-20s", label)) + " " + st.value.Render(value)
}

func (st *styles) renderKind(b *strings.Builder, title string, k *KindSummary) {
	b.WriteString(st.section.Render(title))
	b.WriteString("\n")
	if k.Total == 0 {
		b.WriteString(st.muted.Render("none found"))
		b.WriteString("\n")
		return
	}

	counts := make([]string, 0, len(algorithms.Severities))
	for i := len(algorithms.Severities) - 1; i >= 0; i-- {
		sev := algorithms.Severities[i]
		counts = append(counts, st.severity(sev).Render(fmt.Sprintf("%s %d", sev, k.Count(sev))))
	}
	b.WriteString(strings.Join(counts, "  "))
	b.WriteString("\n")
	b.WriteString(st.label.Render(fmt.Sprintf("mean relative LCC %.3f", k.MeanRelativeLCC)))
	b.WriteString("\n")

	if len(k.Top) == 0 {
		return
	}
	b.WriteString(st.impactTable(k.Top).Render())
	b.WriteString("\n")
}

// impactTable lays out impact records with the element's severity coloring
func (st *styles) impactTable(records []algorithms.ImpactRecord) *table.Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = ImpactRow(r)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.tableBdr).
		Headers(ImpactHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			if col == len(ImpactHeaders)-1 && row >= 0 && row < len(records) {
				return st.severity(records[row].Severity).Padding(0, 1)
			}
			return st.cell
		})
}

// ImpactHeaders are the column titles of an impact table
var ImpactHeaders = []string{"Element", "Components", "Increase", "LCC", "Relative LCC", "Severity"}

// ImpactRow formats r in ImpactHeaders order
func ImpactRow(r algorithms.ImpactRecord) []string {
	return []string{
		r.ElementID(),
		strconv.Itoa(r.Components),
		fmt.Sprintf("%+d", r.Increase),
		strconv.Itoa(r.LargestComponentSize),
		fmt.Sprintf("%.3f", r.LargestComponentRelativeSize),
		r.Severity.String(),
	}
}

func (st *styles) renderMulti(b *strings.Builder, m *MultiSummary) {
	b.WriteString(st.section.Render("Multi-failure simulation"))
	b.WriteString("\n")
	if m == nil {
		b.WriteString(st.muted.Render("skipped"))
		b.WriteString("\n")
		return
	}
	b.WriteString(st.box.Render(strings.Join([]string{
		st.kv("Trials", strconv.Itoa(m.Trials)),
		st.kv("Removed per trial", strconv.Itoa(m.SampleSize)),
		st.kv("Mean components", fmt.Sprintf("%.2f", m.Mean)),
		st.kv("Min components", strconv.Itoa(m.Min)),
		st.kv("Max components", strconv.Itoa(m.Max)),
	}, "\n")))
	b.WriteString("\n")
}
