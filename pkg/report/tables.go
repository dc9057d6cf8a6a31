package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-resilience/pkg/algorithms"
)

// RenderBenchmarks writes one PASS/FAIL row per benchmark topology
func RenderBenchmarks(w io.Writer, results []algorithms.BenchmarkResult) error {
	st := newStyles(w)
	pass := st.r.NewStyle().Foreground(SeverityColor(algorithms.SeverityLow)).Bold(true).Padding(0, 1)
	fail := st.r.NewStyle().Foreground(SeverityColor(algorithms.SeverityCritical)).Bold(true).Padding(0, 1)

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.Name,
			passFail(r.ArticulationPointsPass),
			strconv.Itoa(len(r.FoundArticulationPoints)),
			passFail(r.BridgesPass),
			strconv.Itoa(len(r.FoundBridges)),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.tableBdr).
		Headers("Topology", "APs", "Found", "Bridges", "Found").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			if row < 0 || row >= len(results) {
				return st.cell
			}
			switch col {
			case 1:
				return pick(results[row].ArticulationPointsPass, pass, fail)
			case 3:
				return pick(results[row].BridgesPass, pass, fail)
			}
			return st.cell
		})

	_, err := fmt.Fprintln(w, st.title.Render("Detector self-test")+"\n"+t.Render())
	return err
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func pick(ok bool, yes, no lipgloss.Style) lipgloss.Style {
	if ok {
		return yes
	}
	return no
}

// RenderDensity writes the bridge count observed at each density step
func RenderDensity(w io.Writer, n int, points []algorithms.DensityPoint) error {
	st := newStyles(w)

	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			strconv.Itoa(p.Edges),
			fmt.Sprintf("%.4f", p.Density),
			strconv.Itoa(p.Bridges),
			strconv.Itoa(p.ArticulationPoints),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.tableBdr).
		Headers("Edges", "Density", "Bridges", "APs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		})

	title := st.title.Render(fmt.Sprintf("Bridge density sweep (n=%d)", n))
	_, err := fmt.Fprintln(w, title+"\n"+t.Render())
	return err
}
