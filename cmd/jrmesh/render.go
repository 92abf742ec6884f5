package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/search"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	clippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C")).
			Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// renderStats prints the extremes that bound every mesh.
func renderStats(st search.Stats, color bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "coverage %d..%d  approval %d..%d", st.MinCov, st.MaxCov, st.MinApp, st.MaxApp)
	if st.HasJR {
		fmt.Fprintf(&b, "\nJR coverage %d..%d  JR approval %d..%d", st.MinJRCov, st.MaxJRCov, st.MinJRApp, st.MaxJRApp)
	} else {
		b.WriteString("\nno JR committee")
	}
	if !color {
		return b.String()
	}

	return titleStyle.Render("stats") + "\n" + b.String()
}

// renderMesh returns the plain depiction, or a framed and coloured one where
// clipped cells are faint and marked cells stand out.
func renderMesh(rule string, m *mesh.Mesh, initial rune, color bool) string {
	if !color {
		return rule + "\n" + m.String()
	}

	var (
		b     strings.Builder
		cells = m.All()
	)
	for idx, row := range m.Rows() {
		for x, v := range row {
			cell := cells[idx*m.ApprovalParts+x]
			style := markStyle
			switch {
			case m.IsClipped(cell):
				style = clippedStyle
			case v == initial:
				style = emptyStyle
			}
			b.WriteString(style.Render(string(v)))
		}
		if idx < m.CoverageParts-1 {
			b.WriteByte('\n')
		}
	}

	return titleStyle.Render(rule) + "\n" + frameStyle.Render(b.String())
}
