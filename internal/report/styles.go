// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

// styles colours table cells. The renderer inspects the destination writer,
// so output piped to a file or buffer stays plain.
type styles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true),
		dim:    r.NewStyle().Faint(true),
		good:   r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (s styles) status(st types.AnomalyStatus, cell string) string {
	switch st {
	case types.StatusGoodAnomaly:
		return s.good.Render(cell)
	case types.StatusBadAnomaly:
		return s.bad.Render(cell)
	case "":
		return s.dim.Render(cell)
	}
	return cell
}

func (s styles) level(l types.AnomalyLevel, cell string) string {
	switch l {
	case types.LevelSevere:
		return s.bad.Render(cell)
	case types.LevelModerate:
		return s.warn.Render(cell)
	case types.LevelMild:
		return s.dim.Render(cell)
	}
	return cell
}

// pad left-aligns s in a cell of the given display width, truncating with
// "..." when it does not fit. Widths are measured in terminal columns so
// CJK titles line up.
func pad(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) > width {
		s = truncate(s, width)
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func truncate(s string, width int) string {
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > width-3 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String() + "..."
}
