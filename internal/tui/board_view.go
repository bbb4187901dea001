package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"checkers/internal/checkers"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lightStyle = lipgloss.NewStyle().Faint(true)
)

// RenderBoard 行号在左、列号在上，与命令里的 "r c" 坐标一致。
// hints 里的落点用 * 标出（吃子落点用 x）。
func RenderBoard(b *checkers.Board, hints []checkers.Move) string {
	marks := make(map[checkers.Position]string, len(hints))
	for _, mv := range hints {
		if mv.HasCapture() {
			marks[mv.To] = "x"
		} else {
			marks[mv.To] = "*"
		}
	}

	var sb strings.Builder
	sb.WriteString("    0 1 2 3 4 5 6 7\n")
	sb.WriteString("  +-----------------+\n")
	for r := 0; r < checkers.Size; r++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('0' + r))
		sb.WriteString("| ")
		for c := 0; c < checkers.Size; c++ {
			p := checkers.Pos(r, c)
			sb.WriteString(cell(b.At(p), p, marks[p]))
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	return sb.String()
}

// cell 固定一个字符宽：r/R 红，b/B 黑，大写是王
func cell(t checkers.Tile, p checkers.Position, mark string) string {
	switch t {
	case checkers.RedPawn:
		return redStyle.Render("r")
	case checkers.RedKing:
		return redStyle.Render("R")
	case checkers.BlackPawn:
		return blackStyle.Render("b")
	case checkers.BlackKing:
		return blackStyle.Render("B")
	}
	if mark != "" {
		return hintStyle.Render(mark)
	}
	if !p.IsDark() {
		return lightStyle.Render(" ")
	}
	return "."
}
