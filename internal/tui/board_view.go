package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/chessrules/internal/board"
)

var (
	lightSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#d7c4a1")).Foreground(lipgloss.Color("#1c1c1c"))
	darkSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#a27b5c")).Foreground(lipgloss.Color("#1c1c1c"))
	targetSquare = lipgloss.NewStyle().Background(lipgloss.Color("#7fa650")).Foreground(lipgloss.Color("#1c1c1c"))
	originSquare = lipgloss.NewStyle().Background(lipgloss.Color("#c9b03c")).Foreground(lipgloss.Color("#1c1c1c"))
	checkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#c0504d")).Foreground(lipgloss.Color("#1c1c1c"))
)

// RenderBoard draws the position with rank 8 at the top. Squares in
// targets are highlighted, as are origin and a king standing in check.
func RenderBoard(pos *board.Position, origin board.Square, targets board.MoveSet) string {
	highlight := make(map[board.Square]bool, targets.Len())
	for _, sq := range targets.Targets() {
		highlight[sq] = true
	}

	checked := board.NoSquare
	if pos.IsChecked(pos.SideToMove) {
		checked = pos.KingSquare[pos.SideToMove]
	}

	var b strings.Builder
	for rank := 0; rank < 8; rank++ {
		b.WriteByte(byte('8' - rank))
		b.WriteByte(' ')

		for file := 0; file < 8; file++ {
			sq := board.NewSquare(rank, file)
			style := lightSquare
			if (rank+file)%2 == 1 {
				style = darkSquare
			}
			switch {
			case sq == checked:
				style = checkSquare
			case sq == origin:
				style = originSquare
			case highlight[sq]:
				style = targetSquare
			}
			b.WriteString(style.Render(cell(pos.PieceAt(sq), highlight[sq])))
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")
	return b.String()
}

// cell returns a fixed-width 3-char cell: the FEN letter of the piece
// (uppercase for White), or a dot on an empty target square.
func cell(p board.Piece, target bool) string {
	if p.IsEmpty() {
		if target {
			return " · "
		}
		return "   "
	}
	return " " + p.String() + " "
}
