package board

import (
	"fmt"
	"strings"

	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

const (
	Size = 6

	StartingPosition = "....../....../..WB../..BW../....../...... b"
)

type Cell byte

const (
	Empty Cell = iota
	Black
	White
)

// CellOf returns the stone a player places
func CellOf(c core.Color) Cell {
	if c == core.ColorBlack {
		return Black
	}
	return White
}

func (c Cell) Rune() rune {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

// Board is a value; assigning or passing it copies the grid
type Board [Size][Size]Cell

// NewStandard returns the opening position
func NewStandard() Board {
	var b Board
	lo, hi := Size/2-1, Size/2
	b[lo][lo] = White
	b[hi][hi] = White
	b[lo][hi] = Black
	b[hi][lo] = Black
	return b
}

// At returns Empty for out-of-bounds coordinates
func (b Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

// Cells returns the grid as ints: 0 empty, 1 black, 2 white
func (b Board) Cells() [Size][Size]int {
	var out [Size][Size]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = int(b[r][c])
		}
	}
	return out
}

// String encodes the board as six rows joined by '/'
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < Size; c++ {
			sb.WriteRune(b[r][c].Rune())
		}
	}
	return sb.String()
}

// Position encodes the board followed by the side to move
func (b Board) Position(toMove core.Color) string {
	return b.String() + " " + toMove.String()[:1]
}

// Parse decodes the row notation produced by String
func Parse(s string) (Board, error) {
	var b Board
	rows := strings.Split(s, "/")
	if len(rows) != Size {
		return b, fmt.Errorf("invalid board: expected %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("invalid board: row %d has %d cells", r+1, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case '.':
				b[r][c] = Empty
			case 'B', 'b':
				b[r][c] = Black
			case 'W', 'w':
				b[r][c] = White
			default:
				return b, fmt.Errorf("invalid board: unexpected %q in row %d", row[c], r+1)
			}
		}
	}
	return b, nil
}

// ParsePosition decodes "<rows> [b|w]"; the side to move defaults to black
func ParsePosition(s string) (Board, core.Color, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 2 {
		return Board{}, 0, fmt.Errorf("invalid position: expected board and optional turn")
	}
	b, err := Parse(parts[0])
	if err != nil {
		return Board{}, 0, err
	}
	toMove := core.ColorBlack
	if len(parts) == 2 {
		if toMove, err = core.ParseColor(parts[1]); err != nil {
			return Board{}, 0, fmt.Errorf("invalid position: %w", err)
		}
	}
	return b, toMove, nil
}

// ToASCII creates an ASCII representation of the board
func (b Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f\n")

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for c := 0; c < Size; c++ {
			sb.WriteString(fmt.Sprintf("%c ", b[r][c].Rune()))
		}
		sb.WriteString(fmt.Sprintf("%d\n", r+1))
	}
	sb.WriteString("  a b c d e f")

	return sb.String()
}
