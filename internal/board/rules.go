package board

import (
	"errors"

	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// ErrIllegalMove covers occupied, out-of-bounds and zero-flip placements
var ErrIllegalMove = errors.New("illegal move")

// directions in fixed order: N, NE, E, SE, S, SW, W, NW
var directions = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

type Count struct {
	Black int `json:"black"`
	White int `json:"white"`
}

func (c Count) Total() int {
	return c.Black + c.White
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// FlipsForMove returns every stone the placement would turn; empty means illegal
func FlipsForMove(b Board, row, col int, player core.Color) []Move {
	if !InBounds(row, col) || b[row][col] != Empty {
		return nil
	}

	own := CellOf(player)
	opp := CellOf(player.Opponent())

	var flips []Move
	for _, d := range directions {
		var run []Move
		r, c := row+d[0], col+d[1]
		for InBounds(r, c) && b[r][c] == opp {
			run = append(run, Move{Row: r, Col: c})
			r += d[0]
			c += d[1]
		}
		if len(run) > 0 && InBounds(r, c) && b[r][c] == own {
			flips = append(flips, run...)
		}
	}
	return flips
}

func CanPlace(b Board, row, col int, player core.Color) bool {
	return len(FlipsForMove(b, row, col, player)) > 0
}

// ValidMoves scans row-major
func ValidMoves(b Board, player core.Color) []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if CanPlace(b, r, c, player) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// ApplyMove returns the board after the placement and the flipped cells.
// The input board is never modified.
func ApplyMove(b Board, row, col int, player core.Color) (Board, []Move, error) {
	flips := FlipsForMove(b, row, col, player)
	if len(flips) == 0 {
		return b, nil, ErrIllegalMove
	}

	next := b
	own := CellOf(player)
	next[row][col] = own
	for _, f := range flips {
		next[f.Row][f.Col] = own
	}
	return next, flips, nil
}

func HasAnyValidMove(b Board, player core.Color) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if CanPlace(b, r, c, player) {
				return true
			}
		}
	}
	return false
}

func CountStones(b Board) Count {
	var n Count
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				n.Black++
			case White:
				n.White++
			}
		}
	}
	return n
}
