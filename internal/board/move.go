package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a board coordinate, 0-based
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the move as column letter plus 1-based row, e.g. "c2"
func (m Move) String() string {
	if !InBounds(m.Row, m.Col) {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove accepts "c2" notation or a "row col" pair of 0-based integers
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if fields := strings.Fields(strings.ReplaceAll(s, ",", " ")); len(fields) == 2 {
		row, errRow := strconv.Atoi(fields[0])
		col, errCol := strconv.Atoi(fields[1])
		if errRow != nil || errCol != nil {
			return Move{}, fmt.Errorf("invalid move %q", s)
		}
		return Move{Row: row, Col: col}, nil
	}

	if len(s) != 2 || s[0] < 'a' || s[0] >= 'a'+Size || s[1] < '1' || s[1] >= '1'+Size {
		return Move{}, fmt.Errorf("invalid move %q: use a1-f6 or 'row col'", s)
	}
	return Move{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}

// MoveStrings renders a move list
func MoveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
