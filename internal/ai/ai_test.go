package ai

import (
	"errors"
	"testing"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

func TestWeightsSymmetric(t *testing.T) {
	n := board.Size - 1
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			w := Weights[r][c]
			if Weights[c][r] != w || Weights[n-r][c] != w || Weights[r][n-c] != w {
				t.Fatalf("weight table not symmetric at (%d,%d)", r, c)
			}
		}
	}
	if Weights[0][0] != 100 || Weights[1][1] != -50 || Weights[0][1] != -20 {
		t.Fatal("corner and X-square weights changed")
	}
}

func TestSelectReturnsMaxWeight(t *testing.T) {
	s := NewSelector(7)
	moves := []board.Move{{Row: 1, Col: 1}, {Row: 0, Col: 2}, {Row: 2, Col: 2}, {Row: 0, Col: 5}, {Row: 4, Col: 4}}
	for i := 0; i < 50; i++ {
		m, err := s.Select(moves)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if m != (board.Move{Row: 0, Col: 5}) {
			t.Fatalf("expected corner f1, got %v", m)
		}
	}
}

func TestSelectOnRealPositions(t *testing.T) {
	s := NewSelector(11)
	b := board.NewStandard()
	player := core.ColorBlack
	for board.HasAnyValidMove(b, player) || board.HasAnyValidMove(b, player.Opponent()) {
		moves := board.ValidMoves(b, player)
		if len(moves) == 0 {
			player = player.Opponent()
			continue
		}

		m, err := s.Select(moves)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		for _, other := range moves {
			if Weight(other) > Weight(m) {
				t.Fatalf("picked %v (%d) over %v (%d)", m, Weight(m), other, Weight(other))
			}
		}
		if !board.CanPlace(b, m.Row, m.Col, player) {
			t.Fatalf("selected move %v is not legal", m)
		}

		b, _, _ = board.ApplyMove(b, m.Row, m.Col, player)
		player = player.Opponent()
	}
}

func TestSelectTieBreakCoversAllTies(t *testing.T) {
	s := NewSelector(3)
	moves := []board.Move{{Row: 0, Col: 0}, {Row: 5, Col: 5}, {Row: 2, Col: 2}}
	seen := map[board.Move]int{}
	for i := 0; i < 400; i++ {
		m, err := s.Select(moves)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		seen[m]++
	}
	if len(seen) != 2 || seen[board.Move{Row: 0, Col: 0}] == 0 || seen[board.Move{Row: 5, Col: 5}] == 0 {
		t.Fatalf("expected both corners to be chosen, got %v", seen)
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, err := NewSelector(1).Select(nil); !errors.Is(err, ErrNoMoves) {
		t.Fatalf("expected ErrNoMoves, got %v", err)
	}
}

func TestBestKeepsInputOrder(t *testing.T) {
	best := Best([]board.Move{{Row: 2, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 3}, {Row: 3, Col: 5}})
	want := []board.Move{{Row: 2, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 5}}
	if len(best) != len(want) {
		t.Fatalf("expected %v, got %v", want, best)
	}
	for i := range want {
		if best[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, best)
		}
	}
}
