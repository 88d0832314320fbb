package ai

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
)

// ErrNoMoves is returned when Select is called without candidates
var ErrNoMoves = errors.New("no candidate moves")

// Weights scores each square: corners best, squares that concede a corner worst
var Weights = [board.Size][board.Size]int{
	{100, -20, 10, 10, -20, 100},
	{-20, -50, -2, -2, -50, -20},
	{10, -2, 1, 1, -2, 10},
	{10, -2, 1, 1, -2, 10},
	{-20, -50, -2, -2, -50, -20},
	{100, -20, 10, 10, -20, 100},
}

func Weight(m board.Move) int {
	return Weights[m.Row][m.Col]
}

// Best returns the candidates sharing the maximum weight, in input order
func Best(moves []board.Move) []board.Move {
	var best []board.Move
	top := 0
	for _, m := range moves {
		if !board.InBounds(m.Row, m.Col) {
			continue
		}
		w := Weight(m)
		switch {
		case len(best) == 0 || w > top:
			top = w
			best = append(best[:0], m)
		case w == top:
			best = append(best, m)
		}
	}
	return best
}

// Selector picks a maximum-weight move with a uniform random tie-break.
// Safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector; seed 0 seeds from the clock
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *Selector) Select(moves []board.Move) (board.Move, error) {
	best := Best(moves)
	if len(best) == 0 {
		return board.Move{}, ErrNoMoves
	}
	if len(best) == 1 {
		return best[0], nil
	}

	s.mu.Lock()
	i := s.rng.IntN(len(best))
	s.mu.Unlock()
	return best[i], nil
}
