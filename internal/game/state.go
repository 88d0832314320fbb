package game

import (
	"fmt"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// State is a detached snapshot for presentation; mutating it never touches the game
type State struct {
	Board      board.Board
	Current    core.Color
	Phase      core.Phase
	Ended      bool
	Pass       core.Color
	Trace      []core.Phase
	Message    string
	ValidMoves []board.Move
	History    []Turn
	Version    int
	Round      int
	Result     *Result
}

func (g *Game) State() State {
	st := State{
		Board:   g.board,
		Current: g.current,
		Phase:   g.phase,
		Ended:   g.Ended(),
		Pass:    g.pass,
		Trace:   append([]core.Phase(nil), g.trace...),
		Version: g.version,
		Round:   g.round,
		History: make([]Turn, len(g.history)),
	}
	for i, t := range g.history {
		t.Flips = append([]board.Move(nil), t.Flips...)
		st.History[i] = t
	}
	if !st.Ended {
		st.ValidMoves = board.ValidMoves(g.board, g.current)
	}
	if g.result != nil {
		r := *g.result
		st.Result = &r
	}
	st.Message = message(st)
	return st
}

// PassedThrough reports whether the last transition included a pass
func (s State) PassedThrough() bool {
	return s.Pass != 0
}

func message(s State) string {
	if s.Result != nil {
		score := fmt.Sprintf("%d-%d", s.Result.Black, s.Result.White)
		switch s.Result.Outcome {
		case core.OutcomeWin:
			return "You win! " + score
		case core.OutcomeLoss:
			return "You lose... " + score
		default:
			return "Draw! " + score
		}
	}

	switch s.Phase {
	case core.PhaseAwaitingHuman:
		if s.Pass == core.ComputerColor {
			return "Computer has no moves and passes. Your turn."
		}
		return "Your turn."
	case core.PhaseAwaitingComputer:
		if s.Pass == core.HumanColor {
			return "You have no moves. Pass!"
		}
		return "Computer is thinking..."
	}
	return ""
}
