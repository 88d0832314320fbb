package game

import (
	"errors"
	"testing"

	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// firstMove always plays the first candidate
type firstMove struct{}

func (firstMove) Select(moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.Move{}, ai.ErrNoMoves
	}
	return moves[0], nil
}

func fromPosition(t *testing.T, pos string) *Game {
	t.Helper()
	b, toMove, err := board.ParsePosition(pos)
	if err != nil {
		t.Fatalf("parse %q: %v", pos, err)
	}
	return NewFromPosition(b, toMove, firstMove{})
}

func TestNewGame(t *testing.T) {
	g := New(firstMove{})
	st := g.State()

	if st.Phase != core.PhaseAwaitingHuman || st.Current != core.ColorBlack || st.Ended {
		t.Fatalf("unexpected initial state: phase=%s current=%s ended=%v", st.Phase, st.Current, st.Ended)
	}
	if st.Board != board.NewStandard() {
		t.Fatalf("expected opening board, got %s", st.Board)
	}
	if st.Message != "Your turn." {
		t.Fatalf("unexpected message %q", st.Message)
	}
	if len(st.ValidMoves) != 4 || st.Result != nil || st.Round != 1 {
		t.Fatalf("unexpected initial snapshot: %+v", st)
	}
}

func TestHumanMoveHandsTurnToComputer(t *testing.T) {
	g := New(firstMove{})
	if err := g.HumanMove(1, 2); err != nil {
		t.Fatalf("human move: %v", err)
	}

	st := g.State()
	if st.Phase != core.PhaseAwaitingComputer || st.Current != core.ColorWhite {
		t.Fatalf("expected computer turn, got %s/%s", st.Phase, st.Current)
	}
	if st.Message != "Computer is thinking..." {
		t.Fatalf("unexpected message %q", st.Message)
	}
	if st.Version != 1 {
		t.Fatalf("expected version 1, got %d", st.Version)
	}

	if err := g.HumanMove(2, 1); !errors.Is(err, ErrNotHumanTurn) {
		t.Fatalf("expected ErrNotHumanTurn, got %v", err)
	}

	turn, err := g.ComputerMove()
	if err != nil {
		t.Fatalf("computer move: %v", err)
	}
	if turn.Player != core.ColorWhite || len(turn.Flips) == 0 {
		t.Fatalf("unexpected computer turn %+v", turn)
	}
	if g.Phase() != core.PhaseAwaitingHuman {
		t.Fatalf("expected human turn after computer move, got %s", g.Phase())
	}
	if n := board.CountStones(g.Board()); n.Total() != 6 {
		t.Fatalf("expected 6 stones, got %+v", n)
	}
	if moves := g.Moves(); len(moves) != 2 || moves[0] != "c2" {
		t.Fatalf("unexpected record %v", moves)
	}
}

func TestIllegalHumanMoveLeavesState(t *testing.T) {
	g := New(firstMove{})
	before := g.State()

	for _, m := range []board.Move{{Row: 0, Col: 0}, {Row: 2, Col: 2}, {Row: 1, Col: 3}, {Row: -1, Col: 9}} {
		if err := g.HumanMove(m.Row, m.Col); !errors.Is(err, board.ErrIllegalMove) {
			t.Fatalf("expected ErrIllegalMove for %v, got %v", m, err)
		}
	}

	after := g.State()
	if after.Board != before.Board || after.Version != before.Version || after.Phase != before.Phase || len(after.History) != 0 {
		t.Fatal("illegal move changed the game")
	}
}

func TestComputerMoveOutOfTurn(t *testing.T) {
	g := New(firstMove{})
	if _, err := g.ComputerMove(); !errors.Is(err, ErrNotComputerTurn) {
		t.Fatalf("expected ErrNotComputerTurn, got %v", err)
	}
}

func TestHumanPassGoesStraightToComputer(t *testing.T) {
	// black's only stone cannot enclose the white corner
	g := fromPosition(t, "WB..../....../....../....../....../...... b")
	st := g.State()

	if st.Phase != core.PhaseAwaitingComputer || st.Current != core.ColorWhite {
		t.Fatalf("expected computer turn after pass, got %s/%s", st.Phase, st.Current)
	}
	if st.Pass != core.ColorBlack || !st.PassedThrough() {
		t.Fatalf("expected black pass notice, got %v", st.Pass)
	}
	if len(st.Trace) != 2 || st.Trace[0] != core.PhasePassing || st.Trace[1] != core.PhaseAwaitingComputer {
		t.Fatalf("unexpected trace %v", st.Trace)
	}
	if st.Board.String() != "WB..../....../....../....../....../......" {
		t.Fatalf("pass changed the board: %s", st.Board)
	}
	if st.Message != "You have no moves. Pass!" {
		t.Fatalf("unexpected message %q", st.Message)
	}
	if len(st.History) != 1 || !st.History[0].Pass {
		t.Fatalf("expected a recorded pass, got %+v", st.History)
	}

	turn, err := g.ComputerMove()
	if err != nil {
		t.Fatalf("computer move: %v", err)
	}
	if turn.Move != (board.Move{Row: 0, Col: 2}) {
		t.Fatalf("expected c1, got %v", turn.Move)
	}

	st = g.State()
	if !st.Ended || st.Result == nil || st.Result.Outcome != core.OutcomeLoss || st.Result.White != 3 {
		t.Fatalf("expected 0-3 loss, got %+v", st.Result)
	}
}

func TestComputerPassReturnsTurnToHuman(t *testing.T) {
	g := fromPosition(t, "....../....../BW..../....../....../...... w")
	st := g.State()

	if st.Phase != core.PhaseAwaitingHuman || st.Pass != core.ColorWhite {
		t.Fatalf("expected human turn with white pass, got %s pass=%v", st.Phase, st.Pass)
	}
	if st.Message != "Computer has no moves and passes. Your turn." {
		t.Fatalf("unexpected message %q", st.Message)
	}

	if err := g.HumanMove(2, 2); err != nil {
		t.Fatalf("human move: %v", err)
	}
	st = g.State()
	if st.Pass != 0 {
		t.Fatal("pass notice must clear after a placement")
	}
	if !st.Ended || st.Result.Outcome != core.OutcomeWin || st.Result.Black != 3 || st.Result.White != 0 {
		t.Fatalf("expected 3-0 win, got %+v", st.Result)
	}
	if st.Message != "You win! 3-0" {
		t.Fatalf("unexpected message %q", st.Message)
	}
}

func TestTerminalPositions(t *testing.T) {
	for _, tc := range []struct {
		pos     string
		black   int
		white   int
		outcome core.Outcome
	}{
		{"B...../....../....../....../....../...... b", 1, 0, core.OutcomeWin},
		{"W...../....../....../....../....../...... b", 0, 1, core.OutcomeLoss},
		{"B...../....../....../....../....../.....W w", 1, 1, core.OutcomeDraw},
		{"....../....../....../....../....../...... b", 0, 0, core.OutcomeDraw},
	} {
		g := fromPosition(t, tc.pos)
		st := g.State()
		if st.Phase != core.PhaseGameOver || !st.Ended {
			t.Fatalf("%s: expected game over, got %s", tc.pos, st.Phase)
		}
		if st.Result == nil || st.Result.Black != tc.black || st.Result.White != tc.white || st.Result.Outcome != tc.outcome {
			t.Fatalf("%s: unexpected result %+v", tc.pos, st.Result)
		}
		if len(st.ValidMoves) != 0 {
			t.Fatalf("%s: finished game lists moves %v", tc.pos, st.ValidMoves)
		}

		if err := g.HumanMove(2, 2); !errors.Is(err, ErrGameOver) {
			t.Fatalf("%s: expected ErrGameOver, got %v", tc.pos, err)
		}
		if _, err := g.ComputerMove(); !errors.Is(err, ErrGameOver) {
			t.Fatalf("%s: expected ErrGameOver, got %v", tc.pos, err)
		}
	}
}

func TestFullGameTerminates(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g := New(ai.NewSelector(seed))
		placements := 0

		for steps := 0; !g.Ended(); steps++ {
			if steps > 100 {
				t.Fatalf("seed %d: game did not terminate", seed)
			}
			switch g.Phase() {
			case core.PhaseAwaitingHuman:
				m := g.State().ValidMoves[0]
				if err := g.HumanMove(m.Row, m.Col); err != nil {
					t.Fatalf("seed %d: human move %v: %v", seed, m, err)
				}
			case core.PhaseAwaitingComputer:
				if _, err := g.ComputerMove(); err != nil {
					t.Fatalf("seed %d: computer move: %v", seed, err)
				}
			default:
				t.Fatalf("seed %d: settled in transient phase %s", seed, g.Phase())
			}
			placements++

			if n := board.CountStones(g.Board()); n.Total() != 4+placements {
				t.Fatalf("seed %d: expected %d stones, got %d", seed, 4+placements, n.Total())
			}
		}

		st := g.State()
		if board.HasAnyValidMove(st.Board, core.ColorBlack) || board.HasAnyValidMove(st.Board, core.ColorWhite) {
			t.Fatalf("seed %d: game over with moves left", seed)
		}
		n := board.CountStones(st.Board)
		if st.Result.Black != n.Black || st.Result.White != n.White || st.Result.Outcome != core.OutcomeFor(n.Black, n.White) {
			t.Fatalf("seed %d: result %+v does not match board", seed, st.Result)
		}
	}
}

func TestResetAfterGameOver(t *testing.T) {
	g := fromPosition(t, "B...../....../....../....../....../...... b")
	if !g.Ended() {
		t.Fatal("expected finished game")
	}
	v := g.Version()

	g.Reset()
	st := g.State()
	if st.Ended || st.Phase != core.PhaseAwaitingHuman || st.Board != board.NewStandard() {
		t.Fatalf("reset did not restore the opening: %s %s", st.Phase, st.Board)
	}
	if st.Round != 2 || st.Version != v+1 || len(st.History) != 0 || st.Result != nil {
		t.Fatalf("unexpected state after reset: %+v", st)
	}
	if g.InitialPosition() != board.StartingPosition {
		t.Fatalf("unexpected initial position %q", g.InitialPosition())
	}
}

func TestStateIsDetached(t *testing.T) {
	g := New(firstMove{})
	if err := g.HumanMove(1, 2); err != nil {
		t.Fatalf("human move: %v", err)
	}

	st := g.State()
	st.Board[0][0] = board.White
	st.History[0].Flips[0] = board.Move{Row: 5, Col: 5}

	again := g.State()
	if again.Board[0][0] != board.Empty || again.History[0].Flips[0] != (board.Move{Row: 2, Col: 2}) {
		t.Fatal("snapshot mutation leaked into the game")
	}
}
