package game

import (
	"errors"
	"fmt"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

var (
	ErrGameOver        = errors.New("game is over")
	ErrNotHumanTurn    = errors.New("not the human's turn")
	ErrNotComputerTurn = errors.New("not the computer's turn")
)

// Selector chooses the computer's move among legal candidates
type Selector interface {
	Select(moves []board.Move) (board.Move, error)
}

// Turn is one entry of the game record: a placement or a pass
type Turn struct {
	Player core.Color
	Move   board.Move
	Flips  []board.Move
	Pass   bool
}

func (t Turn) String() string {
	if t.Pass {
		return "pass"
	}
	return t.Move.String()
}

// Result is only set once the game is over
type Result struct {
	Black   int
	White   int
	Outcome core.Outcome
}

type Game struct {
	board   board.Board
	current core.Color
	phase   core.Phase
	pass    core.Color   // side that passed during the last transition
	trace   []core.Phase // phases entered during the last transition
	history []Turn
	result  *Result

	startBoard board.Board
	startTurn  core.Color

	version  int
	round    int
	selector Selector
}

// New starts a game on the standard opening, black to move
func New(selector Selector) *Game {
	return NewFromPosition(board.NewStandard(), core.ColorBlack, selector)
}

// NewFromPosition starts a game from an arbitrary position. Turn start is
// evaluated at once, so a position without moves for either side is over.
func NewFromPosition(b board.Board, toMove core.Color, selector Selector) *Game {
	if toMove != core.ColorWhite {
		toMove = core.ColorBlack
	}
	g := &Game{
		board:      b,
		current:    toMove,
		startBoard: b,
		startTurn:  toMove,
		round:      1,
		selector:   selector,
	}
	g.evaluateTurn()
	return g
}

// Reset returns to the standard opening with black to move and opens a new round
func (g *Game) Reset() {
	g.board = board.NewStandard()
	g.current = core.ColorBlack
	g.startBoard = g.board
	g.startTurn = g.current
	g.history = nil
	g.result = nil
	g.pass = 0
	g.trace = nil
	g.round++
	g.version++
	g.evaluateTurn()
}

// HumanMove places a black stone. On error the game is unchanged.
func (g *Game) HumanMove(row, col int) error {
	switch g.phase {
	case core.PhaseGameOver:
		return ErrGameOver
	case core.PhaseAwaitingHuman:
	default:
		return ErrNotHumanTurn
	}

	next, flips, err := board.ApplyMove(g.board, row, col, core.HumanColor)
	if err != nil {
		return fmt.Errorf("%w: %s", err, board.Move{Row: row, Col: col})
	}

	g.commit(Turn{Player: core.HumanColor, Move: board.Move{Row: row, Col: col}, Flips: flips}, next)
	return nil
}

// ComputerMove lets the selector pick among white's legal moves and plays it
func (g *Game) ComputerMove() (Turn, error) {
	switch g.phase {
	case core.PhaseGameOver:
		return Turn{}, ErrGameOver
	case core.PhaseAwaitingComputer:
	default:
		return Turn{}, ErrNotComputerTurn
	}

	m, err := g.selector.Select(board.ValidMoves(g.board, core.ComputerColor))
	if err != nil {
		return Turn{}, fmt.Errorf("select computer move: %w", err)
	}

	next, flips, err := board.ApplyMove(g.board, m.Row, m.Col, core.ComputerColor)
	if err != nil {
		return Turn{}, fmt.Errorf("selected move %s: %w", m, err)
	}

	turn := Turn{Player: core.ComputerColor, Move: m, Flips: flips}
	g.commit(turn, next)
	return turn, nil
}

func (g *Game) commit(turn Turn, next board.Board) {
	g.board = next
	g.history = append(g.history, turn)
	g.pass = 0
	g.trace = nil
	g.current = turn.Player.Opponent()
	g.version++
	g.evaluateTurn()
}

// evaluateTurn settles the phase for the side to move. A pass hands the
// turn over and re-evaluates once; the receiving side always has a move.
func (g *Game) evaluateTurn() {
	for {
		if board.HasAnyValidMove(g.board, g.current) {
			if g.current == core.HumanColor {
				g.enter(core.PhaseAwaitingHuman)
			} else {
				g.enter(core.PhaseAwaitingComputer)
			}
			return
		}

		if !board.HasAnyValidMove(g.board, g.current.Opponent()) {
			n := board.CountStones(g.board)
			g.result = &Result{Black: n.Black, White: n.White, Outcome: core.OutcomeFor(n.Black, n.White)}
			g.enter(core.PhaseGameOver)
			return
		}

		g.enter(core.PhasePassing)
		g.pass = g.current
		g.history = append(g.history, Turn{Player: g.current, Pass: true})
		g.current = g.current.Opponent()
	}
}

func (g *Game) enter(p core.Phase) {
	g.phase = p
	g.trace = append(g.trace, p)
}

func (g *Game) Phase() core.Phase {
	return g.phase
}

func (g *Game) Ended() bool {
	return g.phase == core.PhaseGameOver
}

func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Current() core.Color {
	return g.current
}

func (g *Game) Version() int {
	return g.version
}

func (g *Game) Round() int {
	return g.round
}

// Position encodes the current board and side to move
func (g *Game) Position() string {
	return g.board.Position(g.current)
}

// InitialPosition encodes where the current round started
func (g *Game) InitialPosition() string {
	return g.startBoard.Position(g.startTurn)
}

// Moves lists the round's record, passes included
func (g *Game) Moves() []string {
	moves := make([]string, 0, len(g.history))
	for _, t := range g.history {
		moves = append(moves, t.String())
	}
	return moves
}

// LastPlacement returns the most recent non-pass turn
func (g *Game) LastPlacement() (Turn, bool) {
	for i := len(g.history) - 1; i >= 0; i-- {
		if !g.history[i].Pass {
			return g.history[i], true
		}
	}
	return Turn{}, false
}
