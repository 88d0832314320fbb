package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
	"github.com/devilangelzero54-cmd/mini-othello/internal/game"
	"github.com/devilangelzero54-cmd/mini-othello/internal/service"
)

const (
	DefaultThinkDelay = 600 * time.Millisecond
	DefaultPassDelay  = 900 * time.Millisecond

	requestBuffer = 64
)

// Scheduler runs f once after d. Scheduled work is never cancelled.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ComputerTurnListener is called on the event loop when a session enters the
// computer's turn, before the move is scheduled. It must not call Execute.
type ComputerTurnListener func(gameID string, st game.State)

type Options struct {
	ThinkDelay time.Duration
	PassDelay  time.Duration // added to ThinkDelay when the transition included a pass
	Selector   game.Selector // nil uses a clock-seeded ai.Selector
	Scheduler  Scheduler     // nil uses time.AfterFunc
}

// Processor serialises every command on a single event-loop goroutine; no
// game is mutated anywhere else
type Processor struct {
	svc        *service.Service
	selector   game.Selector
	scheduler  Scheduler
	thinkDelay time.Duration
	passDelay  time.Duration

	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu        sync.RWMutex
	listeners []ComputerTurnListener
}

type request struct {
	cmd   Command
	reply chan ProcessorResponse // nil for fire-and-forget
}

// New starts the event loop
func New(svc *service.Service, opts Options) *Processor {
	if opts.Selector == nil {
		opts.Selector = ai.NewSelector(0)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}

	p := &Processor{
		svc:        svc,
		selector:   opts.Selector,
		scheduler:  opts.Scheduler,
		thinkDelay: opts.ThinkDelay,
		passDelay:  opts.PassDelay,
		requests:   make(chan request, requestBuffer),
		done:       make(chan struct{}),
	}

	p.wg.Add(1)
	go p.run()
	return p
}

// OnComputerTurnReady registers a listener for computer-turn notifications
func (p *Processor) OnComputerTurnReady(fn ComputerTurnListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Execute queues the command and blocks until the event loop has handled it
func (p *Processor) Execute(cmd Command) ProcessorResponse {
	reply := make(chan ProcessorResponse, 1)

	select {
	case p.requests <- request{cmd: cmd, reply: reply}:
	case <-p.done:
		return p.errorResponse("processor is closed", core.ErrInternalError)
	}

	select {
	case resp := <-reply:
		return resp
	case <-p.done:
		return p.errorResponse("processor is closed", core.ErrInternalError)
	}
}

// submit queues the command without waiting for the result
func (p *Processor) submit(cmd Command) {
	select {
	case p.requests <- request{cmd: cmd}:
	case <-p.done:
	}
}

func (p *Processor) run() {
	defer p.wg.Done()

	for {
		select {
		case req := <-p.requests:
			resp := p.dispatch(req.cmd)
			if req.reply != nil {
				req.reply <- resp
			}
		case <-p.done:
			return
		}
	}
}

func (p *Processor) dispatch(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdResetGame:
		return p.handleResetGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdHumanMove:
		return p.handleHumanMove(cmd)
	case CmdComputerMove:
		return p.handleComputerMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

// handleCreateGame starts a session on the opening or a supplied position
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	b, toMove := board.NewStandard(), core.ColorBlack
	if args.Position != "" {
		var err error
		if b, toMove, err = board.ParsePosition(args.Position); err != nil {
			return p.errorResponse(err.Error(), core.ErrInvalidPosition)
		}
	}

	g := game.NewFromPosition(b, toMove, p.selector)
	gameID := p.svc.GenerateGameID()

	if err := p.svc.CreateGame(gameID, g); err != nil {
		if errors.Is(err, service.ErrSessionLimit) {
			return p.errorResponse("too many active games", core.ErrResourceLimit)
		}
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrInternalError)
	}

	pending := p.afterTransition(gameID, g)

	return ProcessorResponse{
		Success: true,
		Pending: pending,
		Data:    p.buildGameResponse(gameID, g),
	}
}

// handleResetGame restarts on the opening; a computer move still scheduled goes stale
func (p *Processor) handleResetGame(cmd Command) ProcessorResponse {
	if err := p.svc.ResetGame(cmd.GameID); err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Pending: p.afterTransition(cmd.GameID, g),
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Pending: g.Phase() == core.PhaseAwaitingComputer,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handleHumanMove applies a black placement. Illegal or out-of-turn requests
// are answered with accepted=false and leave the game untouched.
func (p *Processor) handleHumanMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok || args.Row == nil || args.Col == nil {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	if err = p.svc.HumanMove(cmd.GameID, *args.Row, *args.Col); err != nil {
		var code string
		switch {
		case errors.Is(err, board.ErrIllegalMove):
			code = core.ErrInvalidMove
		case errors.Is(err, game.ErrNotHumanTurn):
			code = core.ErrNotHumanTurn
		case errors.Is(err, game.ErrGameOver):
			code = core.ErrGameOver
		case errors.Is(err, service.ErrGameNotFound):
			return p.errorResponse("game not found", core.ErrGameNotFound)
		default:
			return p.errorResponse(fmt.Sprintf("failed to apply move: %v", err), core.ErrInternalError)
		}
		return ProcessorResponse{
			Success: true,
			Pending: g.Phase() == core.PhaseAwaitingComputer,
			Data: core.MoveResponse{
				Accepted: false,
				Reason:   err.Error(),
				Code:     code,
				Game:     p.buildGameResponse(cmd.GameID, g),
			},
		}
	}

	pending := p.afterTransition(cmd.GameID, g)

	return ProcessorResponse{
		Success: true,
		Pending: pending,
		Data: core.MoveResponse{
			Accepted: true,
			Game:     p.buildGameResponse(cmd.GameID, g),
		},
	}
}

// handleComputerMove runs a scheduled computer turn unless the session moved on
func (p *Processor) handleComputerMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(computerMoveArgs)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		// Deleted or expired while the move was pending
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	if g.Round() != args.Round || g.Version() != args.Version {
		return ProcessorResponse{Success: true, Data: p.buildGameResponse(cmd.GameID, g)}
	}

	if _, err := p.svc.ComputerMove(cmd.GameID); err != nil {
		log.Printf("Computer move failed for game %s: %v", cmd.GameID, err)
		return p.errorResponse(fmt.Sprintf("computer move failed: %v", err), core.ErrInternalError)
	}

	return ProcessorResponse{
		Success: true,
		Pending: p.afterTransition(cmd.GameID, g),
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
	}
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Position: g.Position(),
			Board:    g.Board().ToASCII(),
		},
	}
}

// afterTransition notifies listeners and schedules the computer's move when
// it is white's turn. Reports whether a move was scheduled.
func (p *Processor) afterTransition(gameID string, g *game.Game) bool {
	if g.Phase() != core.PhaseAwaitingComputer {
		return false
	}

	st := g.State()

	p.mu.RLock()
	listeners := p.listeners
	p.mu.RUnlock()
	for _, fn := range listeners {
		fn(gameID, st)
	}

	delay := p.thinkDelay
	if st.PassedThrough() {
		delay += p.passDelay
	}

	next := newComputerMoveCommand(gameID, st.Round, st.Version)
	p.scheduler.AfterFunc(delay, func() {
		p.submit(next)
	})
	return true
}

// Wait blocks until the game moves past version, the wait times out or ctx ends,
// then returns the current game
func (p *Processor) Wait(ctx context.Context, gameID string, version int) ProcessorResponse {
	// the registry drops the waiter once ctx ends, so every return releases it
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	notify := p.svc.RegisterWait(gameID, version, ctx)

	resp := p.Execute(NewGetGameCommand(gameID))
	if !resp.Success {
		return resp
	}
	if gr, ok := resp.Data.(core.GameResponse); ok && gr.Version != version {
		return resp
	}

	select {
	case <-notify:
	case <-ctx.Done():
		return resp
	}

	return p.Execute(NewGetGameCommand(gameID))
}

// buildGameResponse constructs standard game response
func (p *Processor) buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	st := g.State()

	resp := core.GameResponse{
		GameID:     gameID,
		Position:   g.Position(),
		Start:      g.InitialPosition(),
		Board:      st.Board.Cells(),
		Turn:       st.Current.String(),
		Phase:      st.Phase.String(),
		Ended:      st.Ended,
		Message:    st.Message,
		ValidMoves: board.MoveStrings(st.ValidMoves),
		Moves:      g.Moves(),
		Version:    st.Version,
		Round:      st.Round,
	}

	if st.Pass != 0 {
		resp.Pass = st.Pass.String()
	}

	if t, ok := g.LastPlacement(); ok {
		resp.LastMove = &core.MoveInfo{
			Move:        t.Move.String(),
			PlayerColor: t.Player.String(),
			Flipped:     board.MoveStrings(t.Flips),
		}
	}

	if st.Result != nil {
		resp.Result = &core.ResultInfo{
			Black:   st.Result.Black,
			White:   st.Result.White,
			Outcome: st.Result.Outcome.String(),
		}
	}

	return resp
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

// Close stops the event loop. Scheduled computer moves that fire later are dropped.
func (p *Processor) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
	return nil
}
