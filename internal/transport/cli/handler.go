package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/cli"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
	"github.com/devilangelzero54-cmd/mini-othello/internal/processor"
	"github.com/devilangelzero54-cmd/mini-othello/internal/transport"
)

// ThemeSaver persists a theme chosen with the color command
type ThemeSaver func(theme string) error

type CLIHandler struct {
	ctx       context.Context
	proc      *processor.Processor
	view      transport.View
	saveTheme ThemeSaver
	gameID    string
}

func New(ctx context.Context, proc *processor.Processor, view transport.View, saveTheme ThemeSaver) *CLIHandler {
	return &CLIHandler{
		ctx:       ctx,
		proc:      proc,
		view:      view,
		saveTheme: saveTheme,
	}
}

// Run reads and executes commands until quit, end of input or ctx ends
func (h *CLIHandler) Run() {
	for h.ctx.Err() == nil {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}

	if h.gameID != "" {
		h.proc.Execute(processor.NewDeleteGameCommand(h.gameID))
	}
}

func (h *CLIHandler) getPrompt() string {
	g, ok := h.current()
	if !ok || g.Ended {
		return "> "
	}
	return fmt.Sprintf("[%s]> ", g.Turn)
}

// ProcessCommand handles one command; it returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdNew:
		h.handleNewGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.handleMove(cmd.Args[0])

	case cli.CmdMoves:
		g, ok := h.current()
		if !ok {
			h.view.ShowMessage("No active game. Use 'new'.")
			return true
		}
		if g.Phase != core.PhaseAwaitingHuman.String() || len(g.ValidMoves) == 0 {
			h.view.ShowMessage("No moves available to you right now.")
			return true
		}
		h.view.ShowMessage("Legal moves: " + strings.Join(g.ValidMoves, " "))

	case cli.CmdHint:
		on := h.view.ToggleHints()
		h.view.ShowMessage(fmt.Sprintf("Move markers: %t", on))
		if g, ok := h.current(); ok {
			h.view.DisplayBoard(g.Board, g.ValidMoves)
		}

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if h.saveTheme != nil {
			if err := h.saveTheme(string(theme)); err != nil {
				h.view.ShowError(fmt.Errorf("theme not saved: %w", err))
			}
		}
		if g, ok := h.current(); ok {
			h.view.DisplayBoard(g.Board, g.ValidMoves)
		}

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		g, ok := h.current()
		if !ok {
			h.view.ShowMessage("No active game.")
			return true
		}
		h.view.ShowGameHistory(g)

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

// handleNewGame resets the current session, or replaces it when a custom
// position is given
func (h *CLIHandler) handleNewGame(position string) {
	var resp processor.ProcessorResponse
	if h.gameID != "" && position == "" {
		resp = h.proc.Execute(processor.NewResetGameCommand(h.gameID))
	} else {
		if h.gameID != "" {
			h.proc.Execute(processor.NewDeleteGameCommand(h.gameID))
			h.gameID = ""
		}
		resp = h.proc.Execute(processor.NewCreateGameCommand(core.CreateGameRequest{Position: position}))
	}

	if !resp.Success {
		h.view.ShowError(responseError(resp))
		return
	}

	g := resp.Data.(core.GameResponse)
	h.gameID = g.GameID

	h.view.ShowMessage("Game started.")
	h.view.ShowGame(g)
	h.settle(g)
}

func (h *CLIHandler) handleMove(input string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new'.")
		return
	}

	m, err := board.ParseMove(input)
	if err != nil {
		h.view.ShowError(fmt.Errorf("unknown command or move %q (type 'help')", input))
		return
	}

	resp := h.proc.Execute(processor.NewHumanMoveCommand(h.gameID, m.Row, m.Col))
	if !resp.Success {
		h.view.ShowError(responseError(resp))
		return
	}

	mr := resp.Data.(core.MoveResponse)
	if !mr.Accepted {
		h.view.ShowMessage(fmt.Sprintf("Move %s rejected: %s", m, mr.Reason))
		return
	}

	h.view.ShowHumanMove(mr.Game)
	h.view.ShowGame(mr.Game)
	h.settle(mr.Game)
}

// settle follows scheduled computer turns until the human can act or the
// game is over
func (h *CLIHandler) settle(g core.GameResponse) {
	for g.Phase == core.PhaseAwaitingComputer.String() {
		resp := h.proc.Wait(h.ctx, h.gameID, g.Version)
		if !resp.Success {
			h.view.ShowError(responseError(resp))
			return
		}
		if h.ctx.Err() != nil {
			return
		}

		next := resp.Data.(core.GameResponse)
		if next.Version == g.Version {
			continue
		}
		g = next

		h.view.ShowComputerMove(g)
		h.view.ShowGame(g)
	}

	if g.Ended {
		h.view.ShowGameOver(g)
	}
}

func (h *CLIHandler) current() (core.GameResponse, bool) {
	if h.gameID == "" {
		return core.GameResponse{}, false
	}
	resp := h.proc.Execute(processor.NewGetGameCommand(h.gameID))
	if !resp.Success {
		return core.GameResponse{}, false
	}
	g, ok := resp.Data.(core.GameResponse)
	return g, ok
}

func responseError(resp processor.ProcessorResponse) error {
	if resp.Error == nil {
		return errors.New("request failed")
	}
	return fmt.Errorf("%s (%s)", resp.Error.Error, resp.Error.Code)
}
