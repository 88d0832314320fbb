package transport

import (
	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/cli"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// View abstracts the line-oriented display and input of a local game
type View interface {
	GetCommand() (*cli.Command, error)
	ShowPrompt(prompt string)
	ShowMessage(msg string)
	ShowError(err error)
	ShowHelp()

	DisplayBoard(cells [board.Size][board.Size]int, marks []string)
	ShowGame(g core.GameResponse)
	ShowGameHistory(g core.GameResponse)
	ShowHumanMove(g core.GameResponse)
	ShowComputerMove(g core.GameResponse)
	ShowGameOver(g core.GameResponse)

	SetTheme(theme cli.ColorTheme) error
	ToggleVerbose() bool
	ToggleHints() bool
}

var _ View = (*cli.CLI)(nil)
