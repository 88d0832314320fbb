package processor

import (
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdResetGame
	CmdGetGame
	CmdHumanMove
	CmdComputerMove
	CmdDeleteGame
	CmdGetBoard
)

func (t CommandType) String() string {
	switch t {
	case CmdCreateGame:
		return "create"
	case CmdResetGame:
		return "reset"
	case CmdGetGame:
		return "get"
	case CmdHumanMove:
		return "human_move"
	case CmdComputerMove:
		return "computer_move"
	case CmdDeleteGame:
		return "delete"
	case CmdGetBoard:
		return "board"
	default:
		return "unknown"
	}
}

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	GameID string // For game-specific commands
	Args   any    // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Pending bool                `json:"pending,omitempty"` // computer move scheduled
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

// computerMoveArgs pins a scheduled computer move to the state it was scheduled for
type computerMoveArgs struct {
	Round   int
	Version int
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewResetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdResetGame,
		GameID: gameID,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewHumanMoveCommand(gameID string, row, col int) Command {
	return Command{
		Type:   CmdHumanMove,
		GameID: gameID,
		Args:   core.MoveRequest{Row: &row, Col: &col},
	}
}

func newComputerMoveCommand(gameID string, round, version int) Command {
	return Command{
		Type:   CmdComputerMove,
		GameID: gameID,
		Args:   computerMoveArgs{Round: round, Version: version},
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}
