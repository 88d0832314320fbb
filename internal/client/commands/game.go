package commands

import (
	"fmt"
	"strings"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/client/display"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// maxComputerPolls bounds how many long polls a move waits for the computer
const maxComputerPolls = 4

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [position]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Place a black stone and wait for the reply",
		Usage:       "move <c2 | row col>",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "reset",
		ShortName:   "r",
		Description: "Restart the current game on the opening",
		Usage:       "reset",
		Handler:     resetHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for game updates",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func newGameHandler(s Session, args []string) error {
	c := s.GetClient()

	fmt.Println("\n" + display.Cyan + "Creating new game..." + display.Reset)

	resp, err := c.CreateGame(strings.Join(args, " "))
	if err != nil {
		return err
	}

	s.SetCurrentGame(resp.GameID)
	s.SetGameState(resp)

	fmt.Printf("%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Printf("%sCurrent game set to: %s%s\n", display.Cyan, resp.GameID, display.Reset)
	printStatus(resp)

	return awaitComputer(s, resp)
}

func joinGameHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetCurrentGame(gameID)
	s.SetGameState(resp)

	fmt.Printf("%sJoined game: %s%s\n", display.Green, gameID, display.Reset)
	fmt.Printf("Turn: %s | Phase: %s | Moves: %d\n", resp.Turn, resp.Phase, len(resp.Moves))

	return nil
}

func moveHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: move <c2 | row col>")
	}

	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	m, err := board.ParseMove(strings.Join(args, " "))
	if err != nil {
		return err
	}

	resp, err := s.GetClient().MakeMove(gameID, m.Row, m.Col)
	if err != nil {
		return err
	}

	s.SetGameState(&resp.Game)
	if !resp.Accepted {
		fmt.Printf("%sMove rejected: %s%s\n", display.Yellow, resp.Reason, display.Reset)
		return nil
	}

	fmt.Printf("%sMove accepted%s\n", display.Green, display.Reset)
	printStatus(&resp.Game)

	return awaitComputer(s, &resp.Game)
}

// awaitComputer long-polls while the computer is to move and reports its placements
func awaitComputer(s Session, g *core.GameResponse) error {
	for polls := 0; g.Phase == core.PhaseAwaitingComputer.String(); polls++ {
		if polls == maxComputerPolls {
			return fmt.Errorf("timeout waiting for computer move")
		}

		fmt.Printf("%sComputer is thinking...%s\n", display.Magenta, display.Reset)
		next, err := s.GetClient().GetGameWithPoll(g.GameID, g.Version)
		if err != nil {
			return err
		}
		if next.Version == g.Version {
			continue
		}

		g = next
		s.SetGameState(g)
		if g.LastMove != nil && g.LastMove.PlayerColor == core.ComputerColor.String() {
			fmt.Printf("%sComputer played: %s%s (flips %s)\n", display.Magenta,
				g.LastMove.Move, display.Reset, strings.Join(g.LastMove.Flipped, " "))
		}
		printStatus(g)
	}
	return nil
}

func printStatus(g *core.GameResponse) {
	if g.Message != "" {
		fmt.Printf("%s%s%s\n", display.Cyan, g.Message, display.Reset)
	}
	if g.Result != nil {
		fmt.Printf("Result: black %d, white %d (%s)\n", g.Result.Black, g.Result.White, g.Result.Outcome)
	}
}

func showBoardHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient()

	game, err := c.GetGame(gameID)
	if err != nil {
		return err
	}

	b, err := c.GetBoard(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(game)

	fmt.Println()
	display.RenderBoard(b.Board)

	fmt.Printf("\nPosition: %s\n", game.Position)
	fmt.Printf("Turn: %s | Phase: %s | Round: %d | Moves: %d\n",
		display.ColorForTurn(game.Turn), game.Phase, game.Round, len(game.Moves))

	if len(game.Moves) > 0 {
		fmt.Printf("\nHistory: %s\n", strings.Join(game.Moves, " "))
	}

	if game.LastMove != nil {
		fmt.Printf("Last move: %s by %s, flipped %s\n",
			game.LastMove.Move, game.LastMove.PlayerColor, strings.Join(game.LastMove.Flipped, " "))
	}
	if !game.Ended && len(game.ValidMoves) > 0 {
		fmt.Printf("Legal for %s: %s\n", game.Turn, strings.Join(game.ValidMoves, " "))
	}
	printStatus(game)

	return nil
}

func gameStateHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	fmt.Printf("%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(resp)

	return nil
}

func resetHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	resp, err := s.GetClient().ResetGame(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(resp)
	fmt.Printf("%sRound %d started%s\n", display.Green, resp.Round, display.Reset)
	printStatus(resp)
	return nil
}

func deleteGameHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if len(args) > 0 {
		gameID = args[0]
	}

	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.GetClient().DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.GetCurrentGame() {
		s.SetCurrentGame("")
	}

	fmt.Printf("%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func pollHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	version := s.LastVersion()

	fmt.Printf("%sLong-polling for updates (version: %d)...%s\n", display.Cyan, version, display.Reset)
	fmt.Printf("%sThis may take up to 25 seconds%s\n", display.Cyan, display.Reset)

	resp, err := s.GetClient().GetGameWithPoll(gameID, version)
	if err != nil {
		return err
	}

	s.SetGameState(resp)

	if resp.Version != version {
		fmt.Printf("%sGame updated to version %d%s\n", display.Green, resp.Version, display.Reset)
		if resp.LastMove != nil {
			fmt.Printf("Last move: %s\n", resp.LastMove.Move)
		}
	} else {
		fmt.Printf("%sNo updates (timeout)%s\n", display.Yellow, display.Reset)
	}

	return nil
}
