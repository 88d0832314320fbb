package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"
)

// Run is the entry point for the archive maintenance commands
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, or query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// pathFlags parses a subcommand's flags; -path is always required
func pathFlags(name string, args []string, extra func(*flag.FlagSet)) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	if extra != nil {
		extra(fs)
	}

	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *path == "" {
		return "", fmt.Errorf("database path required")
	}
	return *path, nil
}

func runInit(args []string, out io.Writer) error {
	path, err := pathFlags("init", args, nil)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	path, err := pathFlags("delete", args, nil)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	var (
		sessionID *string
		round     *int
	)
	path, err := pathFlags("query", args, func(fs *flag.FlagSet) {
		sessionID = fs.String("sessionId", "", "Session ID to filter (optional, * for all)")
		round = fs.Int("round", 0, "Round to list moves for (requires -sessionId)")
	})
	if err != nil {
		return err
	}

	if *round > 0 && (*sessionID == "" || *sessionID == "*") {
		return fmt.Errorf("-round requires a specific -sessionId")
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	if *round > 0 {
		return printMoves(store, *sessionID, *round, out)
	}

	rounds, err := store.QueryRounds(*sessionID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(rounds) == 0 {
		fmt.Fprintln(out, "No rounds found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Session ID\tRound\tMoves\tResult\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	for _, r := range rounds {
		result := "in progress"
		if r.Result != nil {
			result = fmt.Sprintf("%s %d-%d", r.Result.Outcome, r.Result.BlackCount, r.Result.WhiteCount)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			shortID(r.SessionID),
			r.Round,
			r.MoveCount,
			result,
			r.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d round(s)\n", len(rounds))
	return nil
}

func printMoves(store *storage.Store, sessionID string, round int, out io.Writer) error {
	moves, err := store.QueryMoves(sessionID, round)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPlayer\tMove\tFlips\tPosition After")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", m.MoveNumber, m.PlayerColor, m.Move, m.FlipCount, m.PositionAfter)
	}
	w.Flush()

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
