package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdMove
	CmdMoves
	CmdHint
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader yields one line of input per call and io.EOF when input ends.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// Prompter is implemented by inputs that draw their own prompt
type Prompter interface {
	SetPrompt(prompt string)
}

type scanReader struct {
	s *bufio.Scanner
}

// NewScanReader adapts a plain reader, for piped input without a terminal
func NewScanReader(r io.Reader) LineReader {
	return &scanReader{s: bufio.NewScanner(r)}
}

func (r *scanReader) Readline() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	hint    string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;180m", // Tan
		darkBg:  "\033[48;5;137m", // Light brown
		white:   "\033[97m",
		black:   "\033[30m",
		hint:    "\033[33m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;28m", // Felt
		darkBg:  "\033[48;5;22m", // Dark felt
		white:   "\033[97m",
		black:   "\033[30m",
		hint:    "\033[93m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;247m",
		darkBg:  "\033[48;5;240m",
		white:   "\033[97m",
		black:   "\033[30m",
		hint:    "\033[36m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	input   LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
	hints   bool
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand reads one line and parses it; end of input reads as quit
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return &Command{Type: CmdNone}, nil
	}

	return parseCommand(line), nil
}

func parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new", "reset":
		return &Command{Type: CmdNew, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdMoves}
	case "hint":
		return &Command{Type: CmdHint}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// "c2" or "1 2"
		return &Command{Type: CmdMove, Args: []string{input}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

// ToggleHints switches valid-move markers on the board
func (c *CLI) ToggleHints() bool {
	c.hints = !c.hints
	return c.hints
}

func (c *CLI) HintsEnabled() bool {
	return c.hints
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	if p, ok := c.input.(Prompter); ok {
		p.SetPrompt(prompt)
		return
	}
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard draws the board; marked cells are shown as '*' when hints are on
func (c *CLI) DisplayBoard(cells [board.Size][board.Size]int, marks []string) {
	theme := themes[c.theme]
	marked := make(map[string]bool, len(marks))
	if c.hints {
		for _, m := range marks {
			marked[m] = true
		}
	}

	var sb strings.Builder
	header := "  a b c d e f\n"
	sb.WriteString("\n" + header)

	for r := 0; r < board.Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for col := 0; col < board.Size; col++ {
			name := board.Move{Row: r, Col: col}.String()

			glyph, fg := '.', ""
			switch cells[r][col] {
			case int(board.Black):
				glyph, fg = 'B', theme.black
			case int(board.White):
				glyph, fg = 'W', theme.white
			default:
				if marked[name] {
					glyph, fg = '*', theme.hint
				}
			}

			if c.theme == ThemeOff {
				sb.WriteString(fmt.Sprintf("%c ", glyph))
				continue
			}

			bg := theme.darkBg
			if (r+col)%2 == 0 {
				bg = theme.lightBg
			}
			if glyph == '.' {
				glyph = ' '
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, glyph, theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString(header)

	c.ShowMessage(sb.String())
}

// ShowGame draws the board and the status line of a snapshot
func (c *CLI) ShowGame(g core.GameResponse) {
	c.DisplayBoard(g.Board, g.ValidMoves)
	black, white := countCells(g.Board)
	c.ShowMessage(fmt.Sprintf("Black %d - White %d", black, white))
	if g.Message != "" {
		c.ShowMessage(g.Message)
	}
}

func countCells(cells [board.Size][board.Size]int) (black, white int) {
	for _, row := range cells {
		for _, v := range row {
			switch v {
			case int(board.Black):
				black++
			case int(board.White):
				white++
			}
		}
	}
	return black, white
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new [position]   - Start a new round, optionally from a position
                     (e.g. new ....../....../..WB../..BW../....../...... b)
  <move>           - Place a black stone (e.g. c2, or row and column: 1 2)
  moves            - List your legal moves
  hint             - Toggle legal-move markers on the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle detailed move information
  history          - Show the round's moves
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Mini Othello!")
	c.ShowMessage("You play Black on a 6x6 board. Place a stone so that it brackets")
	c.ShowMessage("white stones in a line; the bracketed stones flip to black.")
	c.ShowMessage("A side without a legal move passes. Most stones at the end wins.")
	c.ShowMessage("Commands: new, <move>, moves, hint, history, color, verbose, help/?, quit")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g core.GameResponse) {
	c.ShowMessage(fmt.Sprintf("Starting position: %s", g.Start))

	player := core.ColorBlack
	if _, turn, err := board.ParsePosition(g.Start); err == nil {
		player = turn
	}

	for i, m := range g.Moves {
		c.ShowMessage(fmt.Sprintf("%2d. %-5s %s", i+1, player, m))
		player = player.Opponent()
	}
	c.ShowMessage(fmt.Sprintf("Current position: %s", g.Position))
	c.ShowMessage(fmt.Sprintf("Phase: %s (round %d)", g.Phase, g.Round))
}

// ShowComputerMove reports the computer's placement, with flips in verbose mode
func (c *CLI) ShowComputerMove(g core.GameResponse) {
	if g.LastMove == nil {
		return
	}
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Computer (white): %s flips %s",
			g.LastMove.Move, strings.Join(g.LastMove.Flipped, " ")))
		return
	}
	c.ShowMessage(fmt.Sprintf("Computer (white): %s", g.LastMove.Move))
}

func (c *CLI) ShowHumanMove(g core.GameResponse) {
	if c.verbose && g.LastMove != nil {
		c.ShowMessage(fmt.Sprintf("Your move: %s flips %s",
			g.LastMove.Move, strings.Join(g.LastMove.Flipped, " ")))
	}
}

func (c *CLI) ShowGameOver(g core.GameResponse) {
	c.ShowMessage("\nGame Over")
	if g.Result != nil {
		c.ShowMessage(fmt.Sprintf("Black %d - White %d (%s)", g.Result.Black, g.Result.White, g.Result.Outcome))
	}
	c.ShowMessage("Start another round with 'new'.")
}
