// Package main runs a local game of mini-othello in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/cli"
	"github.com/devilangelzero54-cmd/mini-othello/internal/config"
	"github.com/devilangelzero54-cmd/mini-othello/internal/processor"
	"github.com/devilangelzero54-cmd/mini-othello/internal/service"
	clitransport "github.com/devilangelzero54-cmd/mini-othello/internal/transport/cli"

	"github.com/adrg/xdg"
	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		if cfg, err = config.Load(""); err != nil {
			log.Fatalf("Failed to load default config: %v", err)
		}
	}

	var (
		thinkDelay = flag.Duration("think-delay", cfg.ThinkDelay(), "Pause before the computer moves")
		passDelay  = flag.Duration("pass-delay", cfg.PassDelay(), "Extra pause after a pass")
		seed       = flag.Uint64("seed", cfg.AI.Seed, "AI tie-break seed (0 seeds from the clock)")
		theme      = flag.String("theme", cfg.CLI.Theme, "Board color theme (off|brown|green|gray)")
	)
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	colored := term.IsTerminal(int(os.Stdout.Fd()))

	input, closeInput, err := newInput(interactive)
	if err != nil {
		log.Fatalf("Failed to start input: %v", err)
	}
	defer closeInput()

	view := cli.New(input, os.Stdout)
	if !colored {
		*theme = string(cli.ThemeOff)
	}
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		log.Printf("Warning: %v", err)
	}

	svc := service.New(nil, service.Options{MaxSessions: 1})
	proc := processor.New(svc, processor.Options{
		ThinkDelay: *thinkDelay,
		PassDelay:  *passDelay,
		Selector:   ai.NewSelector(*seed),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	saveTheme := func(name string) error {
		cfg.CLI.Theme = name
		return cfg.Save()
	}

	handler := clitransport.New(ctx, proc, view, saveTheme)

	view.ShowWelcome()
	handler.Run()

	if err := proc.Close(); err != nil {
		log.Printf("Processor close error: %v", err)
	}
	if err := svc.Shutdown(time.Second); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}
}

// newInput uses readline with history on a terminal and a line scanner otherwise
func newInput(interactive bool) (cli.LineReader, func(), error) {
	if !interactive {
		return cli.NewScanReader(os.Stdin), func() {}, nil
	}

	historyFile, err := xdg.StateFile(filepath.Join("mini-othello", "history"))
	if err != nil {
		historyFile = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, nil, err
	}
	return interruptAsEOF{rl}, func() { rl.Close() }, nil
}

// interruptAsEOF ends the game loop on ^C
type interruptAsEOF struct {
	rl *readline.Instance
}

func (r interruptAsEOF) Readline() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r interruptAsEOF) SetPrompt(prompt string) {
	r.rl.SetPrompt(prompt)
}
