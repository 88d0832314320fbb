// Package main implements an interactive debugging client for the mini-othello API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/devilangelzero54-cmd/mini-othello/internal/client/commands"
	"github.com/devilangelzero54-cmd/mini-othello/internal/client/display"
	"github.com/devilangelzero54-cmd/mini-othello/internal/client/session"
	"github.com/devilangelzero54-cmd/mini-othello/internal/config"

	"github.com/adrg/xdg"
	"github.com/chzyer/readline"
)

func main() {
	defaultURL := "http://localhost:8080"
	if cfg, err := config.InitConfig(); err == nil {
		defaultURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	apiURL := flag.String("api", defaultURL, "API base URL")
	flag.Parse()

	s := session.New(*apiURL)

	historyFile, err := xdg.StateFile(filepath.Join("mini-othello", "client_history"))
	if err != nil {
		historyFile = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("othello"),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sOthello Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			display.Println(display.Cyan, "Goodbye!")
			break
		}

		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "othello"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.White + id + display.Yellow + "]"
	}

	if g := s.CurrentGameState; g != nil {
		if g.Ended {
			promptStr += " - " + display.Magenta + "over" + display.Reset
		} else {
			who := "h"
			if g.Turn == "white" {
				who = "c"
			}
			promptStr += fmt.Sprintf(" - Turn:%s(%s)", display.ColorForTurn(g.Turn), who)
		}
	}

	return display.Prompt(promptStr)
}
