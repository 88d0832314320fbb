package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/cli"
	"github.com/devilangelzero54-cmd/mini-othello/internal/processor"
	"github.com/devilangelzero54-cmd/mini-othello/internal/service"
)

// goScheduler fires scheduled work at once on its own goroutine
type goScheduler struct{}

func (goScheduler) AfterFunc(_ time.Duration, f func()) {
	go f()
}

func runScript(t *testing.T, script string, saver ThemeSaver) (string, *service.Service) {
	t.Helper()

	svc := service.New(nil, service.Options{})
	proc := processor.New(svc, processor.Options{
		Selector:  ai.NewSelector(3),
		Scheduler: goScheduler{},
	})
	t.Cleanup(func() { proc.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	view := cli.New(cli.NewScanReader(strings.NewReader(script)), &out)
	New(ctx, proc, view, saver).Run()

	return out.String(), svc
}

func TestMoveThenComputerReply(t *testing.T) {
	out, svc := runScript(t, "new\nc2\nhistory\nquit\n", nil)

	for _, want := range []string{
		"Game started.",
		"Your turn.",
		"Computer (white):",
		" 1. black c2",
		" 2. white ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := svc.SessionCount(); n != 0 {
		t.Errorf("session not removed on quit: %d left", n)
	}
}

func TestRejectedMove(t *testing.T) {
	out, _ := runScript(t, "new\na1\nzz\nquit\n", nil)

	if !strings.Contains(out, "Move a1 rejected: illegal move") {
		t.Errorf("missing rejection:\n%s", out)
	}
	if !strings.Contains(out, `unknown command or move "zz"`) {
		t.Errorf("missing parse error:\n%s", out)
	}
	if strings.Contains(out, "Computer (white):") {
		t.Errorf("computer moved after a rejected move:\n%s", out)
	}
}

func TestMoveWithoutGame(t *testing.T) {
	out, _ := runScript(t, "c2\nmoves\n", nil)
	if strings.Count(out, "No active game") != 2 {
		t.Errorf("expected two no-game notices:\n%s", out)
	}
}

func TestPassThenGameOver(t *testing.T) {
	out, _ := runScript(t, "new WB..../....../....../....../....../...... b\n", nil)

	for _, want := range []string{
		"You have no moves. Pass!",
		"Computer (white): c1",
		"Game Over",
		"Black 0 - White 3 (loss)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListMoves(t *testing.T) {
	out, _ := runScript(t, "new\nmoves\n", nil)
	if !strings.Contains(out, "Legal moves: c2 b3 e4 d5") {
		t.Errorf("unexpected move list:\n%s", out)
	}
}

func TestColorSavesTheme(t *testing.T) {
	var saved string
	out, _ := runScript(t, "color gray\ncolor pink\n", func(theme string) error {
		saved = theme
		return nil
	})

	if saved != "gray" {
		t.Errorf("saved theme = %q, want gray", saved)
	}
	if !strings.Contains(out, "invalid theme: pink") {
		t.Errorf("missing theme error:\n%s", out)
	}
}
