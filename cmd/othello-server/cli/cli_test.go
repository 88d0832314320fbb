package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"
)

func TestArgumentErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"vacuum"},
		{"init"},
		{"query", "-path", "x.db", "-round", "1"},
		{"query", "-path", "x.db", "-round", "1", "-sessionId", "*"},
	}
	for _, args := range cases {
		if err := run(args, &bytes.Buffer{}); err == nil {
			t.Errorf("run(%q): expected error", args)
		}
	}
}

func TestInitAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	var out bytes.Buffer
	if err := run([]string{"init", "-path", path}, &out); err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	now := time.Now().UTC()
	store.RecordRound(storage.RoundRecord{SessionID: "0123456789abcdef", Round: 1, InitialPosition: "p", StartTimeUTC: now})
	store.RecordMove(storage.MoveRecord{SessionID: "0123456789abcdef", Round: 1, MoveNumber: 1, Move: "c2", Row: 1, Col: 2,
		PlayerColor: "b", FlipCount: 1, PositionAfter: "after", MoveTimeUTC: now})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	store.Close()

	out.Reset()
	if err := run([]string{"query", "-path", path}, &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	for _, want := range []string{"01234567...", "in progress", "Found 1 round(s)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("query output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := run([]string{"query", "-path", path, "-sessionId", "0123456789abcdef", "-round", "1"}, &out); err != nil {
		t.Fatalf("query moves: %v", err)
	}
	if !strings.Contains(out.String(), "c2") || !strings.Contains(out.String(), "after") {
		t.Errorf("move listing missing record:\n%s", out.String())
	}
}
