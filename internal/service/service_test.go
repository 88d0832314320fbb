package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/ai"
	"github.com/devilangelzero54-cmd/mini-othello/internal/board"
	"github.com/devilangelzero54-cmd/mini-othello/internal/game"
	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"
)

func newGame() *game.Game {
	return game.New(ai.NewSelector(1))
}

func receive(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}
}

func TestCreateAndGetGame(t *testing.T) {
	svc := New(nil, Options{})
	id := svc.GenerateGameID()

	if err := svc.CreateGame(id, newGame()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.CreateGame(id, newGame()); !errors.Is(err, ErrDuplicateGame) {
		t.Fatalf("expected ErrDuplicateGame, got %v", err)
	}

	g, err := svc.GetGame(id)
	if err != nil || g == nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.GetGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if svc.GetStorageHealth() != "disabled" {
		t.Fatalf("expected disabled storage, got %s", svc.GetStorageHealth())
	}
}

func TestSessionLimit(t *testing.T) {
	svc := New(nil, Options{MaxSessions: 2})
	for i := 0; i < 2; i++ {
		if err := svc.CreateGame(svc.GenerateGameID(), newGame()); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if err := svc.CreateGame(svc.GenerateGameID(), newGame()); !errors.Is(err, ErrSessionLimit) {
		t.Fatalf("expected ErrSessionLimit, got %v", err)
	}
}

func TestMovesPassThroughCoordinatorErrors(t *testing.T) {
	svc := New(nil, Options{})
	id := svc.GenerateGameID()
	svc.CreateGame(id, newGame())

	if err := svc.HumanMove(id, 0, 0); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if _, err := svc.ComputerMove(id); !errors.Is(err, game.ErrNotComputerTurn) {
		t.Fatalf("expected ErrNotComputerTurn, got %v", err)
	}
	if err := svc.HumanMove("missing", 1, 2); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}

	if err := svc.HumanMove(id, 1, 2); err != nil {
		t.Fatalf("human move: %v", err)
	}
	if _, err := svc.ComputerMove(id); err != nil {
		t.Fatalf("computer move: %v", err)
	}
}

func TestWaitersWakeOnChange(t *testing.T) {
	svc := New(nil, Options{})
	defer svc.Shutdown(time.Second)
	id := svc.GenerateGameID()
	svc.CreateGame(id, newGame())

	g, _ := svc.GetGame(id)
	notify := svc.RegisterWait(id, g.Version(), context.Background())

	select {
	case <-notify:
		t.Fatal("woken without a change")
	case <-time.After(20 * time.Millisecond):
	}

	if err := svc.HumanMove(id, 1, 2); err != nil {
		t.Fatalf("human move: %v", err)
	}
	receive(t, notify)

	if n := svc.waiter.Pending(id); n != 0 {
		t.Fatalf("expected waiter removed after notification, %d left", n)
	}
}

func TestStaleWaiterWakesOnNextNotify(t *testing.T) {
	w := newWaitRegistry(time.Minute)
	defer w.Shutdown(time.Second)

	notify := w.RegisterWait("g", 3, context.Background())
	w.NotifyGame("g", 3)
	if w.Pending("g") != 1 {
		t.Fatal("waiter on the current version must stay registered")
	}
	w.NotifyGame("g", 4)
	receive(t, notify)
}

func TestWaitTimeout(t *testing.T) {
	w := newWaitRegistry(20 * time.Millisecond)
	defer w.Shutdown(time.Second)

	receive(t, w.RegisterWait("g", 0, context.Background()))
	if w.Pending("g") != 0 {
		t.Fatal("timed out waiter must be removed")
	}
}

func TestWaitContextCancel(t *testing.T) {
	w := newWaitRegistry(time.Minute)
	defer w.Shutdown(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	w.RegisterWait("g", 0, ctx)
	cancel()

	deadline := time.Now().Add(time.Second)
	for w.Pending("g") != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if w.Pending("g") != 0 {
		t.Fatal("cancelled waiter must be removed")
	}
}

func TestDeleteGameWakesWaiters(t *testing.T) {
	svc := New(nil, Options{})
	defer svc.Shutdown(time.Second)
	id := svc.GenerateGameID()
	svc.CreateGame(id, newGame())

	notify := svc.RegisterWait(id, 0, context.Background())
	if err := svc.DeleteGame(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	receive(t, notify)

	if err := svc.DeleteGame(id); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestShutdownWakesWaiters(t *testing.T) {
	svc := New(nil, Options{})
	notify := svc.RegisterWait("g", 0, context.Background())
	if err := svc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	receive(t, notify)
	receive(t, svc.RegisterWait("g", 0, context.Background()))
}

func TestCleanupIdle(t *testing.T) {
	svc := New(nil, Options{IdleTTL: time.Hour})
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	stale := svc.GenerateGameID()
	svc.CreateGame(stale, newGame())

	clock = clock.Add(50 * time.Minute)
	fresh := svc.GenerateGameID()
	svc.CreateGame(fresh, newGame())

	clock = clock.Add(20 * time.Minute)
	if n := svc.cleanupIdle(); n != 1 {
		t.Fatalf("expected 1 idle session removed, got %d", n)
	}
	if _, err := svc.GetGame(stale); !errors.Is(err, ErrGameNotFound) {
		t.Fatal("stale session survived cleanup")
	}
	if _, err := svc.GetGame(fresh); err != nil {
		t.Fatal("fresh session removed")
	}
}

func TestArchiveRecordsRounds(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "archive.db"), false)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatalf("init: %v", err)
	}

	svc := New(store, Options{})
	defer svc.Shutdown(time.Second)

	// black passes at once, white's single reply ends the game
	b, toMove, _ := board.ParsePosition("WB..../....../....../....../....../...... b")
	id := svc.GenerateGameID()
	if err := svc.CreateGame(id, game.NewFromPosition(b, toMove, ai.NewSelector(1))); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ComputerMove(id); err != nil {
		t.Fatalf("computer move: %v", err)
	}
	if err := svc.ResetGame(id); err != nil {
		t.Fatalf("reset: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	rounds, err := store.QueryRounds(id)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	var first storage.RoundSummary
	for _, r := range rounds {
		if r.Round == 1 {
			first = r
		}
	}
	if first.MoveCount != 2 || first.Result == nil || first.Result.Outcome != "loss" {
		t.Fatalf("unexpected first round %+v", first)
	}

	moves, _ := store.QueryMoves(id, 1)
	if len(moves) != 2 || moves[0].Move != "pass" || moves[0].PlayerColor != "b" || moves[1].Move != "c1" {
		t.Fatalf("unexpected archived moves %+v", moves)
	}
	if svc.GetStorageHealth() != "ok" {
		t.Fatalf("expected healthy storage, got %s", svc.GetStorageHealth())
	}
}
