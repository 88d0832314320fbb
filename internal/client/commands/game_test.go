package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devilangelzero54-cmd/mini-othello/internal/client/session"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// fakeServer answers a create, one accepted move and the poll for the reply
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(core.GameResponse{
			GameID: "g1", Phase: core.PhaseAwaitingHuman.String(), Turn: "black",
		})
	})
	mux.HandleFunc("POST /api/v1/games/g1/moves", func(w http.ResponseWriter, r *http.Request) {
		var req core.MoveRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Row == nil || *req.Row != 1 || req.Col == nil || *req.Col != 2 {
			json.NewEncoder(w).Encode(core.MoveResponse{Accepted: false, Reason: "illegal move"})
			return
		}
		json.NewEncoder(w).Encode(core.MoveResponse{Accepted: true, Game: core.GameResponse{
			GameID: "g1", Phase: core.PhaseAwaitingComputer.String(), Turn: "white", Version: 1,
		}})
	})
	mux.HandleFunc("GET /api/v1/games/g1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("version") != "1" {
			t.Errorf("poll version = %q", r.URL.Query().Get("version"))
		}
		json.NewEncoder(w).Encode(core.GameResponse{
			GameID: "g1", Phase: core.PhaseAwaitingHuman.String(), Turn: "black", Version: 2,
			LastMove: &core.MoveInfo{Move: "b2", PlayerColor: "white", Flipped: []string{"c3"}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(fakeServer(t).URL)
	s.Client.Out = io.Discard
	return s
}

func TestNewMoveAndComputerReply(t *testing.T) {
	s := newSession(t)
	r := NewRegistry(s)

	if err := r.Execute("new"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.GetCurrentGame() != "g1" {
		t.Fatalf("current game = %q", s.GetCurrentGame())
	}

	if err := r.Execute("m c2"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := s.LastVersion(); got != 2 {
		t.Fatalf("state version after reply = %d, want 2", got)
	}
	if st := s.GameState(); st.Phase != core.PhaseAwaitingHuman.String() {
		t.Fatalf("phase = %s", st.Phase)
	}
}

func TestRejectedMoveKeepsPhase(t *testing.T) {
	s := newSession(t)
	r := NewRegistry(s)
	r.Execute("new")

	if err := r.Execute("move 0 0"); err != nil {
		t.Fatalf("rejected move should not error: %v", err)
	}
	if s.LastVersion() != 0 {
		t.Fatalf("version changed on rejection: %d", s.LastVersion())
	}
}

func TestCommandsNeedGame(t *testing.T) {
	r := NewRegistry(newSession(t))
	for _, line := range []string{"move c2", "show", "reset", "poll"} {
		if err := r.Execute(line); err == nil {
			t.Errorf("%q without a game: expected error", line)
		}
	}
	if err := r.Execute("bogus"); err == nil {
		t.Error("unknown command: expected error")
	}
}
