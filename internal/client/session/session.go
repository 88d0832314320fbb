package session

import (
	"github.com/devilangelzero54-cmd/mini-othello/internal/client/api"
	"github.com/devilangelzero54-cmd/mini-othello/internal/core"
)

// Session is the debug client's mutable state between commands
type Session struct {
	APIBaseURL       string
	Client           *api.Client
	CurrentGame      string
	CurrentGameState *core.GameResponse
	Verbose          bool
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
	}
}

func (s *Session) GetAPIBaseURL() string { return s.APIBaseURL }

func (s *Session) SetAPIBaseURL(url string) {
	s.APIBaseURL = url
	s.Client.SetBaseURL(url)
}

func (s *Session) GetCurrentGame() string { return s.CurrentGame }

// SetCurrentGame switches games and drops the cached state of the previous one
func (s *Session) SetCurrentGame(id string) {
	if id != s.CurrentGame {
		s.CurrentGameState = nil
	}
	s.CurrentGame = id
}

func (s *Session) GetClient() *api.Client { return s.Client }

func (s *Session) IsVerbose() bool { return s.Verbose }

func (s *Session) SetGameState(g *core.GameResponse) { s.CurrentGameState = g }

func (s *Session) GameState() *core.GameResponse { return s.CurrentGameState }

// LastVersion is the version of the cached game state, -1 when none
func (s *Session) LastVersion() int {
	if s.CurrentGameState == nil {
		return -1
	}
	return s.CurrentGameState.Version
}
