package service

import (
	"fmt"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/game"
	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"

	"github.com/google/uuid"
)

type session struct {
	game       *game.Game
	lastActive time.Time
	archived   int  // history entries of the current round already archived
	finished   bool // result of the current round archived
}

// CreateGame registers a new session under id
func (s *Service) CreateGame(id string, g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGame, id)
	}
	if len(s.games) >= s.maxSessions {
		return ErrSessionLimit
	}

	sess := &session{game: g}
	s.games[id] = sess
	s.recordRound(id, g)
	s.commit(id, sess)
	return nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess.game, nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// HumanMove applies a black placement; coordinator errors pass through unchanged
func (s *Service) HumanMove(gameID string, row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	if err := sess.game.HumanMove(row, col); err != nil {
		return err
	}
	s.commit(gameID, sess)
	return nil
}

// ComputerMove plays white's turn
func (s *Service) ComputerMove(gameID string) (game.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[gameID]
	if !ok {
		return game.Turn{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	turn, err := sess.game.ComputerMove()
	if err != nil {
		return game.Turn{}, err
	}
	s.commit(gameID, sess)
	return turn, nil
}

// ResetGame restarts the session on the opening position as a new round
func (s *Service) ResetGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	sess.game.Reset()
	sess.archived = 0
	sess.finished = false
	s.recordRound(gameID, sess.game)
	s.commit(gameID, sess)
	return nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	// Wake and drop waiters before the game disappears
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

// commit runs after every state change: archive, touch, wake waiters. Caller holds s.mu.
func (s *Service) commit(gameID string, sess *session) {
	sess.lastActive = s.now()
	s.archive(gameID, sess)
	s.waiter.NotifyGame(gameID, sess.game.Version())
}

func (s *Service) recordRound(gameID string, g *game.Game) {
	if s.store == nil {
		return
	}
	s.store.RecordRound(storage.RoundRecord{
		SessionID:       gameID,
		Round:           g.Round(),
		InitialPosition: g.InitialPosition(),
		StartTimeUTC:    s.now().UTC(),
	})
}

// archive writes the history entries and result not yet recorded for the round.
// A transition holds at most one placement, so every new entry shares the current board.
func (s *Service) archive(gameID string, sess *session) {
	if s.store == nil {
		return
	}

	st := sess.game.State()
	now := s.now().UTC()

	for i := sess.archived; i < len(st.History); i++ {
		turn := st.History[i]
		record := storage.MoveRecord{
			SessionID:     gameID,
			Round:         st.Round,
			MoveNumber:    i + 1,
			Move:          turn.String(),
			Row:           turn.Move.Row,
			Col:           turn.Move.Col,
			PlayerColor:   turn.Player.String()[:1],
			FlipCount:     len(turn.Flips),
			PositionAfter: st.Board.Position(turn.Player.Opponent()),
			MoveTimeUTC:   now,
		}
		if turn.Pass {
			record.Row, record.Col = -1, -1
		}
		s.store.RecordMove(record)
	}
	sess.archived = len(st.History)

	if st.Result != nil && !sess.finished {
		s.store.RecordResult(storage.ResultRecord{
			SessionID:  gameID,
			Round:      st.Round,
			BlackCount: st.Result.Black,
			WhiteCount: st.Result.White,
			Outcome:    st.Result.Outcome.String(),
			EndTimeUTC: now,
		})
		sess.finished = true
	}
}
