package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/devilangelzero54-cmd/mini-othello/internal/storage"
)

const (
	DefaultMaxSessions = 1000
	DefaultIdleTTL     = 2 * time.Hour
	CleanupJobInterval = 5 * time.Minute
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrSessionLimit  = errors.New("session limit reached")
	ErrDuplicateGame = errors.New("game already exists")
)

type Options struct {
	MaxSessions int           // 0 uses DefaultMaxSessions
	IdleTTL     time.Duration // 0 uses DefaultIdleTTL
}

// Service holds the in-memory sessions, their waiters and the optional archive
type Service struct {
	games       map[string]*session
	mu          sync.RWMutex
	store       *storage.Store // nil if archiving disabled
	waiter      *WaitRegistry
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

// New creates a new service instance with optional storage
func New(store *storage.Store, opts Options) *Service {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}
	return &Service{
		games:       make(map[string]*session),
		store:       store,
		waiter:      NewWaitRegistry(),
		maxSessions: opts.MaxSessions,
		idleTTL:     opts.IdleTTL,
		now:         time.Now,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// RegisterWait registers a client to wait for the game to move past version
func (s *Service) RegisterWait(gameID string, version int, ctx context.Context) <-chan struct{} {
	return s.waiter.RegisterWait(gameID, version, ctx)
}

// PendingWaits returns the number of long-poll waiters registered for a game
func (s *Service) PendingWaits(gameID string) int {
	return s.waiter.Pending(gameID)
}

// SessionCount returns the number of live sessions
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*session)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically drops sessions idle for longer than the TTL
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.cleanupIdle(); n > 0 {
				log.Printf("cleanup: removed %d idle sessions", n)
			}
		}
	}
}

func (s *Service) cleanupIdle() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var expired []string
	for id, sess := range s.games {
		if sess.lastActive.Before(cutoff) {
			expired = append(expired, id)
			delete(s.games, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.waiter.RemoveGame(id)
	}
	return len(expired)
}
