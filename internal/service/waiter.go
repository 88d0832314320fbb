package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second

	// WaitChannelBuffer size for notification channels
	WaitChannelBuffer = 1
)

// WaitRegistry manages long-polling clients waiting for game state changes
type WaitRegistry struct {
	mu       sync.RWMutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
	timeout  time.Duration
}

// WaitRequest represents a single client waiting for game updates
type WaitRequest struct {
	Version int             // Last version the client has seen
	Notify  chan struct{}   // Buffered channel for notifications
	Timer   *time.Timer     // Timeout timer
	Context context.Context // Client connection context
	GameID  string

	done chan struct{}
	once sync.Once
}

// signal delivers a notification without blocking
func (r *WaitRequest) signal() {
	select {
	case r.Notify <- struct{}{}:
	default:
		// Channel full, client already has a pending notification
	}
}

// finish stops the timer and releases the watcher goroutine
func (r *WaitRequest) finish() {
	r.once.Do(func() {
		if r.Timer != nil {
			r.Timer.Stop()
		}
		close(r.done)
	})
}

func NewWaitRegistry() *WaitRegistry {
	return newWaitRegistry(WaitTimeout)
}

func newWaitRegistry(timeout time.Duration) *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
		timeout:  timeout,
	}
}

// RegisterWait registers a client to wait until the game version moves past version.
// The returned channel fires once on change, timeout, game removal or shutdown.
func (w *WaitRegistry) RegisterWait(gameID string, version int, ctx context.Context) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := &WaitRequest{
		Version: version,
		Notify:  make(chan struct{}, WaitChannelBuffer),
		Context: ctx,
		GameID:  gameID,
		done:    make(chan struct{}),
	}

	if w.closed {
		req.signal()
		return req.Notify
	}

	req.Timer = time.AfterFunc(w.timeout, func() {
		w.handleTimeout(req)
	})

	w.waiters[gameID] = append(w.waiters[gameID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.removeWaiter(gameID, req)
		case <-req.done:
		case <-w.shutdown:
			req.signal()
		}
		req.finish()
	}()

	return req.Notify
}

// NotifyGame wakes every waiter whose known version differs from the current one
func (w *WaitRegistry) NotifyGame(gameID string, version int) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	var keep []*WaitRequest
	for _, req := range waitList {
		if req.Version == version {
			keep = append(keep, req)
			continue
		}
		req.signal()
		req.finish()
	}
	if len(keep) == 0 {
		delete(w.waiters, gameID)
	} else {
		w.waiters[gameID] = keep
	}
	w.mu.Unlock()
}

// RemoveGame removes all waiters for a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.signal()
		req.finish()
	}
}

// Pending returns the number of waiters registered for a game
func (w *WaitRegistry) Pending(gameID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.waiters[gameID])
}

// Shutdown gracefully shuts down the wait registry
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.shutdown)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

func (w *WaitRegistry) handleTimeout(req *WaitRequest) {
	w.removeWaiter(req.GameID, req)
	req.signal()
	req.finish()
}

// removeWaiter removes a specific waiter from the registry
func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
