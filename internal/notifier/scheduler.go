// Package notifier owns the toast expiry timers. The notification store
// itself knows nothing about timing; each toast gets an independently
// cancellable timer here, keyed by its id, so a manual dismissal or an
// undo can never race a stale expiry against an already-removed toast.
package notifier

import (
	"sync"
	"time"

	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/store"
)

// Broadcaster pushes events to connected dashboard clients
type Broadcaster interface {
	BroadcastEvent(event string, payload interface{})
}

type Scheduler struct {
	toasts     *store.NotificationStore
	hub        Broadcaster
	defaultTTL time.Duration
	undoTTL    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewScheduler creates a scheduler. hub may be nil when nothing is
// listening (tests, local runs without the websocket endpoint).
func NewScheduler(toasts *store.NotificationStore, hub Broadcaster, defaultTTL, undoTTL time.Duration) *Scheduler {
	return &Scheduler{
		toasts:     toasts,
		hub:        hub,
		defaultTTL: defaultTTL,
		undoTTL:    undoTTL,
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule arms the expiry timer for a toast. Undoable toasts live longer
// so the moderator has time to click undo.
func (s *Scheduler) Schedule(toast models.Notification) {
	ttl := s.defaultTTL
	if toast.CanUndo {
		ttl = s.undoTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.timers[toast.ID]; ok {
		old.Stop()
	}
	s.timers[toast.ID] = time.AfterFunc(ttl, func() {
		s.expire(toast.ID)
	})
}

func (s *Scheduler) expire(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	s.toasts.Remove(id)
	if s.hub != nil {
		s.hub.BroadcastEvent(models.EventToastRemoved, map[string]string{"id": id})
	}
}

// Cancel stops the timer for a toast that was dismissed or whose undo was
// invoked. Safe to call for ids with no pending timer.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Stop cancels every pending timer
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
