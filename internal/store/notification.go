package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/modqueue/backend/internal/models"
)

// NotificationStore keeps the ordered queue of toast notifications.
// Expiry timing lives outside the store (see internal/notifier); the
// queue itself only appends and removes.
type NotificationStore struct {
	mu     sync.RWMutex
	toasts []models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{toasts: []models.Notification{}}
}

// Add appends a toast with a fresh id and returns it so the caller can
// schedule its expiry.
func (s *NotificationStore) Add(message, toastType string, canUndo bool, undoID string) models.Notification {
	toast := models.Notification{
		ID:      "toast_" + uuid.New().String(),
		Message: message,
		Type:    toastType,
		CanUndo: canUndo,
		UndoID:  undoID,
	}
	s.mu.Lock()
	s.toasts = append(s.toasts, toast)
	s.mu.Unlock()
	return toast
}

// Remove drops the toast with the given id. Idempotent.
func (s *NotificationStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// ClearAll empties the queue
func (s *NotificationStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = []models.Notification{}
}

// Get returns the toast with the given id
func (s *NotificationStore) Get(id string) (models.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.toasts {
		if t.ID == id {
			return t, true
		}
	}
	return models.Notification{}, false
}

// Snapshot returns the queue in append order
func (s *NotificationStore) Snapshot() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification{}, s.toasts...)
}
