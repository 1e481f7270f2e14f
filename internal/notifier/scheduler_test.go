package notifier

import (
	"testing"
	"time"

	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/store"
)

func waitForRemoval(t *testing.T, toasts *store.NotificationStore, id string, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case <-deadline:
			t.Fatalf("toast %s still present after %v", id, timeout)
		case <-time.After(5 * time.Millisecond):
			if _, ok := toasts.Get(id); !ok {
				return
			}
		}
	}
}

func TestToastExpires(t *testing.T) {
	toasts := store.NewNotificationStore()
	s := NewScheduler(toasts, nil, 20*time.Millisecond, 40*time.Millisecond)
	defer s.Stop()

	toast := toasts.Add("Post approved", models.ToastSuccess, false, "")
	s.Schedule(toast)

	waitForRemoval(t, toasts, toast.ID, 500*time.Millisecond)
}

func TestUndoableToastOutlivesPlainToast(t *testing.T) {
	toasts := store.NewNotificationStore()
	s := NewScheduler(toasts, nil, 20*time.Millisecond, 150*time.Millisecond)
	defer s.Stop()

	plain := toasts.Add("Post approved", models.ToastSuccess, false, "")
	undoable := toasts.Add("Approved 2 posts", models.ToastSuccess, true, "batch_approve_x")
	s.Schedule(plain)
	s.Schedule(undoable)

	waitForRemoval(t, toasts, plain.ID, 500*time.Millisecond)
	if _, ok := toasts.Get(undoable.ID); !ok {
		t.Fatal("undoable toast expired on the short timer")
	}
	waitForRemoval(t, toasts, undoable.ID, 500*time.Millisecond)
}

func TestCancelStopsExpiry(t *testing.T) {
	toasts := store.NewNotificationStore()
	s := NewScheduler(toasts, nil, 20*time.Millisecond, 40*time.Millisecond)
	defer s.Stop()

	toast := toasts.Add("Post rejected", models.ToastSuccess, false, "")
	s.Schedule(toast)
	s.Cancel(toast.ID)

	time.Sleep(100 * time.Millisecond)
	if _, ok := toasts.Get(toast.ID); !ok {
		t.Fatal("cancelled timer still removed the toast")
	}
}

func TestCancelUnknownIDIsSafe(t *testing.T) {
	toasts := store.NewNotificationStore()
	s := NewScheduler(toasts, nil, time.Second, time.Second)
	defer s.Stop()

	s.Cancel("toast_never_scheduled")
}

type recordingBroadcaster struct {
	events chan string
}

func (r *recordingBroadcaster) BroadcastEvent(event string, payload interface{}) {
	r.events <- event
}

func TestExpiryBroadcastsRemoval(t *testing.T) {
	toasts := store.NewNotificationStore()
	hub := &recordingBroadcaster{events: make(chan string, 4)}
	s := NewScheduler(toasts, hub, 20*time.Millisecond, 40*time.Millisecond)
	defer s.Stop()

	toast := toasts.Add("Post approved", models.ToastSuccess, false, "")
	s.Schedule(toast)

	select {
	case event := <-hub.events:
		if event != models.EventToastRemoved {
			t.Fatalf("event = %s, want %s", event, models.EventToastRemoved)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for removal broadcast")
	}
}
