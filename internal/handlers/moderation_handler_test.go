package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/notifier"
	"github.com/modqueue/backend/internal/store"
)

type testEnv struct {
	router        *gin.Engine
	moderation    *store.ModerationStore
	notifications *store.NotificationStore
	scheduler     *notifier.Scheduler
}

func newTestEnv(t *testing.T, posts []models.Post) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	moderation := store.NewModerationStore(posts)
	notifications := store.NewNotificationStore()
	scheduler := notifier.NewScheduler(notifications, nil, time.Minute, time.Minute)
	t.Cleanup(scheduler.Stop)

	modHandler := NewModerationHandler(moderation, notifications, scheduler, nil, nil)
	notifHandler := NewNotificationHandler(notifications, scheduler, nil)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/posts", modHandler.GetPosts)
	api.GET("/posts/:id", modHandler.GetPost)
	api.GET("/state", modHandler.GetState)
	api.GET("/notifications", notifHandler.GetNotifications)
	api.POST("/filter", modHandler.SetFilter)
	api.POST("/page", modHandler.ChangePage)
	api.POST("/selection/toggle", modHandler.ToggleSelection)
	api.POST("/selection/all", modHandler.SelectAll)
	api.DELETE("/selection", modHandler.ClearSelection)
	api.POST("/posts/:id/approve", modHandler.Approve)
	api.POST("/posts/:id/reject", modHandler.Reject)
	api.POST("/batch/approve", modHandler.BatchApprove)
	api.POST("/batch/reject", modHandler.BatchReject)
	api.POST("/modal/open", modHandler.OpenModal)
	api.POST("/modal/close", modHandler.CloseModal)
	api.POST("/modal/navigate", modHandler.NavigateModal)
	api.POST("/undo/:id", modHandler.Undo)
	api.POST("/keyboard", modHandler.KeyEvent)
	api.DELETE("/notifications/:id", notifHandler.RemoveToast)
	api.DELETE("/notifications", notifHandler.ClearAll)
	api.POST("/notifications", notifHandler.AddToast)

	return &testEnv{
		router:        router,
		moderation:    moderation,
		notifications: notifications,
		scheduler:     scheduler,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func handlerPosts() []models.Post {
	return []models.Post{
		{ID: "a", Title: "A", Author: models.Author{ID: "u1", Username: "u1"}, Status: models.StatusPending},
		{ID: "b", Title: "B", Author: models.Author{ID: "u2", Username: "u2"}, Status: models.StatusPending},
		{ID: "c", Title: "C", Author: models.Author{ID: "u3", Username: "u3"}, Status: models.StatusApproved},
	}
}

func TestGetPostsProjection(t *testing.T) {
	env := newTestEnv(t, handlerPosts())

	w := env.do(t, http.MethodGet, "/api/v1/posts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var page models.PostPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Filter != models.StatusPending || page.TotalPosts != 2 || page.TotalPages != 1 {
		t.Fatalf("projection = %+v", page)
	}
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	if w := env.do(t, http.MethodGet, "/api/v1/posts/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestSetFilterEndpoint(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.ToggleSelection("a")

	w := env.do(t, http.MethodPost, "/api/v1/filter", models.SetFilterRequest{Filter: models.StatusApproved})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	snap := env.moderation.Snapshot()
	if snap.Filter != models.StatusApproved || len(snap.Selected) != 0 || snap.CurrentPage != 1 {
		t.Fatalf("state after filter = %+v", snap)
	}
}

func TestSetFilterRejectsUnknown(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	w := env.do(t, http.MethodPost, "/api/v1/filter", map[string]string{"filter": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestApproveEndpointAddsToast(t *testing.T) {
	env := newTestEnv(t, handlerPosts())

	w := env.do(t, http.MethodPost, "/api/v1/posts/a/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	p, _ := env.moderation.Post("a")
	if p.Status != models.StatusApproved {
		t.Fatalf("status = %s, want approved", p.Status)
	}

	toasts := env.notifications.Snapshot()
	if len(toasts) != 1 || toasts[0].Message != "Post approved" || toasts[0].CanUndo {
		t.Fatalf("toasts = %+v", toasts)
	}
}

func TestApproveUnknownPostIsSilentNoOp(t *testing.T) {
	env := newTestEnv(t, handlerPosts())

	// stale intent: the post does not exist; policy is 200 with fresh
	// state and no toast, never an error
	w := env.do(t, http.MethodPost, "/api/v1/posts/ghost/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(env.notifications.Snapshot()) != 0 {
		t.Fatal("no-op approve produced a toast")
	}
}

func TestBatchApproveEndpoint(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.SelectAll([]string{"a", "b"})

	w := env.do(t, http.MethodPost, "/api/v1/batch/approve", models.BatchRequest{PostIDs: []string{"a", "b"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result models.BatchResult   `json:"result"`
		State  models.StateSnapshot `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Flipped != 2 || resp.Result.UndoID == "" {
		t.Fatalf("result = %+v", resp.Result)
	}
	if len(resp.State.Selected) != 0 {
		t.Fatal("selection survived the batch")
	}

	toasts := env.notifications.Snapshot()
	if len(toasts) != 1 || toasts[0].Message != "Approved 2 posts" || !toasts[0].CanUndo {
		t.Fatalf("toasts = %+v", toasts)
	}
	if toasts[0].UndoID != resp.Result.UndoID {
		t.Fatalf("toast undo id %q != entry id %q", toasts[0].UndoID, resp.Result.UndoID)
	}
}

func TestBatchApproveRejectsEmptyBody(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	w := env.do(t, http.MethodPost, "/api/v1/batch/approve", map[string][]string{"post_ids": {}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUndoEndpointRetiresToast(t *testing.T) {
	env := newTestEnv(t, handlerPosts())

	w := env.do(t, http.MethodPost, "/api/v1/batch/reject", models.BatchRequest{PostIDs: []string{"a"}})
	var resp struct {
		Result models.BatchResult `json:"result"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	w = env.do(t, http.MethodPost, "/api/v1/undo/"+resp.Result.UndoID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	p, _ := env.moderation.Post("a")
	if p.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending after undo", p.Status)
	}

	// the batch toast carrying the undo affordance is gone; only the
	// "Action undone" toast remains
	toasts := env.notifications.Snapshot()
	if len(toasts) != 1 || toasts[0].Message != "Action undone" {
		t.Fatalf("toasts = %+v", toasts)
	}

	// second undo is a silent no-op
	w = env.do(t, http.MethodPost, "/api/v1/undo/"+resp.Result.UndoID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(env.notifications.Snapshot()) != 1 {
		t.Fatal("no-op undo produced another toast")
	}
}

func TestSelectAllDefaultsToPendingView(t *testing.T) {
	env := newTestEnv(t, handlerPosts())

	w := env.do(t, http.MethodPost, "/api/v1/selection/all", models.SelectAllRequest{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	snap := env.moderation.Snapshot()
	if len(snap.Selected) != 2 || snap.Selected[0] != "a" || snap.Selected[1] != "b" {
		t.Fatalf("selected = %v, want [a b]", snap.Selected)
	}
}

func TestNavigateEndpointValidatesDirection(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.OpenModal("a")

	w := env.do(t, http.MethodPost, "/api/v1/modal/navigate", models.NavigateModalRequest{Direction: "sideways"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/v1/modal/navigate", models.NavigateModalRequest{Direction: "next"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if snap := env.moderation.Snapshot(); snap.CurrentPost != "b" {
		t.Fatalf("current = %s, want b", snap.CurrentPost)
	}
}

func TestKeyboardEndpointBatchApprove(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.SelectAll([]string{"a", "b"})

	w := env.do(t, http.MethodPost, "/api/v1/keyboard", models.KeyEventRequest{Key: "a"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	for _, id := range []string{"a", "b"} {
		p, _ := env.moderation.Post(id)
		if p.Status != models.StatusApproved {
			t.Fatalf("post %s = %s, want approved", id, p.Status)
		}
	}
	toasts := env.notifications.Snapshot()
	if len(toasts) != 1 || !toasts[0].CanUndo {
		t.Fatalf("toasts = %+v", toasts)
	}
}

func TestKeyboardEndpointEscapeClearsSelection(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.ToggleSelection("a")

	w := env.do(t, http.MethodPost, "/api/v1/keyboard", models.KeyEventRequest{Key: "Escape"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if snap := env.moderation.Snapshot(); len(snap.Selected) != 0 {
		t.Fatalf("selected = %v, want empty", snap.Selected)
	}
}

func TestKeyboardEndpointSuppressedInTextInput(t *testing.T) {
	env := newTestEnv(t, handlerPosts())
	env.moderation.SelectAll([]string{"a"})

	env.do(t, http.MethodPost, "/api/v1/keyboard", models.KeyEventRequest{Key: "a", InTextInput: true})

	p, _ := env.moderation.Post("a")
	if p.Status != models.StatusPending {
		t.Fatal("shortcut fired while typing in an input")
	}
}
