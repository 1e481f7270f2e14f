package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modqueue/backend/internal/events"
	"github.com/modqueue/backend/internal/keymap"
	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/notifier"
	"github.com/modqueue/backend/internal/store"
	"github.com/modqueue/backend/internal/websocket"
)

// ModerationHandler exposes the moderation intents and read models over
// HTTP. Stale intents (unknown ids, out-of-range navigation) follow the
// store's silent no-op policy and still answer 200 with fresh state;
// only malformed requests are client errors.
type ModerationHandler struct {
	moderation    *store.ModerationStore
	notifications *store.NotificationStore
	scheduler     *notifier.Scheduler
	hub           *websocket.Hub
	publisher     *events.Publisher
}

func NewModerationHandler(
	moderation *store.ModerationStore,
	notifications *store.NotificationStore,
	scheduler *notifier.Scheduler,
	hub *websocket.Hub,
	publisher *events.Publisher,
) *ModerationHandler {
	return &ModerationHandler{
		moderation:    moderation,
		notifications: notifications,
		scheduler:     scheduler,
		hub:           hub,
		publisher:     publisher,
	}
}

// GetPosts returns the filtered, paginated projection
func (h *ModerationHandler) GetPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.moderation.Page())
}

// GetPost returns one post with full detail
func (h *ModerationHandler) GetPost(c *gin.Context) {
	post, ok := h.moderation.Post(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Post not found")
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetState returns the full moderation state snapshot
func (h *ModerationHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// SetFilter switches the active status view
func (h *ModerationHandler) SetFilter(c *gin.Context) {
	var req models.SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Filter.Valid() {
		ErrorResponse(c, http.StatusBadRequest, "Unknown filter")
		return
	}

	h.moderation.SetFilter(req.Filter)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Page())
}

// ChangePage moves pagination; the projection clamps out-of-range pages
func (h *ModerationHandler) ChangePage(c *gin.Context) {
	var req models.ChangePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.moderation.ChangePage(req.Page)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Page())
}

// ToggleSelection flips one post in and out of the selection
func (h *ModerationHandler) ToggleSelection(c *gin.Context) {
	var req models.ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.moderation.ToggleSelection(req.PostID)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// SelectAll replaces the selection. With no explicit ids it selects every
// pending post in the current filtered view.
func (h *ModerationHandler) SelectAll(c *gin.Context) {
	var req models.SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ids := req.PostIDs
	if len(ids) == 0 {
		ids = h.moderation.PendingIDs()
	}
	h.moderation.SelectAll(ids)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// ClearSelection empties the selection
func (h *ModerationHandler) ClearSelection(c *gin.Context) {
	h.moderation.ClearSelection()
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// Approve approves a single pending post
func (h *ModerationHandler) Approve(c *gin.Context) {
	h.decide(c, c.Param("id"), models.StatusApproved)
}

// Reject rejects a single pending post
func (h *ModerationHandler) Reject(c *gin.Context) {
	h.decide(c, c.Param("id"), models.StatusRejected)
}

func (h *ModerationHandler) decide(c *gin.Context, postID string, status models.Status) {
	var changed bool
	var message, kind string
	if status == models.StatusApproved {
		changed = h.moderation.Approve(postID)
		message, kind = "Post approved", "approve"
	} else {
		changed = h.moderation.Reject(postID)
		message, kind = "Post rejected", "reject"
	}

	if changed {
		h.pushToast(message, models.ToastSuccess, false, "")
		h.publishDecision(kind, postID)
	}
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// BatchApprove approves the given posts in one undoable step
func (h *ModerationHandler) BatchApprove(c *gin.Context) {
	h.batch(c, models.ActionBatchApprove)
}

// BatchReject rejects the given posts in one undoable step
func (h *ModerationHandler) BatchReject(c *gin.Context) {
	h.batch(c, models.ActionBatchReject)
}

func (h *ModerationHandler) batch(c *gin.Context, action string) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.PostIDs) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "post_ids must not be empty")
		return
	}

	var result models.BatchResult
	var verb string
	if action == models.ActionBatchApprove {
		result = h.moderation.BatchApprove(req.PostIDs)
		verb = "Approved"
	} else {
		result = h.moderation.BatchReject(req.PostIDs)
		verb = "Rejected"
	}

	h.pushToast(batchMessage(verb, result.Flipped), models.ToastSuccess, true, result.UndoID)
	if h.publisher != nil {
		if err := h.publisher.PublishBatch(action, result.UndoID, result.Flipped); err != nil {
			logPublishError(action, err)
		}
	}
	h.broadcastState()
	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"state":  h.moderation.Snapshot(),
	})
}

// OpenModal opens the detail view for a post
func (h *ModerationHandler) OpenModal(c *gin.Context) {
	var req models.OpenModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.moderation.OpenModal(req.PostID)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// CloseModal closes the detail view
func (h *ModerationHandler) CloseModal(c *gin.Context) {
	h.moderation.CloseModal()
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// NavigateModal moves the detail view within the filtered list
func (h *ModerationHandler) NavigateModal(c *gin.Context) {
	var req models.NavigateModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Direction != store.DirectionNext && req.Direction != store.DirectionPrev {
		ErrorResponse(c, http.StatusBadRequest, "Direction must be next or prev")
		return
	}

	h.moderation.NavigateModal(req.Direction)
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// Undo reverts a recorded batch action exactly once and retires any toast
// that carried its undo affordance
func (h *ModerationHandler) Undo(c *gin.Context) {
	undoID := c.Param("id")
	if !h.moderation.Undo(undoID) {
		// already undone or evicted; nothing happened
		c.JSON(http.StatusOK, h.moderation.Snapshot())
		return
	}

	for _, toast := range h.notifications.Snapshot() {
		if toast.UndoID == undoID {
			h.scheduler.Cancel(toast.ID)
			h.notifications.Remove(toast.ID)
			h.broadcastToastRemoved(toast.ID)
		}
	}

	h.pushToast("Action undone", models.ToastInfo, false, "")
	if h.publisher != nil {
		if err := h.publisher.PublishBatch("undo", undoID, 0); err != nil {
			logPublishError("undo", err)
		}
	}
	h.broadcastState()
	c.JSON(http.StatusOK, h.moderation.Snapshot())
}

// KeyEvent resolves a forwarded keyboard event against the current state
// and dispatches the resulting intent
func (h *ModerationHandler) KeyEvent(c *gin.Context) {
	var req models.KeyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.moderation.Snapshot()
	intent := keymap.Resolve(req.Key, keymap.Context{
		InTextInput:   req.InTextInput,
		ModalOpen:     snap.ModalOpen,
		SelectedCount: len(snap.Selected),
		CurrentPost:   snap.CurrentPost,
	})

	h.dispatch(intent, snap)
	h.broadcastState()
	c.JSON(http.StatusOK, gin.H{
		"intent": intent,
		"state":  h.moderation.Snapshot(),
	})
}

func (h *ModerationHandler) dispatch(intent keymap.Intent, snap models.StateSnapshot) {
	switch intent {
	case keymap.IntentApproveSelection, keymap.IntentRejectSelection:
		ids := h.moderation.SelectedPending()
		if len(ids) == 0 {
			return
		}
		var result models.BatchResult
		var verb, action string
		if intent == keymap.IntentApproveSelection {
			result = h.moderation.BatchApprove(ids)
			verb, action = "Approved", models.ActionBatchApprove
		} else {
			result = h.moderation.BatchReject(ids)
			verb, action = "Rejected", models.ActionBatchReject
		}
		h.pushToast(batchMessage(verb, result.Flipped), models.ToastSuccess, true, result.UndoID)
		if h.publisher != nil {
			if err := h.publisher.PublishBatch(action, result.UndoID, result.Flipped); err != nil {
				logPublishError(action, err)
			}
		}

	case keymap.IntentApproveCurrent:
		if h.moderation.Approve(snap.CurrentPost) {
			h.pushToast("Post approved", models.ToastSuccess, false, "")
			h.publishDecision("approve", snap.CurrentPost)
		}

	case keymap.IntentRejectCurrent:
		if h.moderation.Reject(snap.CurrentPost) {
			h.pushToast("Post rejected", models.ToastSuccess, false, "")
			h.publishDecision("reject", snap.CurrentPost)
		}

	case keymap.IntentOpenSelected:
		h.moderation.OpenModal(snap.Selected[0])

	case keymap.IntentCloseModal:
		h.moderation.CloseModal()

	case keymap.IntentClearSelection:
		h.moderation.ClearSelection()

	case keymap.IntentNavigatePrev:
		h.moderation.NavigateModal(store.DirectionPrev)

	case keymap.IntentNavigateNext:
		h.moderation.NavigateModal(store.DirectionNext)
	}
}

func (h *ModerationHandler) pushToast(message, toastType string, canUndo bool, undoID string) {
	toast := h.notifications.Add(message, toastType, canUndo, undoID)
	h.scheduler.Schedule(toast)
	if h.hub != nil {
		h.hub.BroadcastEvent(models.EventToastAdded, toast)
	}
}

func (h *ModerationHandler) publishDecision(kind, postID string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishDecision(kind, postID); err != nil {
		logPublishError(kind, err)
	}
}

func (h *ModerationHandler) broadcastState() {
	if h.hub != nil {
		h.hub.BroadcastEvent(models.EventStateChanged, h.moderation.Snapshot())
	}
}

func (h *ModerationHandler) broadcastToastRemoved(id string) {
	if h.hub != nil {
		h.hub.BroadcastEvent(models.EventToastRemoved, map[string]string{"id": id})
	}
}

func batchMessage(verb string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%s 1 post", verb)
	}
	return fmt.Sprintf("%s %d posts", verb, count)
}
