package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modqueue/backend/internal/models"
	"github.com/modqueue/backend/internal/notifier"
	"github.com/modqueue/backend/internal/store"
	"github.com/modqueue/backend/internal/websocket"
)

// NotificationHandler exposes the toast queue. Adding a toast arms its
// expiry timer; removing one cancels the timer so a stale expiry never
// fires against a dismissed toast.
type NotificationHandler struct {
	notifications *store.NotificationStore
	scheduler     *notifier.Scheduler
	hub           *websocket.Hub
}

func NewNotificationHandler(notifications *store.NotificationStore, scheduler *notifier.Scheduler, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		scheduler:     scheduler,
		hub:           hub,
	}
}

// GetNotifications returns the toast queue in append order
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.Snapshot())
}

// AddToast enqueues a toast on behalf of the view layer and returns it
// so the caller knows the generated id
func (h *NotificationHandler) AddToast(c *gin.Context) {
	var req models.AddToastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Type {
	case models.ToastSuccess, models.ToastError, models.ToastInfo:
	default:
		ErrorResponse(c, http.StatusBadRequest, "Unknown toast type")
		return
	}
	if req.CanUndo && req.UndoID == "" {
		ErrorResponse(c, http.StatusBadRequest, "undo_id is required for undoable toasts")
		return
	}

	toast := h.notifications.Add(req.Message, req.Type, req.CanUndo, req.UndoID)
	h.scheduler.Schedule(toast)
	if h.hub != nil {
		h.hub.BroadcastEvent(models.EventToastAdded, toast)
	}
	c.JSON(http.StatusCreated, toast)
}

// RemoveToast dismisses a toast. Idempotent.
func (h *NotificationHandler) RemoveToast(c *gin.Context) {
	id := c.Param("id")
	h.scheduler.Cancel(id)
	h.notifications.Remove(id)
	if h.hub != nil {
		h.hub.BroadcastEvent(models.EventToastRemoved, map[string]string{"id": id})
	}
	c.JSON(http.StatusOK, gin.H{"removed": id})
}

// ClearAll dismisses every toast and cancels their timers
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	toasts := h.notifications.Snapshot()
	for _, toast := range toasts {
		h.scheduler.Cancel(toast.ID)
	}
	h.notifications.ClearAll()
	if h.hub != nil {
		for _, toast := range toasts {
			h.hub.BroadcastEvent(models.EventToastRemoved, map[string]string{"id": toast.ID})
		}
	}
	c.JSON(http.StatusOK, gin.H{"cleared": len(toasts)})
}
