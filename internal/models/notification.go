package models

// Notification types
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// AddToastRequest enqueues a toast on behalf of the view layer
type AddToastRequest struct {
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"required"`
	CanUndo bool   `json:"can_undo"`
	UndoID  string `json:"undo_id"`
}

// Notification is a transient user-facing message. When CanUndo is set,
// UndoID references an entry in the moderation undo log.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"` // success, error, info
	CanUndo bool   `json:"can_undo,omitempty"`
	UndoID  string `json:"undo_id,omitempty"`
}
