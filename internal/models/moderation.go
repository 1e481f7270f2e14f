package models

import "time"

// Batch action kinds recorded in the undo log
const (
	ActionBatchApprove = "batch_approve"
	ActionBatchReject  = "batch_reject"
)

// PostStatusSnapshot captures one post's status before a batch action
type PostStatusSnapshot struct {
	PostID         string `json:"post_id"`
	PreviousStatus Status `json:"previous_status"`
}

// UndoEntry records a batch action so it can be reverted exactly once.
// Posts holds the pre-batch status of every post the batch looked at,
// whether or not the action changed it.
type UndoEntry struct {
	ID        string               `json:"id"`
	Posts     []PostStatusSnapshot `json:"posts"`
	Action    string               `json:"action"` // batch_approve, batch_reject
	Timestamp time.Time            `json:"timestamp"`
}

// StateSnapshot is the full moderation read model handed to clients
type StateSnapshot struct {
	Posts       []Post      `json:"posts"`
	Selected    []string    `json:"selected_posts"`
	Filter      Status      `json:"filter"`
	CurrentPage int         `json:"current_page"`
	CurrentPost string      `json:"current_post,omitempty"`
	ModalOpen   bool        `json:"is_modal_open"`
	UndoStack   []UndoEntry `json:"undo_stack"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error,omitempty"`
}

// PostPage is the filtered, paginated list projection
type PostPage struct {
	Posts      []Post `json:"posts"`
	Filter     Status `json:"filter"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	TotalPosts int    `json:"total_posts"`
}

// Request payloads for the intent endpoints

type SetFilterRequest struct {
	Filter Status `json:"filter" binding:"required"`
}

type ChangePageRequest struct {
	Page int `json:"page" binding:"required"`
}

type ToggleSelectionRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

type SelectAllRequest struct {
	PostIDs []string `json:"post_ids"`
}

type BatchRequest struct {
	PostIDs []string `json:"post_ids" binding:"required"`
}

type OpenModalRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

type NavigateModalRequest struct {
	Direction string `json:"direction" binding:"required"` // next, prev
}

// KeyEventRequest is a raw keyboard event forwarded by the dashboard
type KeyEventRequest struct {
	Key         string `json:"key" binding:"required"`
	InTextInput bool   `json:"in_text_input"`
}

// BatchResult reports what a batch intent did so the caller can
// build the companion toast.
type BatchResult struct {
	UndoID  string `json:"undo_id"`
	Touched int    `json:"touched"`
	Flipped int    `json:"flipped"`
}
