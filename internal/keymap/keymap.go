// Package keymap translates physical keyboard events from the dashboard
// into the same intents the HTTP endpoints expose. Resolution is a pure
// function of the key and the current view context; dispatching the
// resolved intent is the caller's job.
package keymap

import "strings"

// Intent is a resolved keyboard action
type Intent string

const (
	IntentNone             Intent = ""
	IntentApproveSelection Intent = "approve_selection"
	IntentApproveCurrent   Intent = "approve_current"
	IntentRejectSelection  Intent = "reject_selection"
	IntentRejectCurrent    Intent = "reject_current"
	IntentOpenSelected     Intent = "open_selected"
	IntentCloseModal       Intent = "close_modal"
	IntentClearSelection   Intent = "clear_selection"
	IntentNavigatePrev     Intent = "navigate_prev"
	IntentNavigateNext     Intent = "navigate_next"
)

// Context is the view state a key event is resolved against
type Context struct {
	InTextInput   bool
	ModalOpen     bool
	SelectedCount int
	CurrentPost   string
}

// Resolve maps a key event to an intent. All shortcuts are suppressed
// while focus is in a text input. Matching is case-insensitive.
//
//	A      approve selection, or the open post when nothing is selected
//	R      reject selection, or the open post when nothing is selected
//	Space  open the modal iff exactly one post is selected and it is closed
//	Esc    close the modal if open, else clear a non-empty selection
//	Arrows navigate the modal, only while it is open
func Resolve(key string, ctx Context) Intent {
	if ctx.InTextInput {
		return IntentNone
	}

	switch strings.ToLower(key) {
	case "a":
		if ctx.SelectedCount > 0 {
			return IntentApproveSelection
		}
		if ctx.ModalOpen && ctx.CurrentPost != "" {
			return IntentApproveCurrent
		}
	case "r":
		if ctx.SelectedCount > 0 {
			return IntentRejectSelection
		}
		if ctx.ModalOpen && ctx.CurrentPost != "" {
			return IntentRejectCurrent
		}
	case " ", "space":
		if ctx.SelectedCount == 1 && !ctx.ModalOpen {
			return IntentOpenSelected
		}
	case "escape", "esc":
		if ctx.ModalOpen {
			return IntentCloseModal
		}
		if ctx.SelectedCount > 0 {
			return IntentClearSelection
		}
	case "arrowleft":
		if ctx.ModalOpen {
			return IntentNavigatePrev
		}
	case "arrowright":
		if ctx.ModalOpen {
			return IntentNavigateNext
		}
	}
	return IntentNone
}
