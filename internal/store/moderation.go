package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modqueue/backend/internal/models"
)

// PageSize is the number of posts per page in the list projection
const PageSize = 10

// maxUndoEntries bounds the undo log; the oldest entry is evicted first
const maxUndoEntries = 5

// Navigation directions for NavigateModal
const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

// ModerationStore owns the post collection, selection, filter, pagination,
// modal cursor and undo log. Every intent runs under the write lock and is
// applied atomically; invalid references are silent no-ops so stale intents
// from the dashboard never surface as errors.
type ModerationStore struct {
	mu sync.RWMutex

	posts       []*models.Post
	selected    []string
	filter      models.Status
	currentPage int
	currentPost string
	modalOpen   bool
	undoStack   []models.UndoEntry
	loading     bool
	err         string
}

// NewModerationStore seeds a store with the given posts. Collection order
// is insertion order and is preserved across all operations.
func NewModerationStore(posts []models.Post) *ModerationStore {
	s := &ModerationStore{
		posts:       make([]*models.Post, 0, len(posts)),
		selected:    []string{},
		filter:      models.StatusPending,
		currentPage: 1,
		undoStack:   []models.UndoEntry{},
	}
	for i := range posts {
		p := posts[i]
		s.posts = append(s.posts, &p)
	}
	return s
}

// findPost returns the post with the given id; callers must hold the lock
func (s *ModerationStore) findPost(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SetFilter switches the active status view. Selection and pagination are
// only meaningful within one filtered view, so both reset.
func (s *ModerationStore) SetFilter(filter models.Status) {
	if !filter.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
	s.currentPage = 1
	s.selected = []string{}
}

// ChangePage sets the 1-based page number. No bounds check here: the read
// path clamps, so an out-of-range page self-heals on the next projection.
func (s *ModerationStore) ChangePage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
}

// ToggleSelection adds the id to the selection if absent, else removes it
func (s *ModerationStore) ToggleSelection(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.selected {
		if id == postID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, postID)
}

// SelectAll replaces the selection wholesale, preserving the given order
func (s *ModerationStore) SelectAll(postIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = append([]string{}, postIDs...)
}

// ClearSelection empties the selection
func (s *ModerationStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = []string{}
}

// Approve moves a pending post to approved. Reports whether the status
// changed. Single-post actions are not recorded in the undo log.
func (s *ModerationStore) Approve(postID string) bool {
	return s.decide(postID, models.StatusApproved)
}

// Reject moves a pending post to rejected. Reports whether the status changed.
func (s *ModerationStore) Reject(postID string) bool {
	return s.decide(postID, models.StatusRejected)
}

func (s *ModerationStore) decide(postID string, status models.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPost(postID)
	if p == nil || p.Status != models.StatusPending {
		return false
	}
	p.Status = status
	return true
}

// BatchApprove approves every pending post in postIDs and records one undo
// entry capturing each found post's prior status, pending or not. The
// selection is cleared afterwards.
func (s *ModerationStore) BatchApprove(postIDs []string) models.BatchResult {
	return s.batch(postIDs, models.StatusApproved, models.ActionBatchApprove)
}

// BatchReject rejects every pending post in postIDs, recording an undo entry
func (s *ModerationStore) BatchReject(postIDs []string) models.BatchResult {
	return s.batch(postIDs, models.StatusRejected, models.ActionBatchReject)
}

func (s *ModerationStore) batch(postIDs []string, status models.Status, action string) models.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := []models.PostStatusSnapshot{}
	flipped := 0
	for _, id := range postIDs {
		p := s.findPost(id)
		if p == nil {
			continue
		}
		// capture before mutating, even when the action is a no-op for
		// this post, so undo restores the exact prior status
		previous = append(previous, models.PostStatusSnapshot{
			PostID:         p.ID,
			PreviousStatus: p.Status,
		})
		if p.Status == models.StatusPending {
			p.Status = status
			flipped++
		}
	}

	entry := models.UndoEntry{
		ID:        action + "_" + uuid.New().String(),
		Posts:     previous,
		Action:    action,
		Timestamp: time.Now(),
	}
	s.undoStack = append(s.undoStack, entry)
	if len(s.undoStack) > maxUndoEntries {
		s.undoStack = s.undoStack[1:]
	}

	s.selected = []string{}

	return models.BatchResult{
		UndoID:  entry.ID,
		Touched: len(previous),
		Flipped: flipped,
	}
}

// Undo restores every post named in the entry to its pre-batch status and
// consumes the entry. Reports whether the entry was found. Restoration is
// unconditional, so a post that was already terminal goes back unchanged.
func (s *ModerationStore) Undo(undoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.undoStack {
		if entry.ID != undoID {
			continue
		}
		for _, snap := range entry.Posts {
			if p := s.findPost(snap.PostID); p != nil {
				p.Status = snap.PreviousStatus
			}
		}
		s.undoStack = append(s.undoStack[:i], s.undoStack[i+1:]...)
		return true
	}
	return false
}

// OpenModal opens the detail view on the given post, whatever its status
func (s *ModerationStore) OpenModal(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPost = postID
	s.modalOpen = true
}

// CloseModal clears the detail view cursor
func (s *ModerationStore) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPost = ""
	s.modalOpen = false
}

// NavigateModal moves the modal cursor within the currently filtered list.
// Navigation does not wrap, and when the open post is not part of the
// active filter (index -1) any attempt is a no-op — the modal stays pinned.
func (s *ModerationStore) NavigateModal(direction string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentPost == "" {
		return
	}

	filtered := s.filteredLocked()
	idx := -1
	for i, p := range filtered {
		if p.ID == s.currentPost {
			idx = i
			break
		}
	}

	switch {
	case direction == DirectionNext && idx >= 0 && idx < len(filtered)-1:
		s.currentPost = filtered[idx+1].ID
	case direction == DirectionPrev && idx > 0:
		s.currentPost = filtered[idx-1].ID
	}
}

// SetLoading sets the advisory loading flag; only external collaborators
// (a future data-loading path) call this.
func (s *ModerationStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError sets or clears the advisory error message
func (s *ModerationStore) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *ModerationStore) filteredLocked() []*models.Post {
	filtered := []*models.Post{}
	for _, p := range s.posts {
		if p.Status == s.filter {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Page computes the filtered, paginated list projection. It is recomputed
// on every call, never cached, so it can never go stale against the
// collection. The page is clamped to [1, max(totalPages, 1)].
func (s *ModerationStore) Page() models.PostPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.filteredLocked()
	totalPages := (len(filtered) + PageSize - 1) / PageSize

	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	safePage := s.currentPage
	if safePage > maxPage {
		safePage = maxPage
	}
	if safePage < 1 {
		safePage = 1
	}

	start := (safePage - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	page := make([]models.Post, 0, end-start)
	for _, p := range filtered[start:end] {
		page = append(page, *p)
	}

	return models.PostPage{
		Posts:      page,
		Filter:     s.filter,
		Page:       safePage,
		TotalPages: totalPages,
		TotalPosts: len(filtered),
	}
}

// Snapshot returns a full copy of the moderation state
func (s *ModerationStore) Snapshot() models.StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *p)
	}

	return models.StateSnapshot{
		Posts:       posts,
		Selected:    append([]string{}, s.selected...),
		Filter:      s.filter,
		CurrentPage: s.currentPage,
		CurrentPost: s.currentPost,
		ModalOpen:   s.modalOpen,
		UndoStack:   append([]models.UndoEntry{}, s.undoStack...),
		Loading:     s.loading,
		Error:       s.err,
	}
}

// Post returns a copy of the post with the given id
func (s *ModerationStore) Post(postID string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findPost(postID); p != nil {
		return *p, true
	}
	return models.Post{}, false
}

// PendingIDs returns the ids of pending posts in the active filtered view,
// in collection order. This is the select-all target set.
func (s *ModerationStore) PendingIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, p := range s.filteredLocked() {
		if p.Status == models.StatusPending {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// SelectedPending returns the selected ids whose posts are still pending,
// in selection order. This is the batch-eligible set.
func (s *ModerationStore) SelectedPending() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, id := range s.selected {
		if p := s.findPost(id); p != nil && p.Status == models.StatusPending {
			ids = append(ids, id)
		}
	}
	return ids
}
