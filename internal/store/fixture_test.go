package store

import (
	"testing"

	"github.com/modqueue/backend/internal/models"
)

func TestFixturePosts(t *testing.T) {
	posts := FixturePosts()
	if len(posts) != 33 {
		t.Fatalf("fixture size = %d, want 33", len(posts))
	}

	seen := map[string]bool{}
	pending := 0
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			t.Fatalf("fixture post %s invalid: %v", p.ID, err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate fixture id %s", p.ID)
		}
		seen[p.ID] = true
		if p.Status == models.StatusPending {
			pending++
		}
	}

	// enough pending posts that the default view spans several pages
	if pending <= 2*PageSize {
		t.Fatalf("pending fixture posts = %d, want more than %d", pending, 2*PageSize)
	}
}
