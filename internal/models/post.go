package models

import (
	"fmt"
	"time"
)

// Status is the moderation lifecycle state of a post
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Post is a piece of user content flagged for moderator review
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Author         Author    `json:"author"`
	ReportedReason string    `json:"reported_reason"`
	ReportedAt     time.Time `json:"reported_at"`
	Status         Status    `json:"status"` // pending, approved, rejected
	ReportCount    int       `json:"report_count"`
	Images         []string  `json:"images,omitempty"`
}

// Validate checks basic post fields
func (p *Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("post id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid status %q", p.Status)
	}
	if p.ReportCount < 0 {
		return fmt.Errorf("report count must be non-negative")
	}
	if p.Author.Username == "" {
		return fmt.Errorf("author username is required")
	}
	return nil
}
