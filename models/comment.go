package models

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// Comment is a user's moderated note on a published event.
type Comment struct {
	ID        uint          `gorm:"primaryKey"`
	Text      string        `gorm:"size:1000;not null"`
	EventID   uint          `gorm:"index;not null"`
	AuthorID  uint          `gorm:"index;not null"`
	Status    CommentStatus `gorm:"size:20;not null"`
	CreatedOn time.Time     `gorm:"not null"`
	UpdatedOn *time.Time
}
