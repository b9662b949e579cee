package models

import (
	"time"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_vote_comment_citizen" json:"comment_id"`
	CitizenID uint      `gorm:"not null;index;uniqueIndex:idx_vote_comment_citizen" json:"citizen_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

// The unique index on (comment_id, citizen_id) is the store-side guarantee that
// a citizen holds at most one active vote per comment. Changing sides rewrites
// the existing row inside the vote transaction instead of adding a second one.
