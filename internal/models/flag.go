package models

import (
	"time"
)

// FlagReasonSpam is the only report category this surface records.
const FlagReasonSpam = "spam"

type Flag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_flag_comment_citizen" json:"comment_id"`
	CitizenID uint      `gorm:"not null;index;uniqueIndex:idx_flag_comment_citizen" json:"citizen_id"` // Reporter
	Reason    string    `gorm:"size:100;not null;default:'spam'" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
