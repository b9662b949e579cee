package models

import (
	"errors"
	"html/template"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Validation errors raised by the model hooks (the store-side schema layer).
// The repository forwards them unchanged; handlers map them to 400.
var (
	ErrTextRequired      = errors.New("text is required")
	ErrContextRequired   = errors.New("context is required")
	ErrReferenceRequired = errors.New("reference is required")
	ErrAuthorRequired    = errors.New("author is required")
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Cid       string    `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    Citizen   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Context   string    `gorm:"size:50;not null;index:idx_comment_subject" json:"context"`    // 议题类型, e.g. "proposal"
	Reference string    `gorm:"size:100;not null;index:idx_comment_subject" json:"reference"` // 议题标识, e.g. "p42"
	CreatedAt time.Time `json:"created_at"`
	Replies   []Reply   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"replies"`
	Votes     []Vote    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Flags     []Flag    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"flags"`

	// 非数据库字段，查询时由 repository/handler 填充
	Upvotes    int           `gorm:"-" json:"upvotes"`
	Downvotes  int           `gorm:"-" json:"downvotes"`
	ReplyCount int           `gorm:"-" json:"reply_count"`
	TextHTML   template.HTML `gorm:"-" json:"text_html,omitempty"`
}

// BeforeSave enforces the required fields at the store layer, the same place a
// document schema would. Empty strings count as missing.
func (c *Comment) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.Text) == "" {
		return ErrTextRequired
	}
	if strings.TrimSpace(c.Context) == "" {
		return ErrContextRequired
	}
	if strings.TrimSpace(c.Reference) == "" {
		return ErrReferenceRequired
	}
	if c.AuthorID == 0 {
		return ErrAuthorRequired
	}
	return nil
}

// Flagged reports whether any citizen currently flags this comment.
// Meaningful only after Flags has been loaded.
func (c *Comment) Flagged() bool {
	return len(c.Flags) > 0
}
