package models

import (
	"html/template"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Reply is a sub-record owned by its parent Comment: it is created through the
// reply operation only and goes away with the parent (OnDelete:CASCADE). It has
// no lifecycle of its own.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rid       string    `gorm:"uniqueIndex;size:8;not null" json:"rid"`
	CommentID uint      `gorm:"not null;index" json:"comment_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    Citizen   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"created_at"`

	// 非数据库字段
	TextHTML template.HTML `gorm:"-" json:"text_html,omitempty"`
}

func (r *Reply) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrTextRequired
	}
	if r.AuthorID == 0 {
		return ErrAuthorRequired
	}
	return nil
}
