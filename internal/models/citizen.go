package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrNameRequired = errors.New("first name is required")

// Citizen is the identity behind comments, replies, votes and flags. Only the
// summary fields live here; accounts, credentials and sessions belong to the
// identity service, not to this module.
type Citizen struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Avatar    string    `gorm:"default:🌱" json:"avatar"` // emoji 头像
	CreatedAt time.Time `json:"created_at"`

	// 虚拟字段，AfterFind 填充
	FullName string `gorm:"-" json:"full_name"`
}

// AfterFind computes the display name so every read hands back the resolved
// summary (id, first name, last name, full name, avatar).
func (c *Citizen) AfterFind(tx *gorm.DB) error {
	c.FullName = strings.TrimSpace(c.FirstName + " " + c.LastName)
	return nil
}

func (c *Citizen) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrNameRequired
	}
	return nil
}
