package models

import (
	"time"

	"gorm.io/gorm"
)

// Room represents a password-protected page holding a titled, labeled
// collection of links. Rooms are grouped by FloorName; all rooms on a
// floor share the floor's password (the hash of the floor's first room).
type Room struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"not null" json:"title"`
	FloorName    string         `gorm:"not null;index" json:"floor_name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	PasswordHash string         `json:"-"`

	// Relationships
	Links []Link `gorm:"foreignKey:RoomID" json:"links,omitempty"`
}
