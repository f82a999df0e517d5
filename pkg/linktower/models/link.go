package models

import (
	"time"

	"gorm.io/gorm"
)

// Link is a single labeled URL belonging to a room. DomainName is the
// host part of URL, denormalized at insert time so discovery can
// filter by domain without parsing URLs in SQL.
type Link struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	RoomID      uint           `gorm:"not null;index" json:"room_id"`
	URL         string         `gorm:"not null" json:"url"`
	DomainName  string         `gorm:"index" json:"domain_name"`
	Description string         `json:"description"`
	Label       string         `json:"label"`

	// Relationships
	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
