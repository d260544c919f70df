// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a user-authored entry in the Kapipost application.
// The author is required and deleting the author removes the post; the
// group is optional and deleting the group only clears the reference.
// CreatedAt is assigned once at insert time and never written again.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"pub_date"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image     string    `json:"image,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
}
