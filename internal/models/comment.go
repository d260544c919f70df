// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxCommentLength bounds the comment text column and the service-level
// validation that guards it.
const MaxCommentLength = 400

// Comment represents a short reply attached to a post. Comments are
// removed together with their post or their author. CreatedAt is assigned
// once at insert time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:400;not null" json:"text"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}
