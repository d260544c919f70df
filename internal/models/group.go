// Package models contains data structures for the application's domain models.
package models

// Group is a named category posts may optionally belong to. Slugs are
// human-readable identifiers but are deliberately not unique; lookups take
// the first match ordered by ID. Deleting a group detaches its posts
// instead of deleting them.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Slug        string `gorm:"index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Posts       []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
