package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a shared link in the Newswire application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	PostURL string `gorm:"not null" json:"post_url"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// VoteCount is not persisted; computed at query time
	VoteCount int `gorm:"->" json:"vote_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
	// Voted indicates whether the current requesting user voted on this post (computed)
	Voted     bool           `gorm:"->" json:"voted"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
