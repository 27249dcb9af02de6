package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Comments are immutable after
// creation; removal is a soft delete.
type Comment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CommentText string         `gorm:"not null" json:"comment_text"`
	UserID      uint           `gorm:"not null" json:"user_id"`
	PostID      uint           `gorm:"not null;index" json:"post_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
