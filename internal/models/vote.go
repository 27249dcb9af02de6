package models

import "time"

// Vote is the junction row connecting a user to a post they upvoted.
// The combination of UserID and PostID must be unique: a user counts
// at most once per post, regardless of how many times they submit.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
