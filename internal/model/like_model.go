package model

import "time"

// The composite unique index closes the duplicate-like window a concurrent
// double-click would otherwise open.
type PostLikeModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}
