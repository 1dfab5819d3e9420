package model

import "time"

type PostModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	MediaPath string    `gorm:"not null" json:"media_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author UserModel `gorm:"foreignKey:AuthorID" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}
