package entity

import "time"

type Post struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	AuthorID  uint      `json:"author_id"`
	MediaPath string    `json:"media_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
