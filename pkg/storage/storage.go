package storage

import "io"

// Storage persists uploaded media under relative keys such as
// "images/a.png". The key is what gets recorded on the post.
type Storage interface {
	Save(key string, r io.Reader, contentType string) error
	Remove(key string) error
}
