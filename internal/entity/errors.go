package entity

import "errors"

// Expected failure modes. Handlers translate these into a flash message and
// a redirect; anything else is a server error.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingFile      = errors.New("no file selected for uploading")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrNotPostAuthor    = errors.New("not your post")
)
