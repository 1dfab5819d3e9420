package usecase

import (
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"minigram/internal/entity"
	"minigram/internal/repo/persistent"
	"minigram/pkg/logger"
	"minigram/pkg/storage"
)

type PostUseCase interface {
	CreatePost(authorID uint, body string, file *multipart.FileHeader) (*entity.Post, error)
	DeletePost(postID, userID uint) error
	Feed() ([]*entity.Post, error)
	Profile(username string) (*entity.User, []*entity.Post, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	userRepo persistent.UserRepository
	store    storage.Storage
	logger   *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	store storage.Storage,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		store:    store,
		logger:   logger,
	}
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
}

// mediaDir routes an upload by extension: known image types go under
// images/, known video types under videos/, anything else is rejected.
func mediaDir(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return "images", nil
	case videoExtensions[ext]:
		return "videos", nil
	default:
		return "", entity.ErrUnsupportedMedia
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func secureFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(name, "")
}

func (uc *postUseCase) CreatePost(authorID uint, body string, file *multipart.FileHeader) (*entity.Post, error) {
	if file == nil || file.Filename == "" {
		return nil, entity.ErrMissingFile
	}

	filename := secureFilename(file.Filename)
	if filename == "" || strings.HasPrefix(filename, ".") {
		return nil, entity.ErrMissingFile
	}

	dir, err := mediaDir(filename)
	if err != nil {
		return nil, err
	}
	mediaPath := path.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := uc.store.Save(mediaPath, src, contentType); err != nil {
		uc.logger.Error("Failed to store upload: %v", err)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	post := &entity.Post{
		Body:      body,
		AuthorID:  authorID,
		MediaPath: mediaPath,
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		if rmErr := uc.store.Remove(mediaPath); rmErr != nil {
			uc.logger.Warn("Failed to clean up upload %s: %v", mediaPath, rmErr)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(postID, userID uint) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return entity.ErrNotPostAuthor
	}

	if err := uc.postRepo.Delete(postID); err != nil {
		uc.logger.Error("Failed to delete post %d: %v", postID, err)
		return err
	}

	// The row is gone; a leftover file is only worth a warning.
	if err := uc.store.Remove(post.MediaPath); err != nil {
		uc.logger.Warn("Failed to remove media %s: %v", post.MediaPath, err)
	}

	return nil
}

func (uc *postUseCase) Feed() ([]*entity.Post, error) {
	return uc.postRepo.ListAll()
}

func (uc *postUseCase) Profile(username string) (*entity.User, []*entity.Post, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	user.Password = ""

	posts, err := uc.postRepo.ListByAuthor(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, posts, nil
}
