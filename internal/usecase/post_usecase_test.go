package usecase

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"minigram/internal/entity"
	"minigram/internal/repo/persistent"
	"minigram/pkg/logger"
	"minigram/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock implementation of persistent.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	if args.Error(0) == nil {
		post.ID = 1
	}
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListAll() ([]*entity.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(authorID uint) ([]*entity.Post, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

// memStorage keeps saved media in a map so tests can inspect it.
type memStorage struct {
	files   map[string][]byte
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(key string, r io.Reader, contentType string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.files[key] = data
	return nil
}

func (s *memStorage) Remove(key string) error {
	delete(s.files, key)
	return nil
}

var _ storage.Storage = (*memStorage)(nil)

// makeFileHeader builds a real multipart.FileHeader the way gin would hand
// it to a handler.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("post-img", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	require.NotEmpty(t, form.File["post-img"])
	return form.File["post-img"][0]
}

func newPostUseCaseForTest(postRepo persistent.PostRepository, userRepo persistent.UserRepository, store storage.Storage) PostUseCase {
	return NewPostUseCase(postRepo, userRepo, store, logger.New())
}

func TestCreatePost_ImageGoesUnderImages(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	mockPostRepo.On("Create", mock.AnythingOfType("*entity.Post")).Return(nil)

	file := makeFileHeader(t, "a.png", "png-bytes")
	post, err := uc.CreatePost(1, "hello", file)

	assert.NoError(t, err)
	assert.Equal(t, "images/a.png", post.MediaPath)
	assert.Equal(t, []byte("png-bytes"), store.files["images/a.png"])
	mockPostRepo.AssertExpectations(t)
}

func TestCreatePost_VideoGoesUnderVideos(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	mockPostRepo.On("Create", mock.AnythingOfType("*entity.Post")).Return(nil)

	file := makeFileHeader(t, "clip.mp4", "mp4-bytes")
	post, err := uc.CreatePost(1, "watch this", file)

	assert.NoError(t, err)
	assert.Equal(t, "videos/clip.mp4", post.MediaPath)
	mockPostRepo.AssertExpectations(t)
}

func TestCreatePost_UnsupportedExtension(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	file := makeFileHeader(t, "malware.exe", "nope")
	_, err := uc.CreatePost(1, "hello", file)

	assert.ErrorIs(t, err, entity.ErrUnsupportedMedia)
	assert.Empty(t, store.files)
	mockPostRepo.AssertNotCalled(t, "Create")
}

func TestCreatePost_NilFile(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), newMemStorage())

	_, err := uc.CreatePost(1, "hello", nil)

	assert.ErrorIs(t, err, entity.ErrMissingFile)
	mockPostRepo.AssertNotCalled(t, "Create")
}

func TestCreatePost_FilenameSanitized(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	mockPostRepo.On("Create", mock.AnythingOfType("*entity.Post")).Return(nil)

	file := makeFileHeader(t, "my holiday photo!.png", "png-bytes")
	post, err := uc.CreatePost(1, "hello", file)

	assert.NoError(t, err)
	assert.Equal(t, "images/my_holiday_photo.png", post.MediaPath)
	mockPostRepo.AssertExpectations(t)
}

func TestCreatePost_StoreFailureNoRow(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	store.saveErr = errors.New("disk full")
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	file := makeFileHeader(t, "a.png", "png-bytes")
	_, err := uc.CreatePost(1, "hello", file)

	assert.Error(t, err)
	mockPostRepo.AssertNotCalled(t, "Create")
}

func TestCreatePost_RepoFailureCleansUpMedia(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	mockPostRepo.On("Create", mock.AnythingOfType("*entity.Post")).Return(errors.New("insert failed"))

	file := makeFileHeader(t, "a.png", "png-bytes")
	_, err := uc.CreatePost(1, "hello", file)

	assert.Error(t, err)
	assert.Empty(t, store.files)
	mockPostRepo.AssertExpectations(t)
}

func TestDeletePost_Author(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	store := newMemStorage()
	store.files["images/a.png"] = []byte("png-bytes")
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), store)

	mockPostRepo.On("GetByID", uint(1)).Return(&entity.Post{ID: 1, AuthorID: 7, MediaPath: "images/a.png"}, nil)
	mockPostRepo.On("Delete", uint(1)).Return(nil)

	err := uc.DeletePost(1, 7)

	assert.NoError(t, err)
	assert.Empty(t, store.files)
	mockPostRepo.AssertExpectations(t)
}

func TestDeletePost_NotAuthor(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), newMemStorage())

	mockPostRepo.On("GetByID", uint(1)).Return(&entity.Post{ID: 1, AuthorID: 7, MediaPath: "images/a.png"}, nil)

	err := uc.DeletePost(1, 8)

	assert.ErrorIs(t, err, entity.ErrNotPostAuthor)
	mockPostRepo.AssertNotCalled(t, "Delete")
}

func TestDeletePost_PostNotFound(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	uc := newPostUseCaseForTest(mockPostRepo, new(MockUserRepository), newMemStorage())

	mockPostRepo.On("GetByID", uint(99)).Return(nil, entity.ErrPostNotFound)

	err := uc.DeletePost(99, 7)

	assert.ErrorIs(t, err, entity.ErrPostNotFound)
	mockPostRepo.AssertExpectations(t)
}

func TestProfile_Success(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	uc := newPostUseCaseForTest(mockPostRepo, mockUserRepo, newMemStorage())

	mockUserRepo.On("GetByUsername", "alice").Return(&entity.User{ID: 7, Username: "alice", Password: "hashed"}, nil)
	mockPostRepo.On("ListByAuthor", uint(7)).Return([]*entity.Post{
		{ID: 1, Body: "hello", AuthorID: 7},
	}, nil)

	user, posts, err := uc.Profile("alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
	assert.Len(t, posts, 1)
	mockUserRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
}

func TestProfile_UnknownUsername(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	uc := newPostUseCaseForTest(mockPostRepo, mockUserRepo, newMemStorage())

	mockUserRepo.On("GetByUsername", "nobody").Return(nil, entity.ErrUserNotFound)

	_, _, err := uc.Profile("nobody")

	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	mockPostRepo.AssertNotCalled(t, "ListByAuthor")
}
