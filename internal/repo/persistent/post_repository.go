package persistent

import (
	"errors"

	"minigram/internal/entity"
	"minigram/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id uint) (*entity.Post, error)
	ListAll() ([]*entity.Post, error)
	ListByAuthor(authorID uint) ([]*entity.Post, error)
	Delete(id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id uint) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.First(&postModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPostNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// ListAll returns every post in insertion order, which the id sequence
// makes deterministic.
func (r *postRepository) ListAll() ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.Order("id").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(authorID uint) ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.Where("author_id = ?", authorID).Order("id").Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// Delete removes the post and its like rows atomically, likes first so no
// orphaned like can survive the post.
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLikeModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PostModel{}, id).Error
	})
}
