package persistent

import (
	"errors"

	"minigram/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(userID, postID uint) error
	Delete(userID, postID uint) error
	Exists(userID, postID uint) (bool, error)
	CountByPost(postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(userID, postID uint) error {
	likeModel := &model.PostLikeModel{
		UserID: userID,
		PostID: postID,
	}
	if err := r.db.Create(likeModel).Error; err != nil {
		// A concurrent duplicate insert loses to the unique index; the
		// like exists either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

func (r *likeRepository) Delete(userID, postID uint) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLikeModel{}).Error
}

func (r *likeRepository) Exists(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostLikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
