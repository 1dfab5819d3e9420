package usecase

import (
	"minigram/internal/repo/persistent"
	"minigram/pkg/logger"
)

type InteractionUseCase interface {
	// ToggleLike alternates the caller's like on a post and reports the
	// resulting state: true when the post is now liked.
	ToggleLike(userID, postID uint) (bool, error)
	IsLiked(userID, postID uint) (bool, error)
	GetLikeCount(postID uint) (int64, error)
}

type interactionUseCase struct {
	likeRepo persistent.LikeRepository
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewInteractionUseCase(
	likeRepo persistent.LikeRepository,
	postRepo persistent.PostRepository,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		likeRepo: likeRepo,
		postRepo: postRepo,
		logger:   logger,
	}
}

func (uc *interactionUseCase) ToggleLike(userID, postID uint) (bool, error) {
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		return false, err
	}

	liked, err := uc.likeRepo.Exists(userID, postID)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return false, err
	}

	if liked {
		if err := uc.likeRepo.Delete(userID, postID); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, err
		}
		return false, nil
	}

	if err := uc.likeRepo.Create(userID, postID); err != nil {
		uc.logger.Error("Failed to create like: %v", err)
		return false, err
	}
	return true, nil
}

func (uc *interactionUseCase) IsLiked(userID, postID uint) (bool, error) {
	return uc.likeRepo.Exists(userID, postID)
}

func (uc *interactionUseCase) GetLikeCount(postID uint) (int64, error) {
	return uc.likeRepo.CountByPost(postID)
}
