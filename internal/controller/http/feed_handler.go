package http

import (
	"errors"
	"net/http"

	"minigram/internal/entity"
	"minigram/internal/usecase"
	"minigram/pkg/flash"
	"minigram/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	postUseCase        usecase.PostUseCase
	authUseCase        usecase.AuthUseCase
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewFeedHandler(
	postUseCase usecase.PostUseCase,
	authUseCase usecase.AuthUseCase,
	interactionUseCase usecase.InteractionUseCase,
	logger *logger.Logger,
) *FeedHandler {
	return &FeedHandler{
		postUseCase:        postUseCase,
		authUseCase:        authUseCase,
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

func (h *FeedHandler) formatPostResponse(post *entity.Post, authorUsername string, likeCount int64) map[string]interface{} {
	return map[string]interface{}{
		"id":          post.ID,
		"body":        post.Body,
		"author_id":   post.AuthorID,
		"author":      authorUsername,
		"media_path":  post.MediaPath,
		"likes_count": likeCount,
		"created_at":  post.CreatedAt,
	}
}

// Home godoc
// @Summary      Feed of all posts
// @Description  Every post in insertion order, with author and like count
// @Tags         feed
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       / [get]
func (h *FeedHandler) Home(c *gin.Context) {
	posts, err := h.postUseCase.Feed()
	if err != nil {
		h.logger.Error("Failed to load feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	usernames := make(map[uint]string)
	formatted := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		author, ok := usernames[post.AuthorID]
		if !ok {
			user, err := h.authUseCase.GetUser(post.AuthorID)
			if err != nil {
				h.logger.Error("Failed to resolve author %d for post %d: %v", post.AuthorID, post.ID, err)
			} else {
				author = user.Username
			}
			usernames[post.AuthorID] = author
		}

		likeCount, err := h.interactionUseCase.GetLikeCount(post.ID)
		if err != nil {
			h.logger.Error("Failed to count likes for post %d: %v", post.ID, err)
		}
		formatted = append(formatted, h.formatPostResponse(post, author, likeCount))
	}

	message, _ := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"posts": formatted,
		"flash": message,
	})
}

// Profile godoc
// @Summary      User profile
// @Description  A user located by username, with their posts
// @Tags         feed
// @Produce      json
// @Param        username path string true "Username"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /{username} [get]
func (h *FeedHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	user, posts, err := h.postUseCase.Profile(username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("Failed to load profile %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	formatted := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		likeCount, err := h.interactionUseCase.GetLikeCount(post.ID)
		if err != nil {
			h.logger.Error("Failed to count likes for post %d: %v", post.ID, err)
		}
		formatted = append(formatted, h.formatPostResponse(post, user.Username, likeCount))
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"posts": formatted,
		"count": len(formatted),
	})
}
