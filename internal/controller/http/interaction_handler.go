package http

import (
	"errors"
	"net/http"
	"strconv"

	"minigram/internal/entity"
	"minigram/internal/usecase"
	"minigram/pkg/flash"
	"minigram/pkg/logger"
	"minigram/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

// ToggleLike godoc
// @Summary      Toggle a like
// @Description  Likes the post if the caller has not liked it yet, unlikes it otherwise; the userId path segment must match the caller
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "Acting user ID"
// @Param        postId path int true "Post ID"
// @Success      302
// @Router       /like/post/{userId}/{postId} [get]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	currentUserID, ok := middleware.CurrentUserID(c)
	if !ok {
		flash.Set(c, "login first")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	pathUserID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || uint(pathUserID) != currentUserID {
		// The path user must be the caller; anything else is an
		// authorization failure, reported rather than silently dropped.
		flash.Set(c, "you can only like posts as yourself")
		c.Redirect(http.StatusFound, "/")
		return
	}

	postID, err := strconv.ParseUint(c.Param("postId"), 10, 32)
	if err != nil {
		flash.Set(c, "post not found")
		c.Redirect(http.StatusFound, "/")
		return
	}

	liked, err := h.interactionUseCase.ToggleLike(currentUserID, uint(postID))
	if err != nil {
		if errors.Is(err, entity.ErrPostNotFound) {
			flash.Set(c, "post not found")
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.logger.Error("Failed to toggle like on post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}

	if liked {
		flash.Set(c, "post liked")
	} else {
		flash.Set(c, "post unliked")
	}
	c.Redirect(http.StatusFound, "/")
}
