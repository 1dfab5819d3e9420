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

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Multipart form with the post body and one media file; image extensions land under images/, video extensions under videos/, anything else is rejected
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        post-body formData string true "Post text"
// @Param        post-img formData file true "Image or video file"
// @Success      302
// @Router       /post [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		flash.Set(c, "login first")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	body := c.PostForm("post-body")

	file, err := c.FormFile("post-img")
	if err != nil {
		flash.Set(c, "no file part")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if _, err := h.postUseCase.CreatePost(userID, body, file); err != nil {
		switch {
		case errors.Is(err, entity.ErrMissingFile):
			flash.Set(c, "no file selected for uploading")
		case errors.Is(err, entity.ErrUnsupportedMedia):
			flash.Set(c, "unsupported media type")
		default:
			h.logger.Error("Failed to create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	flash.Set(c, "post added")
	c.Redirect(http.StatusFound, "/")
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post, its likes and its stored media; only the author may delete
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        postId path int true "Post ID"
// @Success      302
// @Router       /delete/{postId} [get]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		flash.Set(c, "login first")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	postID, err := strconv.ParseUint(c.Param("postId"), 10, 32)
	if err != nil {
		flash.Set(c, "wrong post")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.postUseCase.DeletePost(uint(postID), userID); err != nil {
		switch {
		case errors.Is(err, entity.ErrPostNotFound):
			flash.Set(c, "wrong post")
		case errors.Is(err, entity.ErrNotPostAuthor):
			flash.Set(c, "not your post")
		default:
			h.logger.Error("Failed to delete post %d: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	flash.Set(c, "post deleted")
	c.Redirect(http.StatusFound, "/")
}
