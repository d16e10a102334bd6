package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/httpx"
	"imagegram/api/internal/middleware"
)

type likeResponse struct {
	ImageID string `json:"imageId"`
	Liked   bool   `json:"liked"`
	Likes   int    `json:"likes"`
}

func (h HandlerSet) ToggleLike(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	result, err := h.socialService.ToggleLike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	message := "like removed"
	if result.Liked {
		message = "like added"
	}

	httpx.OK(c, http.StatusOK, message, likeResponse{
		ImageID: result.ImageID,
		Liked:   result.Liked,
		Likes:   result.Count,
	})
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type createdCommentResponse struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) AddComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, apperr.New(apperr.KindValidation, "comment text is required"))
		return
	}

	comment, err := h.socialService.AddComment(c.Request.Context(), c.Param("id"), user, req.Text)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, "comment added", createdCommentResponse{
		ID:        comment.ID,
		ImageID:   comment.ImageID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

func (h HandlerSet) DeleteComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	err := h.socialService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), user.ID)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "comment deleted successfully", nil)
}
