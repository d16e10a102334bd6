package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"imagegram/api/internal/apperr"
	"imagegram/api/internal/httpx"
	"imagegram/api/internal/middleware"
	"imagegram/api/internal/models"
)

// Destructive transform endpoints: each applies one codec pass to the
// stored blob and updates the metadata record in place.

func (h HandlerSet) ResizeImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	width, err := requiredIntQuery(c, "width")
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	// height is optional; zero means preserve the aspect ratio. The
	// service rejects negatives.
	height := 0
	if raw := c.Query("height"); raw != "" {
		height, err = strconv.Atoi(raw)
		if err != nil {
			httpx.Fail(c, apperr.New(apperr.KindValidation, "height must be a non-negative integer"))
			return
		}
	}

	record, err := h.imageService.Resize(c.Request.Context(), c.Param("id"), user.ID, width, height)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	h.sendTransformed(c, "image resized", record)
}

func (h HandlerSet) RotateImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	angle, err := requiredIntQuery(c, "angle")
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	record, err := h.imageService.Rotate(c.Request.Context(), c.Param("id"), user.ID, angle)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	h.sendTransformed(c, "image rotated", record)
}

func (h HandlerSet) FlipImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	direction := c.Query("direction")
	if direction == "" {
		httpx.Fail(c, apperr.New(apperr.KindValidation, "direction parameter is required"))
		return
	}

	record, err := h.imageService.Flip(c.Request.Context(), c.Param("id"), user.ID, direction)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	h.sendTransformed(c, "image flipped", record)
}

func (h HandlerSet) ChangeImageFormat(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httpx.Fail(c, apperr.New(apperr.KindUnauthenticated, "unauthorized"))
		return
	}

	format := c.Query("format")
	if format == "" {
		httpx.Fail(c, apperr.New(apperr.KindValidation, "format parameter is required"))
		return
	}

	record, err := h.imageService.ChangeFormat(c.Request.Context(), c.Param("id"), user.ID, format)
	if err != nil {
		httpx.Fail(c, err)
		return
	}

	h.sendTransformed(c, "image format changed", record)
}

func (h HandlerSet) sendTransformed(c *gin.Context, message string, record models.Image) {
	httpx.OK(c, http.StatusOK, message, toImageResponse(record))
}

func requiredIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperr.New(apperr.KindValidation, name+" parameter is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, apperr.New(apperr.KindValidation, name+" must be a positive integer")
	}
	return value, nil
}
