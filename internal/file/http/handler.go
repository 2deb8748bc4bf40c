package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/auth"
	"shareit/internal/file"
	"shareit/internal/pkg/request"
	"shareit/internal/pkg/response"
)

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file form field"})
		return
	}

	f, err := h.service.Upload(c.Request.Context(), header, auth.GetActorID(c), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewFileResponse(f))
}

func (h *Handler) ListByItem(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	files, err := h.service.ListByItem(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FileResponse, len(files))
	for i, f := range files {
		items[i] = NewFileResponse(f)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Download(c *gin.Context) {
	h.stream(c, false)
}

func (h *Handler) DownloadThumbnail(c *gin.Context) {
	h.stream(c, true)
}

func (h *Handler) stream(c *gin.Context, thumbnail bool) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var (
		body io.ReadCloser
		f    *file.File
		err  error
	)
	if thumbnail {
		body, f, err = h.service.DownloadThumbnail(c.Request.Context(), params.ID)
	} else {
		body, f, err = h.service.Download(c.Request.Context(), params.ID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	if thumbnail {
		// Thumbnails are re-encoded, so the stored size does not apply.
		c.DataFromReader(http.StatusOK, -1, "image/jpeg", body, nil)
		return
	}
	c.DataFromReader(http.StatusOK, f.Size, f.ContentType, body, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetActorID(c), params.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
