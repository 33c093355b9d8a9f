package handlers

import (
	"net/http"

	"mediavault/internal/gallery"
	"mediavault/internal/middleware"
	"mediavault/internal/services"
	"mediavault/internal/services/dto"
	"mediavault/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
	views        *gallery.Registry
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService, views *gallery.Registry) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
		views:        views,
	}
}

func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup) {
	media := r.Group("/media")
	media.Use(middleware.AuthMiddleware())
	{
		media.POST("", h.UploadMedia)
		media.GET("", h.ListMedia)
		media.DELETE("/:mediaId", h.DeleteMedia)
	}
}

// UploadMedia accepts one multipart file plus an optional folder_id
// field. Without folder_id the upload targets the caller's current
// gallery scope. Routing through the view enforces the one-upload-per-
// scope rule: a concurrent upload gets 409.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("missing file: "+err.Error()))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer src.Close()

	view := h.views.ViewFor(owner)

	var folderID *string
	if id := c.PostForm("folder_id"); id != "" {
		folderID = &id
	} else {
		folderID = view.CurrentFolder()
	}

	req := &dto.UploadRequest{
		FolderID:    folderID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        src,
	}

	media, err := view.Upload(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// ListMedia returns the media for exactly one logical folder: the
// folder_id query parameter, or the synthetic root when absent.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	var folderID *string
	if id := c.Query("folder_id"); id != "" {
		folderID = &id
	}

	items, err := h.mediaService.List(c.Request.Context(), owner, folderID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	view := h.views.ViewFor(owner)
	if err := view.RemoveMedia(c.Request.Context(), c.Param("mediaId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
