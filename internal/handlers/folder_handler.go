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

type FolderHandler struct {
	*BaseHandler
	folderService services.FolderService
	views         *gallery.Registry
}

func NewFolderHandler(base *BaseHandler, folderService services.FolderService, views *gallery.Registry) *FolderHandler {
	return &FolderHandler{
		BaseHandler:   base,
		folderService: folderService,
		views:         views,
	}
}

func (h *FolderHandler) RegisterRoutes(r *gin.RouterGroup) {
	folders := r.Group("/folders")
	folders.Use(middleware.AuthMiddleware())
	{
		folders.POST("", h.CreateFolder)
		folders.GET("", h.ListFolders)
		folders.DELETE("/:folderId", h.DeleteFolder)
	}
}

func (h *FolderHandler) CreateFolder(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	var req dto.CreateFolderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	folder, err := h.folderService.Create(c.Request.Context(), owner, req.Name)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, folder)
}

func (h *FolderHandler) ListFolders(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	folders, err := h.folderService.List(c.Request.Context(), owner)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, folders)
}

// DeleteFolder cascades through the owner's gallery view so a deleted
// current folder also resets the view scope to root.
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	view := h.views.ViewFor(owner)
	if err := view.RemoveFolder(c.Request.Context(), c.Param("folderId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
