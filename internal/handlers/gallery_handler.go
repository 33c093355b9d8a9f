package handlers

import (
	"net/http"

	"mediavault/internal/gallery"
	"mediavault/internal/middleware"
	"mediavault/internal/services/dto"
	"mediavault/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// GalleryHandler exposes the per-owner gallery view: scoped snapshots,
// folder navigation, and the transient hover pointer.
type GalleryHandler struct {
	*BaseHandler
	views *gallery.Registry
}

func NewGalleryHandler(base *BaseHandler, views *gallery.Registry) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler: base,
		views:       views,
	}
}

func (h *GalleryHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/gallery")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.Snapshot)
		g.POST("/folders/:folderId/enter", h.EnterFolder)
		g.POST("/exit", h.ExitFolder)
		g.POST("/hover", h.Hover)
		g.DELETE("", h.Close)
	}
}

func (h *GalleryHandler) Snapshot(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	snap, err := h.views.ViewFor(owner).Refresh(c.Request.Context())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *GalleryHandler) EnterFolder(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	snap, err := h.views.ViewFor(owner).EnterFolder(c.Request.Context(), c.Param("folderId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *GalleryHandler) ExitFolder(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	snap, err := h.views.ViewFor(owner).ExitFolder(c.Request.Context())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Hover updates the transient hovered-item pointer. It never fetches
// and never touches the stores.
func (h *GalleryHandler) Hover(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	var req dto.HoverRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	h.views.ViewFor(owner).Hover(req.ItemID)
	c.Status(http.StatusNoContent)
}

// Close discards the owner's view when the gallery is exited.
func (h *GalleryHandler) Close(c *gin.Context) {
	owner, ok := h.Owner(c)
	if !ok {
		return
	}

	h.views.Drop(owner)
	c.Status(http.StatusNoContent)
}
