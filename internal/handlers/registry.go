package handlers

// AppHandlers bundles the constructed handlers for route registration.
type AppHandlers struct {
	FolderHandler  *FolderHandler
	MediaHandler   *MediaHandler
	GalleryHandler *GalleryHandler
}
