package gallery

import (
	"context"
	"sync"

	"mediavault/internal/models"
	"mediavault/internal/services"
	"mediavault/internal/services/dto"
	"mediavault/pkg/apperrors"
)

// Services bundles the store-facing collaborators a View reads through.
// The view itself is read-only over folders and media; it owns nothing
// but its transient scope.
type Services struct {
	Folders services.FolderService
	Media   services.MediaService
	Uploads services.UploadService
}

// Snapshot is the data for one rendering of the gallery: the folder
// listing, the media listing for the current scope, and the scope
// itself. AtRoot tells the presentation layer whether folders are shown.
type Snapshot struct {
	CurrentFolder *string         `json:"current_folder"`
	AtRoot        bool            `json:"at_root"`
	Folders       []models.Folder `json:"folders"`
	Media         []dto.MediaItem `json:"media"`
}

// View tracks one owner's gallery scope: the current folder (nil means
// root) and the transient hovered item. Navigation re-fetches listings;
// hovering never does. Store operations on one view do not interleave:
// a second upload while one is in flight is rejected as busy.
type View struct {
	owner string
	svc   Services

	mu      sync.Mutex // guards current and hovered
	current *string    // nil = root
	hovered string     // "" = nothing hovered

	uploadMu sync.Mutex // held for the duration of one upload
}

func NewView(owner string, svc Services) *View {
	return &View{owner: owner, svc: svc}
}

func (v *View) Owner() string {
	return v.owner
}

// CurrentFolder returns the scope's folder id, or nil at root.
func (v *View) CurrentFolder() *string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// EnterFolder moves the scope into the folder and re-fetches listings.
// The scope is untouched when the folder does not exist in the owner's
// collection.
func (v *View) EnterFolder(ctx context.Context, folderID string) (*Snapshot, error) {
	if _, err := v.svc.Folders.Get(ctx, v.owner, folderID); err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.current = &folderID
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// ExitFolder returns the scope to root. At root it is a no-op beyond
// the re-fetch: the exit control is only reachable from inside a folder.
func (v *View) ExitFolder(ctx context.Context) (*Snapshot, error) {
	v.mu.Lock()
	v.current = nil
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Refresh re-fetches the folder listing and the media listing for the
// current scope.
func (v *View) Refresh(ctx context.Context) (*Snapshot, error) {
	scope := v.CurrentFolder()

	folders, err := v.svc.Folders.List(ctx, v.owner)
	if err != nil {
		return nil, err
	}

	media, err := v.svc.Media.List(ctx, v.owner, scope)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		CurrentFolder: scope,
		AtRoot:        scope == nil,
		Folders:       folders,
		Media:         media,
	}, nil
}

// Hover points the transient hover affordance at an item; an empty id
// clears it. No fetch, no durability.
func (v *View) Hover(itemID string) {
	v.mu.Lock()
	v.hovered = itemID
	v.mu.Unlock()
}

// Hovered returns the currently hovered item id, or "".
func (v *View) Hovered() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hovered
}

// Upload runs the upload pipeline against this view's scope. Only one
// upload may be in flight per view; a concurrent attempt is rejected as
// busy rather than interleaved, because progress reporting and the
// compensating-delete path assume exclusive use.
func (v *View) Upload(ctx context.Context, req *dto.UploadRequest) (*models.Media, error) {
	if !v.uploadMu.TryLock() {
		return nil, apperrors.BusyError("upload")
	}
	defer v.uploadMu.Unlock()

	req.Owner = v.owner
	return v.svc.Uploads.Upload(ctx, req)
}

// RemoveFolder removes a folder through the hierarchy manager and,
// when the removed folder was the current scope, resets the scope to
// root. The reset is this caller's obligation; the manager itself is
// scope-agnostic.
func (v *View) RemoveFolder(ctx context.Context, folderID string) error {
	if err := v.svc.Folders.Remove(ctx, v.owner, folderID); err != nil {
		return err
	}

	v.mu.Lock()
	if v.current != nil && *v.current == folderID {
		v.current = nil
	}
	if v.hovered == folderID {
		v.hovered = ""
	}
	v.mu.Unlock()
	return nil
}

// RemoveMedia deletes one media item in the owner's scope.
func (v *View) RemoveMedia(ctx context.Context, mediaID string) error {
	if err := v.svc.Media.Remove(ctx, v.owner, mediaID); err != nil {
		return err
	}

	v.mu.Lock()
	if v.hovered == mediaID {
		v.hovered = ""
	}
	v.mu.Unlock()
	return nil
}
