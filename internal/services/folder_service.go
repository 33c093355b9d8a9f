package services

import (
	"context"
	"strings"

	"mediavault/internal/logger"
	"mediavault/internal/models"
	"mediavault/internal/repositories"
	"mediavault/internal/storage"
	"mediavault/pkg/apperrors"
)

// FolderService manages the flat per-owner folder hierarchy, including
// the cascading delete that keeps blobs and metadata rows in agreement.
type FolderService interface {
	Create(ctx context.Context, owner, name string) (*models.Folder, error)
	// Get resolves one folder in the owner's scope.
	Get(ctx context.Context, owner, folderID string) (*models.Folder, error)
	// List returns the owner's folders, newest first.
	List(ctx context.Context, owner string) ([]models.Folder, error)
	// Remove deletes a folder together with every media row and blob it
	// owns. The steps are ordered so a partial failure never orphans
	// media: blobs go first, then media rows, then the folder row.
	Remove(ctx context.Context, owner, folderID string) error
}

type folderService struct {
	folderRepo repositories.FolderRepository
	mediaRepo  repositories.MediaRepository
	storage    storage.Storage
}

func NewFolderService(
	folderRepo repositories.FolderRepository,
	mediaRepo repositories.MediaRepository,
	st storage.Storage,
) FolderService {
	return &folderService{
		folderRepo: folderRepo,
		mediaRepo:  mediaRepo,
		storage:    st,
	}
}

func (s *folderService) Create(ctx context.Context, owner, name string) (*models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ValidationError("folder name must not be empty")
	}

	folder := &models.Folder{
		Name:  name,
		Owner: owner,
	}

	if err := s.folderRepo.Insert(ctx, folder); err != nil {
		return nil, apperrors.MetadataError("folder insert", err)
	}

	logger.CtxInfo(ctx, "folder created", "folder_id", folder.ID, "name", folder.Name)
	return folder, nil
}

func (s *folderService) Get(ctx context.Context, owner, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.FindByID(ctx, folderID, owner)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFolderNotFound) {
			return nil, apperrors.NotFoundError("folder")
		}
		return nil, apperrors.MetadataError("folder lookup", err)
	}
	return folder, nil
}

func (s *folderService) List(ctx context.Context, owner string) ([]models.Folder, error) {
	folders, err := s.folderRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperrors.MetadataError("folder list", err)
	}
	return folders, nil
}

func (s *folderService) Remove(ctx context.Context, owner, folderID string) error {
	if _, err := s.folderRepo.FindByID(ctx, folderID, owner); err != nil {
		if apperrors.Is(err, repositories.ErrFolderNotFound) {
			// A repeated remove lands here once the first one succeeded.
			return apperrors.NotFoundError("folder")
		}
		return apperrors.MetadataError("folder lookup", err)
	}

	// Step 1: gather the media rows the folder owns. A retry after a
	// partial failure simply sees fewer rows here.
	items, err := s.mediaRepo.FindByFolder(ctx, folderID, owner)
	if err != nil {
		return apperrors.MetadataError("media fetch", err)
	}

	// Step 2: delete the blobs in one batched call. On failure the
	// folder and its rows stay put so the remnants remain enumerable.
	if len(items) > 0 {
		keys := make([]string, 0, len(items))
		for _, item := range items {
			keys = append(keys, item.StorageKey)
		}
		if err := s.storage.DeleteBatch(ctx, keys); err != nil {
			return apperrors.PartialDeleteError("blob delete", folderID, err)
		}

		// Step 3: delete the media rows.
		if err := s.mediaRepo.DeleteByFolder(ctx, folderID, owner); err != nil {
			return apperrors.PartialDeleteError("media row delete", folderID, err)
		}
	}

	// Step 4: delete the folder row itself.
	if err := s.folderRepo.Delete(ctx, folderID, owner); err != nil {
		if apperrors.Is(err, repositories.ErrFolderNotFound) {
			return apperrors.NotFoundError("folder")
		}
		return apperrors.MetadataError("folder delete", err)
	}

	logger.CtxInfo(ctx, "folder removed", "folder_id", folderID, "media_count", len(items))
	return nil
}
