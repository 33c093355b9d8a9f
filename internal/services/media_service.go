package services

import (
	"context"

	"mediavault/internal/logger"
	"mediavault/internal/repositories"
	"mediavault/internal/services/dto"
	"mediavault/internal/storage"
	"mediavault/pkg/apperrors"
)

// MediaService reads and deletes individual media items. Listing is
// always scoped to exactly one logical folder (including the synthetic
// root); object addresses are resolved to URLs lazily, at listing time.
type MediaService interface {
	List(ctx context.Context, owner string, folderID *string) ([]dto.MediaItem, error)
	Remove(ctx context.Context, owner, mediaID string) error
}

type mediaService struct {
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
}

func NewMediaService(mediaRepo repositories.MediaRepository, st storage.Storage) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		storage:   st,
	}
}

func (s *mediaService) List(ctx context.Context, owner string, folderID *string) ([]dto.MediaItem, error) {
	rows, err := s.mediaRepo.ListByScope(ctx, owner, folderID)
	if err != nil {
		return nil, apperrors.MetadataError("media list", err)
	}

	items := make([]dto.MediaItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.MediaItem{
			Media: row,
			URL:   s.storage.PublicURL(row.StorageKey),
		})
	}
	return items, nil
}

// Remove deletes the blob first, then the row. A failure in between
// leaves a referenced-but-missing blob, detectable and still slated
// for deletion on retry.
func (s *mediaService) Remove(ctx context.Context, owner, mediaID string) error {
	media, err := s.mediaRepo.FindByID(ctx, mediaID, owner)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMediaNotFound) {
			return apperrors.NotFoundError("media")
		}
		return apperrors.MetadataError("media lookup", err)
	}

	if err := s.storage.Delete(ctx, media.StorageKey); err != nil {
		return apperrors.StorageError("delete", err)
	}

	if err := s.mediaRepo.Delete(ctx, mediaID, owner); err != nil {
		if apperrors.Is(err, repositories.ErrMediaNotFound) {
			return apperrors.NotFoundError("media")
		}
		return apperrors.MetadataError("media delete", err)
	}

	logger.CtxInfo(ctx, "media removed", "media_id", mediaID, "storage_key", media.StorageKey)
	return nil
}
