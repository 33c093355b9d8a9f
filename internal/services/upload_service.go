package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mediavault/internal/logger"
	"mediavault/internal/models"
	"mediavault/internal/repositories"
	"mediavault/internal/services/dto"
	"mediavault/internal/storage"
	"mediavault/pkg/apperrors"
)

// UploadService turns one candidate file into a durable, listed media
// item: validate, write the blob, then record the metadata row. The
// metadata row is written last so a crash mid-pipeline leaves only a
// harmless unreferenced blob, never a row pointing at nothing.
type UploadService interface {
	Upload(ctx context.Context, req *dto.UploadRequest) (*models.Media, error)
}

type UploadConfig struct {
	MaxImageSize int64
	MaxVideoSize int64
}

type uploadService struct {
	mediaRepo  repositories.MediaRepository
	folderRepo repositories.FolderRepository
	storage    storage.Storage
	config     UploadConfig
}

func NewUploadService(
	mediaRepo repositories.MediaRepository,
	folderRepo repositories.FolderRepository,
	st storage.Storage,
	config UploadConfig,
) UploadService {
	if config.MaxImageSize == 0 {
		config.MaxImageSize = 5 * 1024 * 1024
	}
	if config.MaxVideoSize == 0 {
		config.MaxVideoSize = config.MaxImageSize * 10
	}

	return &uploadService{
		mediaRepo:  mediaRepo,
		folderRepo: folderRepo,
		storage:    st,
		config:     config,
	}
}

func (s *uploadService) Upload(ctx context.Context, req *dto.UploadRequest) (*models.Media, error) {
	// Validation happens before any network call.
	kind, err := classifyKind(req.ContentType, req.FileName)
	if err != nil {
		return nil, err
	}

	limit := s.config.MaxImageSize
	if kind == models.MediaKindVideo {
		limit = s.config.MaxVideoSize
	}
	if req.Size > limit {
		return nil, apperrors.ValidationError(
			fmt.Sprintf("%s of %d bytes exceeds the %d byte %s limit", kind, req.Size, limit, kind))
	}

	// The target folder must exist in the owner's scope before we touch
	// the object store.
	if req.FolderID != nil {
		if _, err := s.folderRepo.FindByID(ctx, *req.FolderID, req.Owner); err != nil {
			if apperrors.Is(err, repositories.ErrFolderNotFound) {
				return nil, apperrors.NotFoundError("folder")
			}
			return nil, apperrors.MetadataError("folder lookup", err)
		}
	}

	key := buildStorageKey(req.Owner, req.FileName)

	pr := newProgressReader(req.Body, req.Size, req.Progress)
	if err := s.storage.Save(ctx, key, pr, req.ContentType); err != nil {
		// A failed Save leaves no addressable partial blob, so there is
		// nothing to clean up.
		return nil, apperrors.StorageError("upload", err)
	}
	pr.finish()

	media := &models.Media{
		StorageKey: key,
		FolderID:   req.FolderID,
		Owner:      req.Owner,
		Kind:       kind,
	}

	if err := s.mediaRepo.Insert(ctx, media); err != nil {
		// Compensating action: the blob was written but can never be
		// listed, so remove it before surfacing the failure.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxError(ctx, "compensating blob delete failed, manual cleanup required",
				"storage_key", key, "error", delErr.Error())
			return nil, apperrors.MetadataError("record", err).
				WithDetails(map[string]string{"orphaned_key": key, "cleanup": "manual"})
		}
		return nil, apperrors.MetadataError("record", err)
	}

	logger.CtxInfo(ctx, "media uploaded",
		"media_id", media.ID, "storage_key", key, "kind", kind, "size", req.Size)

	return media, nil
}

// classifyKind derives image/video from the declared content type,
// falling back to the file extension when the type is missing.
func classifyKind(contentType, filename string) (models.MediaKind, error) {
	if contentType == "" {
		contentType = mimeTypeFromFilename(filename)
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaKindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaKindVideo, nil
	default:
		return "", apperrors.ValidationError(
			fmt.Sprintf("unsupported content type %q, only images and video are accepted", contentType))
	}
}

// buildStorageKey returns "{owner}/{token}{.ext}". The per-owner prefix
// keeps one user's objects out of another's namespace and makes bulk
// per-owner operations addressable by prefix.
func buildStorageKey(owner, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", owner, generateSecureRandomString(16), ext)
}

func generateSecureRandomString(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}

func mimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".mp4":  "video/mp4",
		".mov":  "video/quicktime",
		".webm": "video/webm",
	}

	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
