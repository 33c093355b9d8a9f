package repositories

import (
	"context"
	"errors"

	"mediavault/internal/models"

	"gorm.io/gorm"
)

type MediaRepository interface {
	Insert(ctx context.Context, media *models.Media) error
	FindByID(ctx context.Context, id, owner string) (*models.Media, error)
	// ListByScope returns the owner's media for exactly one logical
	// folder, newest first. A nil folderID matches rows whose folder_id
	// is NULL (the synthetic root), never "any folder".
	ListByScope(ctx context.Context, owner string, folderID *string) ([]models.Media, error)
	// FindByFolder returns every media row owned by the folder.
	FindByFolder(ctx context.Context, folderID, owner string) ([]models.Media, error)
	DeleteByFolder(ctx context.Context, folderID, owner string) error
	// Delete removes one media row. Returns ErrMediaNotFound when no
	// row matched.
	Delete(ctx context.Context, id, owner string) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Insert(ctx context.Context, media *models.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) FindByID(ctx context.Context, id, owner string) (*models.Media, error) {
	var media models.Media
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		First(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) ListByScope(ctx context.Context, owner string, folderID *string) ([]models.Media, error) {
	q := r.db.WithContext(ctx).Where("owner = ?", owner)
	if folderID != nil {
		q = q.Where("folder_id = ?", *folderID)
	} else {
		q = q.Where("folder_id IS NULL")
	}

	var media []models.Media
	if err := q.Order("created_at DESC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepository) FindByFolder(ctx context.Context, folderID, owner string) ([]models.Media, error) {
	var media []models.Media
	err := r.db.WithContext(ctx).
		Where("folder_id = ? AND owner = ?", folderID, owner).
		Order("created_at DESC").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepository) DeleteByFolder(ctx context.Context, folderID, owner string) error {
	return r.db.WithContext(ctx).
		Where("folder_id = ? AND owner = ?", folderID, owner).
		Delete(&models.Media{}).Error
}

func (r *mediaRepository) Delete(ctx context.Context, id, owner string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&models.Media{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
