package repositories

import (
	"context"
	"errors"

	"mediavault/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrMediaNotFound  = errors.New("media not found")
)

type FolderRepository interface {
	Insert(ctx context.Context, folder *models.Folder) error
	// ListByOwner returns the owner's folders, newest first.
	ListByOwner(ctx context.Context, owner string) ([]models.Folder, error)
	FindByID(ctx context.Context, id, owner string) (*models.Folder, error)
	// Delete removes the folder row. Returns ErrFolderNotFound when no
	// row matched, so a repeated remove is distinguishable.
	Delete(ctx context.Context, id, owner string) error
}

type folderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Insert(ctx context.Context, folder *models.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *folderRepository) ListByOwner(ctx context.Context, owner string) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) FindByID(ctx context.Context, id, owner string) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) Delete(ctx context.Context, id, owner string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&models.Folder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFolderNotFound
	}
	return nil
}
