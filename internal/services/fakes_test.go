package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"mediavault/internal/models"
	"mediavault/internal/repositories"

	"github.com/google/uuid"
)

// fakeStorage is an in-memory object store with failure injection.
type fakeStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte

	failSave        bool
	failDelete      bool
	failDeleteBatch bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if f.failSave {
		// A failed put never leaves an addressable partial object.
		return errors.New("injected save failure")
	}
	f.mu.Lock()
	f.blobs[key] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("no blob for key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("injected delete failure")
	}
	f.mu.Lock()
	delete(f.blobs, key)
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) DeleteBatch(ctx context.Context, keys []string) error {
	if f.failDeleteBatch {
		return errors.New("injected batch delete failure")
	}
	f.mu.Lock()
	for _, key := range keys {
		delete(f.blobs, key)
	}
	f.mu.Unlock()
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

// fakeFolderRepo is an in-memory, owner-scoped folder relation.
type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]models.Folder)}
}

func (r *fakeFolderRepo) Insert(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder.ID = uuid.NewString()
	folder.CreatedAt = time.Now()
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) ListByOwner(ctx context.Context, owner string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, f := range r.folders {
		if f.Owner == owner {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFolderRepo) FindByID(ctx context.Context, id, owner string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.Owner != owner {
		return nil, repositories.ErrFolderNotFound
	}
	return &f, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.Owner != owner {
		return repositories.ErrFolderNotFound
	}
	delete(r.folders, id)
	return nil
}

// fakeMediaRepo is an in-memory, owner-scoped media relation with
// failure injection on insert and delete-by-folder.
type fakeMediaRepo struct {
	mu    sync.Mutex
	media map[string]models.Media

	failInsert         bool
	failDeleteByFolder bool
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: make(map[string]models.Media)}
}

func (r *fakeMediaRepo) Insert(ctx context.Context, media *models.Media) error {
	if r.failInsert {
		return errors.New("injected insert failure")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	media.ID = uuid.NewString()
	media.CreatedAt = time.Now()
	r.media[media.ID] = *media
	return nil
}

func (r *fakeMediaRepo) FindByID(ctx context.Context, id, owner string) (*models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok || m.Owner != owner {
		return nil, repositories.ErrMediaNotFound
	}
	return &m, nil
}

func (r *fakeMediaRepo) ListByScope(ctx context.Context, owner string, folderID *string) ([]models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Media
	for _, m := range r.media {
		if m.Owner != owner {
			continue
		}
		if folderID == nil {
			if m.FolderID != nil {
				continue
			}
		} else if m.FolderID == nil || *m.FolderID != *folderID {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMediaRepo) FindByFolder(ctx context.Context, folderID, owner string) ([]models.Media, error) {
	return r.ListByScope(ctx, owner, &folderID)
}

func (r *fakeMediaRepo) DeleteByFolder(ctx context.Context, folderID, owner string) error {
	if r.failDeleteByFolder {
		return errors.New("injected delete-by-folder failure")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.media {
		if m.Owner == owner && m.FolderID != nil && *m.FolderID == folderID {
			delete(r.media, id)
		}
	}
	return nil
}

func (r *fakeMediaRepo) Delete(ctx context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok || m.Owner != owner {
		return repositories.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *fakeMediaRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.media)
}
