package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"mediavault/internal/auth"
	"mediavault/internal/config"
	"mediavault/internal/gallery"
	"mediavault/internal/handlers"
	"mediavault/internal/models"
	"mediavault/internal/repositories"
	"mediavault/internal/routes"
	"mediavault/internal/services"
	"mediavault/internal/storage"
	"mediavault/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// The handler tests run the full stack below the HTTP surface with
// in-memory store clients, so they exercise routing, auth, binding,
// and the error mapping without external services.

type memFolderRepo struct {
	mu      sync.Mutex
	folders map[string]models.Folder
}

func (r *memFolderRepo) Insert(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder.ID = uuid.NewString()
	folder.CreatedAt = time.Now()
	r.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) ListByOwner(ctx context.Context, owner string) ([]models.Folder, error) {
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

func (r *memFolderRepo) FindByID(ctx context.Context, id, owner string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.Owner != owner {
		return nil, repositories.ErrFolderNotFound
	}
	return &f, nil
}

func (r *memFolderRepo) Delete(ctx context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.Owner != owner {
		return repositories.ErrFolderNotFound
	}
	delete(r.folders, id)
	return nil
}

type memMediaRepo struct {
	mu    sync.Mutex
	media map[string]models.Media
}

func (r *memMediaRepo) Insert(ctx context.Context, media *models.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	media.ID = uuid.NewString()
	media.CreatedAt = time.Now()
	r.media[media.ID] = *media
	return nil
}

func (r *memMediaRepo) FindByID(ctx context.Context, id, owner string) (*models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok || m.Owner != owner {
		return nil, repositories.ErrMediaNotFound
	}
	return &m, nil
}

func (r *memMediaRepo) ListByScope(ctx context.Context, owner string, folderID *string) ([]models.Media, error) {
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

func (r *memMediaRepo) FindByFolder(ctx context.Context, folderID, owner string) ([]models.Media, error) {
	return r.ListByScope(ctx, owner, &folderID)
}

func (r *memMediaRepo) DeleteByFolder(ctx context.Context, folderID, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.media {
		if m.Owner == owner && m.FolderID != nil && *m.FolderID == folderID {
			delete(r.media, id)
		}
	}
	return nil
}

func (r *memMediaRepo) Delete(ctx context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok || m.Owner != owner {
		return repositories.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

type testServer struct {
	srv     *httptest.Server
	storage storage.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = nil })

	st, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)

	folderRepo := &memFolderRepo{folders: make(map[string]models.Folder)}
	mediaRepo := &memMediaRepo{media: make(map[string]models.Media)}

	folderService := services.NewFolderService(folderRepo, mediaRepo, st)
	mediaService := services.NewMediaService(mediaRepo, st)
	uploadService := services.NewUploadService(mediaRepo, folderRepo, st, services.UploadConfig{})

	views := gallery.NewRegistry(gallery.Services{
		Folders: folderService,
		Media:   mediaService,
		Uploads: uploadService,
	})

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		FolderHandler:  handlers.NewFolderHandler(base, folderService, views),
		MediaHandler:   handlers.NewMediaHandler(base, mediaService, views),
		GalleryHandler: handlers.NewGalleryHandler(base, views),
	}

	router := gin.New()
	routes.RegisterRoutes(router, appHandlers)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, storage: st}
}

func (ts *testServer) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}

func (ts *testServer) upload(t *testing.T, token, filename, contentType, folderID string, content []byte) (*http.Response, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if folderID != "" {
		require.NoError(t, writer.WriteField("folder_id", folderID))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/v1/media", body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(data)
}
