package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalForTest(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/api/v1/files",
	})
	require.NoError(t, err)
	return st
}

func TestLocalSaveGetRoundTrip(t *testing.T) {
	st := newLocalForTest(t)
	ctx := context.Background()

	content := []byte("blob bytes")
	require.NoError(t, st.Save(ctx, "alice/abc123.jpg", bytes.NewReader(content), "image/jpeg"))

	rc, err := st.Get(ctx, "alice/abc123.jpg")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	ok, err := st.Exists(ctx, "alice/abc123.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalSaveLeavesNoPartialFileBehind(t *testing.T) {
	st := newLocalForTest(t)
	ctx := context.Background()

	// A reader that fails mid-copy must not leave an addressable blob.
	failing := io.MultiReader(bytes.NewReader(make([]byte, 10)), &errReader{})
	err := st.Save(ctx, "alice/broken.jpg", failing, "image/jpeg")
	require.Error(t, err)

	ok, err := st.Exists(ctx, "alice/broken.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	// The temp file is cleaned up too.
	entries, err := os.ReadDir(filepath.Join(st.basePath, "alice"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type errReader struct{}

func (*errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestLocalDeleteMissingKeyIsNotAnError(t *testing.T) {
	st := newLocalForTest(t)
	assert.NoError(t, st.Delete(context.Background(), "alice/never-existed.jpg"))
}

func TestLocalDeleteBatch(t *testing.T) {
	st := newLocalForTest(t)
	ctx := context.Background()

	keys := []string{"alice/a.jpg", "alice/b.jpg", "alice/c.mp4"}
	for _, key := range keys {
		require.NoError(t, st.Save(ctx, key, bytes.NewReader([]byte(key)), "image/jpeg"))
	}

	require.NoError(t, st.DeleteBatch(ctx, keys))
	for _, key := range keys {
		ok, err := st.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s must be gone", key)
	}
}

func TestLocalPublicURLIsPureDerivation(t *testing.T) {
	st := newLocalForTest(t)

	// No round trip: the URL exists even for keys never saved.
	assert.Equal(t,
		"http://localhost:8080/api/v1/files/alice/abc123.jpg",
		st.PublicURL("alice/abc123.jpg"))

	bare, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "/files/alice/abc123.jpg", bare.PublicURL("alice/abc123.jpg"))
}
