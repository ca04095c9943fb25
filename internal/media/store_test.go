package media

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestStore_Save(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	content := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	path, err := store.Save(uploadHeader(t, "small.png", content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "posts/"), "path %q", path)
	assert.True(t, strings.HasSuffix(path, ".png"), "path %q", path)

	stored, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestStore_SaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(uploadHeader(t, "pic.jpg", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(uploadHeader(t, "pic.jpg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "media")

	_, err := NewStore(root)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "posts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
