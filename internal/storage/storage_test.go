package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestImageStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "pic.png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+_pic\.png$`), name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestImageStoreSaveStripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "../../etc/passwd", []byte("x")))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+_passwd$`), name)
	assert.FileExists(t, filepath.Join(dir, name))
}

func TestNewImageStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	_, err := NewImageStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
