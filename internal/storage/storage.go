package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// ImageStore keeps uploaded images on disk under a single directory.
// Files are stored as {timestamp}_{originalName} so names never collide.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the uploaded file and returns the stored filename.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return name, nil
}
