package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"adlicense.backend/internal/config"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// LocalStorage writes uploads to a directory on disk. Stored names are
// generated, never the client-supplied filename.
type LocalStorage struct {
	dir     string
	maxSize int64
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(cfg config.UploadConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: cfg.Dir, maxSize: cfg.MaxSize}, nil
}

// Dir returns the root upload directory
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save validates and stores one uploaded file, returning the stored name
func (s *LocalStorage) Save(fh *multipart.FileHeader, prefix string) (string, error) {
	if fh.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name, err := randomName(prefix, ext)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1)); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored file by name
func (s *LocalStorage) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

func randomName(prefix, ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s%s", prefix, hex.EncodeToString(buf), ext), nil
}
