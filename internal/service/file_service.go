package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go-confession-board/pkg/config"
)

// Buckets for uploaded images.
const (
	BucketPosts   = "posts"
	BucketAvatars = "avatars"
)

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// FileService stores uploaded images on local disk under one subdirectory
// per bucket and hands out public URL paths for them.
type FileService struct {
	baseDir    string
	publicPath string
	maxSize    int64
}

func NewFileService() (*FileService, error) {
	cfg := config.GlobalConfig.Upload
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "uploads"
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}

	for _, bucket := range []string{BucketPosts, BucketAvatars} {
		if err := os.MkdirAll(filepath.Join(baseDir, bucket), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	return &FileService{
		baseDir:    baseDir,
		publicPath: cfg.PublicPath,
		maxSize:    maxSize,
	}, nil
}

// StoreImage saves the uploaded file into the bucket under a name keyed by
// user ID and timestamp, and returns the bucket-relative path that gets
// persisted (e.g. "avatars/7-1717405395000000000.png").
func (s *FileService) StoreImage(file *multipart.FileHeader, bucket string, userID uint) (string, error) {
	if file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", ErrFileTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d%s", userID, time.Now().UnixNano(), ext)
	relPath := path.Join(bucket, name)

	dst, err := os.Create(filepath.Join(s.baseDir, bucket, name))
	if err != nil {
		return "", fmt.Errorf("failed to create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write stored file: %w", err)
	}

	return relPath, nil
}

// Remove deletes a previously stored file. A missing file is not an error;
// the row pointing at it is already being replaced.
func (s *FileService) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicURL maps a stored path to the URL path it is served under.
func (s *FileService) PublicURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.publicPath + "/" + relPath
}

// BaseDir is the on-disk root handed to the static file route.
func (s *FileService) BaseDir() string {
	return s.baseDir
}
