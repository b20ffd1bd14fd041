// Package storage provides artifact storage backends for the site generator.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrPathOutsideRoot indicates a path that would escape the storage root.
var ErrPathOutsideRoot = errors.New("storage: path escapes the storage root")

// NewFilesystem returns a StorageProvider that writes artifacts beneath root.
// Paths handed to the provider are slash-separated and relative.
func NewFilesystem(root string) (interfaces.StorageProvider, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, errors.New("storage: root directory is required")
	}
	return &filesystemStorage{root: filepath.Clean(trimmed)}, nil
}

type filesystemStorage struct {
	root string
}

func (s *filesystemStorage) EnsureDir(_ context.Context, path string) error {
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (s *filesystemStorage) WriteFile(_ context.Context, path string, content io.Reader, _ map[string]string) error {
	if content == nil {
		return errors.New("storage: write requires content reader")
	}
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	file, err := os.Create(target)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := io.Copy(file, content); err != nil {
		return err
	}
	return file.Sync()
}

func (s *filesystemStorage) Remove(_ context.Context, path string) error {
	target, err := s.abs(path)
	if err != nil {
		return err
	}
	err = os.RemoveAll(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *filesystemStorage) Clean(_ context.Context) error {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (s *filesystemStorage) abs(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimSpace(rel)))
	if cleaned == "." || cleaned == "" {
		return s.root, nil
	}
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRoot, rel)
	}
	return filepath.Join(s.root, cleaned), nil
}
