package generator

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type writeCategory string

const (
	categoryPost    writeCategory = "post"
	categoryListing writeCategory = "listing"
	categoryFeed    writeCategory = "feed"
	categorySitemap writeCategory = "sitemap"
	categoryRobots  writeCategory = "robots"
)

// writeFileRequest describes a file write operation routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts storage provider specifics for generator outputs.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

func newArtifactWriter(storage interfaces.StorageProvider) artifactWriter {
	if storage == nil {
		return noopWriter{}
	}
	return &storageWriter{storage: storage}
}

type storageWriter struct {
	storage interfaces.StorageProvider
}

func (w *storageWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return w.storage.EnsureDir(ctx, path)
}

func (w *storageWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	metadata := map[string]string{
		"category": string(req.Category),
	}
	if req.ContentType != "" {
		metadata["content_type"] = req.ContentType
	}
	if req.Checksum != "" {
		metadata["checksum"] = req.Checksum
	}
	for key, value := range req.Metadata {
		metadata[key] = value
	}
	return w.storage.WriteFile(ctx, req.Path, req.Content, metadata)
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" || dir == "." {
		return nil
	}
	if _, ok := cache[dir]; ok {
		return nil
	}
	if parent := path.Dir(dir); parent != "." && parent != dir {
		if err := ensureDir(ctx, writer, cache, parent); err != nil {
			return err
		}
	}
	if err := writer.EnsureDir(ctx, dir); err != nil {
		return err
	}
	cache[dir] = struct{}{}
	return nil
}
