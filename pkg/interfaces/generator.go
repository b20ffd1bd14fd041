package interfaces

import (
	"context"
	"io"
)

// TemplateRenderer renders a named template with the supplied data. The
// generator stays agnostic of the template engine; implementations decide how
// names map onto files.
type TemplateRenderer interface {
	Render(name string, data any) ([]byte, error)
}

// StorageProvider persists generated artifacts. Paths are slash-separated and
// relative to the provider's root.
type StorageProvider interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content io.Reader, metadata map[string]string) error
	Remove(ctx context.Context, path string) error
	// Clean removes every artifact under the provider root.
	Clean(ctx context.Context) error
}
