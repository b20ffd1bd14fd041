package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound             = errors.New("posts: post not found")
	ErrUnrecognizedFilename = errors.New("posts: filename does not match date-slug pattern")
	ErrMalformedFrontMatter = errors.New("posts: malformed front matter")
	ErrTitleRequired        = errors.New("posts: title is required")
	ErrSlugInvalid          = errors.New("posts: slug contains invalid characters")
	ErrDuplicateSlug        = errors.New("posts: duplicate slug")
	ErrPageOutOfRange       = errors.New("posts: page number out of range")
)

// NotFoundError captures slug lookup misses against the index.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug != "" {
		return fmt.Sprintf("%s: slug=%s", ErrNotFound.Error(), slug)
	}
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnrecognizedFilenameError captures files whose names do not follow the
// YYYY-MM-DD-slug.md convention.
type UnrecognizedFilenameError struct {
	Filename string
}

func (e *UnrecognizedFilenameError) Error() string {
	if e == nil {
		return ErrUnrecognizedFilename.Error()
	}
	name := strings.TrimSpace(e.Filename)
	if name != "" {
		return fmt.Sprintf("%s: filename=%s", ErrUnrecognizedFilename.Error(), name)
	}
	return ErrUnrecognizedFilename.Error()
}

func (e *UnrecognizedFilenameError) Unwrap() error {
	return ErrUnrecognizedFilename
}

// MalformedFrontMatterError captures an opening delimiter with no closing
// delimiter before end of input.
type MalformedFrontMatterError struct {
	Filename string
	Err      error
}

func (e *MalformedFrontMatterError) Error() string {
	if e == nil {
		return ErrMalformedFrontMatter.Error()
	}
	name := strings.TrimSpace(e.Filename)
	if name != "" {
		return fmt.Sprintf("%s: filename=%s", ErrMalformedFrontMatter.Error(), name)
	}
	return ErrMalformedFrontMatter.Error()
}

func (e *MalformedFrontMatterError) Unwrap() error {
	return ErrMalformedFrontMatter
}
