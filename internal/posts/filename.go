package posts

import (
	"path"
	"regexp"
	"time"

	slug "github.com/goliatone/go-slug"
)

const datePrefixLayout = "2006-01-02"

var filenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.md$`)

// FileMetadata is the publish date and slug resolved from a filename.
type FileMetadata struct {
	PublishDate time.Time
	Slug        string
}

// ResolveFilename derives publish date and slug from the YYYY-MM-DD-slug.md
// convention. The date must be a valid calendar date and the slug must
// normalize to the default slug rules; anything else fails with an
// UnrecognizedFilenameError so callers can skip the file and continue.
func ResolveFilename(name string) (FileMetadata, error) {
	base := path.Base(name)

	match := filenamePattern.FindStringSubmatch(base)
	if match == nil {
		return FileMetadata{}, &UnrecognizedFilenameError{Filename: base}
	}

	date, err := time.ParseInLocation(datePrefixLayout, match[1], time.UTC)
	if err != nil {
		return FileMetadata{}, &UnrecognizedFilenameError{Filename: base}
	}

	resolved := match[2]
	if !slug.IsValid(resolved) {
		normalized, err := slug.Normalize(resolved)
		if err != nil || normalized == "" {
			return FileMetadata{}, &UnrecognizedFilenameError{Filename: base}
		}
		resolved = normalized
	}

	return FileMetadata{
		PublishDate: date,
		Slug:        resolved,
	}, nil
}

// DatePrefix reconstructs the filename prefix from a resolved publish date.
func DatePrefix(date time.Time) string {
	return date.UTC().Format(datePrefixLayout)
}
