package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. When the source carries no opening delimiter the
// whole input is returned as body with an empty front matter. An opening
// delimiter without a closing one is an error; callers are expected to fall
// back to treating the whole file as body rather than dropping the post.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// EncodeFrontMatter re-serializes a raw front matter mapping and body into a
// delimited document. Parsing the result yields the same mapping and body.
func EncodeFrontMatter(raw map[string]any, body []byte) ([]byte, error) {
	if len(raw) == 0 {
		return append([]byte(nil), body...), nil
	}

	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// ParseDocument splits a loaded source file into front matter and body. When
// the front matter block is malformed the whole source is kept as body and
// the parse error is returned alongside the document, so callers can publish
// the content with a warning instead of dropping the file.
func ParseDocument(file *FileResult) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(file.Source)
	if err != nil {
		meta = interfaces.FrontMatter{Custom: map[string]any{}, Raw: map[string]any{}}
		body = file.Source
	}

	return &interfaces.Document{
		FilePath:     file.Path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: file.Modified,
		Checksum:     file.Checksum,
	}, err
}

type frontMatterEnvelope struct {
	Title      string         `yaml:"title"`
	AuthorName string         `yaml:"author_name"`
	TOC        bool           `yaml:"toc"`
	TOCSticky  bool           `yaml:"toc_sticky"`
	Draft      bool           `yaml:"draft"`
	Custom     map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+5)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.AuthorName != "" {
		raw["author_name"] = env.AuthorName
	}
	if env.TOC {
		raw["toc"] = env.TOC
	}
	if env.TOCSticky {
		raw["toc_sticky"] = env.TOCSticky
	}
	if env.Draft {
		raw["draft"] = env.Draft
	}

	return interfaces.FrontMatter{
		Title:      env.Title,
		AuthorName: env.AuthorName,
		TOC:        env.TOC,
		TOCSticky:  env.TOCSticky,
		Draft:      env.Draft,
		Custom:     cloneMap(env.Custom),
		Raw:        raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
