// Package render provides template renderers compatible with the generator's
// TemplateRenderer contract.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// NewGoTemplateRenderer returns a renderer backed by html/template using the
// embedded default theme. Pass a directory via NewGoTemplateRendererFromDir to
// override it.
func NewGoTemplateRenderer() interfaces.TemplateRenderer {
	return &goTemplateRenderer{
		load: func() (*template.Template, error) {
			return template.New("blog-theme").Funcs(templateFuncs()).ParseFS(defaultTemplates, "templates/*.tmpl")
		},
	}
}

// NewGoTemplateRendererFromDir returns a renderer that parses every .html and
// .tmpl file found under baseDir. Template names come from define blocks, so
// the directory layout is free-form.
func NewGoTemplateRendererFromDir(baseDir string) interfaces.TemplateRenderer {
	return &goTemplateRenderer{
		load: func() (*template.Template, error) {
			var files []string
			err := filepath.WalkDir(baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if entry.IsDir() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(path))
				if ext != ".html" && ext != ".tmpl" {
					return nil
				}
				files = append(files, path)
				return nil
			})
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("render: no templates found in %s", baseDir)
			}
			return template.New("blog-theme").Funcs(templateFuncs()).ParseFiles(files...)
		},
	}
}

type goTemplateRenderer struct {
	load func() (*template.Template, error)
	once sync.Once
	tpl  *template.Template
	err  error
}

func (r *goTemplateRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		r.tpl, r.err = r.load()
	})
	return r.tpl, r.err
}

// Render executes the named template and returns the generated markup.
func (r *goTemplateRenderer) Render(name string, data any) ([]byte, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return nil, err
	}
	if tpl.Lookup(name) == nil {
		return nil, fmt.Errorf("render: template %q not found", name)
	}

	var buffer bytes.Buffer
	if err := tpl.ExecuteTemplate(&buffer, name, data); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
	}
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	case []byte:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
