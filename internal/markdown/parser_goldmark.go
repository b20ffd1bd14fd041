package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The parser is stateless so callers can reuse a single instance
// across documents without additional locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser constructs a parser with sensible defaults (GFM
// extensions, hard wraps disabled, unsafe HTML allowed). Callers can override
// behaviour per invocation through ParseWithOptions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// RenderResult carries the rendered body alongside the headings encountered
// in document order. Heading anchor ids match the id attributes emitted in
// the HTML because both come from the same allocator.
type RenderResult struct {
	HTML     []byte
	Headings []interfaces.Heading
}

// Parse satisfies interfaces.MarkdownParser by rendering Markdown into HTML
// using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	result, err := p.RenderWithHeadings(markdown, opts)
	if err != nil {
		return nil, err
	}
	return result.HTML, nil
}

// RenderWithHeadings parses the source once, collects every heading with its
// generated anchor id, and renders the same tree to HTML.
func (p *GoldmarkParser) RenderWithHeadings(markdown []byte, opts interfaces.ParseOptions) (*RenderResult, error) {
	engine := newGoldmarkEngine(mergeParseOptions(p.defaultOptions, opts))

	pctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	reader := text.NewReader(markdown)
	doc := engine.Parser().Parse(reader, parser.WithContext(pctx))

	headings, err := collectHeadings(doc, markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown headings: %w", err)
	}

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, markdown, doc); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}

	return &RenderResult{
		HTML:     buf.Bytes(),
		Headings: headings,
	}, nil
}

func collectHeadings(doc ast.Node, source []byte) ([]interfaces.Heading, error) {
	var headings []interfaces.Heading

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		anchor := ""
		if id, found := heading.AttributeString("id"); found {
			if raw, ok := id.([]byte); ok {
				anchor = string(raw)
			} else if str, ok := id.(string); ok {
				anchor = str
			}
		}

		headings = append(headings, interfaces.Heading{
			Level:    heading.Level,
			Text:     nodeText(heading, source),
			AnchorID: anchor,
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
		case *ast.String:
			sb.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// parse options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Treat both SafeMode and Sanitize as signals to avoid emitting raw HTML.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}
