// Package render turns markdown-mode post content into HTML with syntax
// highlighted code blocks. Rich-HTML mode bypasses this package entirely.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// HighlightCode renders a fenced code block with the given chroma style.
// On any tokenization failure the raw code is returned untouched.
func HighlightCode(code, language, syntaxTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(syntaxTheme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.TabWidth(4))

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// Markdown renders markdown content to HTML, highlighting fenced code
// blocks with the given syntax theme.
func Markdown(md []byte, syntaxTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				var lang string
				if info := code.Info; info != nil {
					lang = string(info)
				}
				highlighted := HighlightCode(string(code.Literal), lang, syntaxTheme)
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", highlighted)
				return ast.GoToNext, true
			}

			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.AutoHeadingIDs | parser.BackslashLineBreak | parser.DefinitionLists |
			parser.Footnotes | parser.OrderedListStart | parser.Attributes,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(opts))
}

// Mutex to protect the check-render-set operation in MarkdownCached
var renderCacheMutex sync.Mutex

// MarkdownCached renders through the content cache, keyed by content hash
// and theme.
func MarkdownCached(md []byte, contentHash, syntaxTheme string) []byte {
	if contentHash == "" {
		renderLogger.Warn().Msg("Content hash is empty, skipping cache check")
		return Markdown(md, syntaxTheme)
	}

	if cached, found := cache.GetRenderedContent(contentHash, syntaxTheme); found {
		return cached
	}

	renderCacheMutex.Lock()
	defer renderCacheMutex.Unlock()

	html := Markdown(md, syntaxTheme)
	cache.SetRenderedContent(contentHash, syntaxTheme, html)
	return html
}

// ContentHTML interprets post content per the configured content format:
// rich-HTML content passes through untouched, markdown content goes
// through the cached markdown pipeline.
func ContentHTML(content string) template.HTML {
	if config.AppConfig != nil && config.AppConfig.Content.Format == "markdown" {
		theme := config.AppConfig.Content.SyntaxTheme
		return template.HTML(MarkdownCached([]byte(content), util.ContentHashString(content), theme))
	}
	return template.HTML(content)
}
