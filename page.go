package pagecraft

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joetifa2003/pagecraft/internal/ordmap"
)

// Position selects where an added script is emitted in the document.
type Position string

const (
	PositionHead   Position = "header"
	PositionFooter Position = "footer"
)

// StyleSheet is a configured stylesheet link.
type StyleSheet struct {
	URL     string
	Media   string
	Preload bool
}

// Script is a configured script tag.
type Script struct {
	URL   string
	Async bool
}

// Page accumulates the logical attributes of one HTML document: title, body
// attributes, meta tags, social-card data, assets and body markup. Every
// mutator returns the same Page so calls chain.
//
// A Page belongs to the Renderer that created it and to a single logical
// request; it is not safe for concurrent mutation. Rendering never mutates
// the Page, so an unchanged Page renders to identical output every time.
type Page struct {
	renderer *Renderer

	title       string
	titleSuffix string
	titleSep    string

	bodyID    string
	bodyClass string

	author      string
	metaComment string
	canonical   string
	favicon     string

	meta      *ordmap.Map[string, string]
	openGraph *ordmap.Map[string, string]
	twitter   *ordmap.Map[string, string]

	styles        []StyleSheet
	headScripts   []Script
	footerScripts []Script

	body strings.Builder

	err error
}

// NewPage creates an empty Page bound to the renderer, seeded with the
// renderer's default meta tags and title separator.
func (r *Renderer) NewPage() *Page {
	p := &Page{
		renderer:  r,
		titleSep:  r.separator,
		meta:      ordmap.New[string, string](),
		openGraph: ordmap.New[string, string](),
		twitter:   ordmap.New[string, string](),
	}
	for _, kv := range r.seedMeta {
		p.meta.Set(kv[0], kv[1])
	}
	return p
}

// fail records the first validation failure; later ones are dropped so the
// earliest cause is what surfaces.
func (p *Page) fail(err error) *Page {
	if p.err == nil {
		p.err = err
	}
	return p
}

// Err returns the sticky validation error recorded by a mutator, if any.
func (p *Page) Err() error {
	return p.err
}

func (p *Page) SetTitle(title string) *Page {
	p.title = title
	return p
}

// SetTitleSuffix sets the suffix appended to the title. The join happens at
// render time with whatever separator is current then, so changing the
// separator after setting the suffix still takes effect.
func (p *Page) SetTitleSuffix(suffix string) *Page {
	p.titleSuffix = suffix
	return p
}

func (p *Page) SetTitleSeparator(sep string) *Page {
	p.titleSep = sep
	return p
}

func (p *Page) SetBodyID(id string) *Page {
	p.bodyID = id
	return p
}

func (p *Page) SetBodyClass(class string) *Page {
	p.bodyClass = class
	return p
}

func (p *Page) SetAuthor(author string) *Page {
	p.author = author
	return p
}

// SetMetaComment sets a free-form comment emitted inside <head>. Any "-->"
// in the payload is escaped at render time so it cannot terminate the
// comment early.
func (p *Page) SetMetaComment(comment string) *Page {
	p.metaComment = comment
	return p
}

// SetMetaTag sets a named meta tag. Repeated writes to the same name replace
// the content; emission keeps first-insertion order.
func (p *Page) SetMetaTag(name, content string) *Page {
	p.meta.Set(name, content)
	return p
}

// SetOpenGraph sets an Open Graph property by its bare key ("image" emits
// property="og:image"). Image and url values are stored protocol-relative.
func (p *Page) SetOpenGraph(property, content string) *Page {
	if property == "image" || property == "url" {
		content = protocolRelative(content)
	}
	p.openGraph.Set(property, content)
	return p
}

// SetTwitterCard sets a Twitter Card property by its bare key ("image" emits
// name="twitter:image"). Image values are stored protocol-relative.
func (p *Page) SetTwitterCard(name, content string) *Page {
	if name == "image" {
		content = protocolRelative(content)
	}
	p.twitter.Set(name, content)
	return p
}

// SetCanonical sets the canonical URL, stored protocol-relative.
func (p *Page) SetCanonical(url string) *Page {
	p.canonical = protocolRelative(url)
	return p
}

// SetFavicon sets the favicon URL, stored protocol-relative.
func (p *Page) SetFavicon(url string) *Page {
	p.favicon = protocolRelative(url)
	return p
}

// AddStyleSheet appends a stylesheet link. An empty media defaults to "all".
// An empty URL records a *ValidationError.
func (p *Page) AddStyleSheet(url, media string, preload bool) *Page {
	if url == "" {
		return p.fail(&ValidationError{Field: "stylesheet URL", Reason: "must not be empty"})
	}
	if media == "" {
		media = "all"
	}
	p.styles = append(p.styles, StyleSheet{
		URL:     protocolRelative(url),
		Media:   media,
		Preload: preload,
	})
	return p
}

// AddScript appends a script tag. The position is decided here and not
// revisited: PositionHead places it in <head>, anything else lands at the
// end of <body>. An empty URL records a *ValidationError.
func (p *Page) AddScript(url string, pos Position, async bool) *Page {
	if url == "" {
		return p.fail(&ValidationError{Field: "script URL", Reason: "must not be empty"})
	}
	s := Script{URL: protocolRelative(url), Async: async}
	if pos == PositionHead {
		p.headScripts = append(p.headScripts, s)
	} else {
		p.footerScripts = append(p.footerScripts, s)
	}
	return p
}

// AddContent appends raw markup to the body. Content accumulates across
// calls and is emitted verbatim: the caller vouches for it. Use
// AddUntrustedContent for anything user-supplied.
func (p *Page) AddContent(html string) *Page {
	p.body.WriteString(html)
	return p
}

func (p *Page) ClearStyleSheets() *Page {
	p.styles = nil
	return p
}

func (p *Page) ClearScripts() *Page {
	p.headScripts = nil
	p.footerScripts = nil
	return p
}

func (p *Page) ClearMetaTags() *Page {
	p.meta.Clear()
	return p
}

// ClearMetaTag removes a single meta tag; removing an unknown name is a
// no-op.
func (p *Page) ClearMetaTag(name string) *Page {
	p.meta.Delete(name)
	return p
}

func (p *Page) ClearOpenGraph() *Page {
	p.openGraph.Clear()
	return p
}

func (p *Page) ClearTwitterCard() *Page {
	p.twitter.Clear()
	return p
}

// Fetch renders the page to a document string. The only possible error is
// the Page's sticky validation error.
func (p *Page) Fetch() (string, error) {
	return p.renderer.Render(p)
}

// String is the fmt.Stringer form of Fetch. A render error is logged through
// the renderer's logger and yields an empty string.
func (p *Page) String() string {
	doc, err := p.Fetch()
	if err != nil {
		p.renderer.logger.LogAttrs(
			context.Background(), slog.LevelError,
			"page render failed",
			slog.String("err", err.Error()),
		)
		return ""
	}
	return doc
}

// protocolRelative strips an explicit http/https scheme, leaving the
// remainder untouched, so the browser inherits the current scheme.
func protocolRelative(url string) string {
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		return "//" + rest
	}
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return "//" + rest
	}
	return url
}
