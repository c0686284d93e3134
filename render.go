package pagecraft

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/mergemap"

	"github.com/joetifa2003/pagecraft/internal/pool"
)

// Logger is the minimal structured-logging surface the renderer needs.
// *slog.Logger satisfies it.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

// Renderer turns a Page into a complete HTML document string. It is
// immutable after New and safe for concurrent Render calls.
type Renderer struct {
	logger        Logger
	clock         func() time.Time
	fallbackTitle func() string
	doctype       Doctype

	charset   string
	viewport  string
	lang      string
	separator string
	seedMeta  [][2]string
}

type rendererConfig struct {
	logger        Logger
	clock         func() time.Time
	fallbackTitle func() string
	doctype       Doctype
	lang          string
	defaults      map[string]any
}

type RendererOption func(config *rendererConfig) error

func WithLogger(logger Logger) RendererOption {
	return func(config *rendererConfig) error {
		config.logger = logger
		return nil
	}
}

// WithClock injects the time source used for the generation-timestamp
// comment and for Expires computation. Defaults to time.Now.
func WithClock(clock func() time.Time) RendererOption {
	return func(config *rendererConfig) error {
		config.clock = clock
		return nil
	}
}

// WithFallbackTitle injects the source consulted for <title> when a page has
// no title configured, typically the current request path or script name.
func WithFallbackTitle(source func() string) RendererOption {
	return func(config *rendererConfig) error {
		config.fallbackTitle = source
		return nil
	}
}

func WithDoctype(d Doctype) RendererOption {
	return func(config *rendererConfig) error {
		if _, ok := doctypeDeclarations[d]; !ok {
			return fmt.Errorf("pagecraft: unknown doctype %d", d)
		}
		config.doctype = d
		return nil
	}
}

// WithLang sets the <html lang> attribute, overriding any "lang" default.
func WithLang(lang string) RendererOption {
	return func(config *rendererConfig) error {
		config.lang = lang
		return nil
	}
}

// WithDefaults deep-merges site-wide defaults over the built-ins. Recognized
// keys: "charset", "viewport", "lang", "separator", and "meta" (a nested map
// of meta tags every new Page is seeded with).
func WithDefaults(defaults map[string]any) RendererOption {
	return func(config *rendererConfig) error {
		config.defaults = defaults
		return nil
	}
}

func builtinDefaults() map[string]any {
	return map[string]any{
		"charset":   "utf-8",
		"viewport":  "width=device-width, initial-scale=1",
		"lang":      "en",
		"separator": " :: ",
		"meta":      map[string]any{},
	}
}

// New creates a Renderer.
func New(options ...RendererOption) (*Renderer, error) {
	config := &rendererConfig{}

	for _, option := range options {
		if err := option(config); err != nil {
			return nil, err
		}
	}

	defaults := builtinDefaults()
	if config.defaults != nil {
		defaults = mergemap.Merge(defaults, config.defaults)
	}

	r := &Renderer{
		logger:        config.logger,
		clock:         config.clock,
		fallbackTitle: config.fallbackTitle,
		doctype:       config.doctype,
		charset:       stringDefault(defaults, "charset"),
		viewport:      stringDefault(defaults, "viewport"),
		lang:          stringDefault(defaults, "lang"),
		separator:     stringDefault(defaults, "separator"),
	}

	if config.lang != "" {
		r.lang = config.lang
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.clock == nil {
		r.clock = time.Now
	}

	// Seed meta tags are sorted by name: the defaults arrive as a plain
	// map, and every page must be seeded in the same order.
	if meta, ok := defaults["meta"].(map[string]any); ok {
		names := make([]string, 0, len(meta))
		for name := range meta {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			r.seedMeta = append(r.seedMeta, [2]string{name, fmt.Sprint(meta[name])})
		}
	}

	return r, nil
}

func stringDefault(defaults map[string]any, key string) string {
	if s, ok := defaults[key].(string); ok {
		return s
	}
	return ""
}

var renderBufPool = pool.New(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	func(b *bytes.Buffer) { b.Reset() },
)

// Render serializes the page in one pass. Section order is fixed; only the
// presence of optional fields varies the output. The only error is the
// page's sticky validation error.
func (r *Renderer) Render(p *Page) (string, error) {
	if p.err != nil {
		return "", p.err
	}

	buf := renderBufPool.Get()
	defer renderBufPool.Put(buf)

	r.writeDocument(buf, p)

	r.logger.LogAttrs(
		context.Background(), slog.LevelDebug,
		"document rendered",
		slog.Int("bytes", buf.Len()),
		slog.String("doctype", r.doctype.String()),
	)

	return buf.String(), nil
}

func (r *Renderer) writeDocument(buf *bytes.Buffer, p *Page) {
	// Void elements self-close only under the XHTML doctypes.
	void := ">\n"
	if r.doctype.xml() {
		void = " />\n"
	}

	buf.WriteString(r.doctype.declaration())
	buf.WriteByte('\n')
	if r.doctype.xml() {
		fmt.Fprintf(buf, "<html xmlns=\"http://www.w3.org/1999/xhtml\" lang=\"%s\">\n", html.EscapeString(r.lang))
	} else {
		fmt.Fprintf(buf, "<html lang=\"%s\">\n", html.EscapeString(r.lang))
	}
	buf.WriteString("<head>\n")

	if r.doctype == DoctypeHTML5 {
		fmt.Fprintf(buf, "<meta charset=\"%s\"", html.EscapeString(r.charset))
	} else {
		fmt.Fprintf(buf, "<meta http-equiv=\"Content-Type\" content=\"text/html; charset=%s\"", html.EscapeString(r.charset))
	}
	buf.WriteString(void)
	fmt.Fprintf(buf, "<meta name=\"viewport\" content=\"%s\"", html.EscapeString(r.viewport))
	buf.WriteString(void)

	if p.author != "" {
		fmt.Fprintf(buf, "<meta name=\"author\" content=\"%s\"", html.EscapeString(p.author))
		buf.WriteString(void)
	}

	for _, s := range p.headScripts {
		writeScript(buf, s)
	}

	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(r.pageTitle(p)))

	p.meta.All(func(name, content string) bool {
		fmt.Fprintf(buf, "<meta name=\"%s\" content=\"%s\"", html.EscapeString(name), html.EscapeString(content))
		buf.WriteString(void)
		return true
	})

	if p.canonical != "" {
		fmt.Fprintf(buf, "<link rel=\"canonical\" href=\"%s\"", html.EscapeString(p.canonical))
		buf.WriteString(void)
	}
	if p.favicon != "" {
		fmt.Fprintf(buf, "<link rel=\"icon\" href=\"%s\"", html.EscapeString(p.favicon))
		buf.WriteString(void)
	}

	for _, s := range p.styles {
		fmt.Fprintf(buf, "<link rel=\"stylesheet\" href=\"%s\" media=\"%s\"", html.EscapeString(s.URL), html.EscapeString(s.Media))
		if s.Preload {
			buf.WriteString(" data-preload")
		}
		buf.WriteString(void)
	}

	p.openGraph.All(func(property, content string) bool {
		fmt.Fprintf(buf, "<meta property=\"og:%s\" content=\"%s\"", html.EscapeString(property), html.EscapeString(content))
		buf.WriteString(void)
		return true
	})

	p.twitter.All(func(name, content string) bool {
		fmt.Fprintf(buf, "<meta name=\"twitter:%s\" content=\"%s\"", html.EscapeString(name), html.EscapeString(content))
		buf.WriteString(void)
		return true
	})

	if p.metaComment != "" {
		fmt.Fprintf(buf, "<!-- %s -->\n", escapeComment(p.metaComment))
	}

	buf.WriteString("</head>\n")

	buf.WriteString("<body")
	if p.bodyID != "" {
		fmt.Fprintf(buf, " id=\"%s\"", html.EscapeString(p.bodyID))
	}
	if p.bodyClass != "" {
		fmt.Fprintf(buf, " class=\"%s\"", html.EscapeString(p.bodyClass))
	}
	buf.WriteString(">\n")

	// Body content is trusted markup, emitted verbatim.
	buf.WriteString(p.body.String())

	for _, s := range p.footerScripts {
		writeScript(buf, s)
	}

	fmt.Fprintf(buf, "<!-- rendered %s -->\n", r.clock().UTC().Format(http.TimeFormat))

	buf.WriteString("</body>\n</html>\n")
}

// pageTitle joins title and suffix with the separator current at render
// time, falling back to the injected title source when no title was set.
func (r *Renderer) pageTitle(p *Page) string {
	title := p.title
	if title == "" && r.fallbackTitle != nil {
		title = r.fallbackTitle()
	}
	if p.titleSuffix != "" {
		title = title + p.titleSep + p.titleSuffix
	}
	return title
}

func writeScript(buf *bytes.Buffer, s Script) {
	if s.Async {
		fmt.Fprintf(buf, "<script src=\"%s\" async></script>\n", html.EscapeString(s.URL))
		return
	}
	fmt.Fprintf(buf, "<script src=\"%s\"></script>\n", html.EscapeString(s.URL))
}

var commentTerminator = strings.NewReplacer("-->", "--&gt;")

// escapeComment neutralizes comment terminators inside the payload.
func escapeComment(comment string) string {
	return commentTerminator.Replace(comment)
}
