package pagecraft

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// AddMarkdown converts a markdown fragment to HTML and appends it to the
// body. A conversion failure is recorded as the page's sticky error.
func (p *Page) AddMarkdown(src string) *Page {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return p.fail(fmt.Errorf("pagecraft: convert markdown: %w", err))
	}
	return p.AddContent(buf.String())
}
