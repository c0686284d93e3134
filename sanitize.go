package pagecraft

import (
	"github.com/microcosm-cc/bluemonday"
)

var untrustedPolicy = bluemonday.UGCPolicy()

// AddUntrustedContent sanitizes a user-supplied fragment before appending it
// to the body. AddContent stays verbatim on purpose (trusted-markup
// contract); this is the path for anything that crossed a trust boundary.
func (p *Page) AddUntrustedContent(html string) *Page {
	return p.AddContent(untrustedPolicy.Sanitize(html))
}
