package pagecraft_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joetifa2003/pagecraft"
)

func TestPage_ChainingReturnsSameInstance(t *testing.T) {
	p := newRenderer(t).NewPage()

	got := p.
		SetTitle("Home").
		SetAuthor("Jo").
		SetMetaTag("description", "x").
		AddContent("<p>one</p>").
		ClearMetaTags()

	assert.Same(t, p, got)
}

func TestPage_MetaLastWriteWins(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		SetMetaTag("description", "first").
		SetMetaTag("robots", "index").
		SetMetaTag("description", "second").
		Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, `<meta name="description" content="second">`)
	assert.NotContains(t, doc, `content="first"`)

	// The rewritten tag keeps its original position, before robots.
	assert.Less(t,
		strings.Index(doc, `name="description"`),
		strings.Index(doc, `name="robots"`),
	)
}

func TestPage_BodyContentAccumulates(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		AddContent("<p>one</p>").
		AddContent("<p>two</p>").
		Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, "<p>one</p><p>two</p>")
}

func TestPage_BodyContentIsVerbatim(t *testing.T) {
	raw := `<div onclick="alert('x')">&amp; raw</div>`

	doc, err := newRenderer(t).NewPage().AddContent(raw).Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, raw)
}

func TestPage_EmptyStyleSheetURL(t *testing.T) {
	p := newRenderer(t).NewPage().
		SetTitle("Home").
		AddStyleSheet("", "all", false)

	var verr *pagecraft.ValidationError
	require.ErrorAs(t, p.Err(), &verr)
	assert.Equal(t, "stylesheet URL", verr.Field)

	_, err := p.Fetch()
	assert.ErrorAs(t, err, &verr)
}

func TestPage_EmptyScriptURL(t *testing.T) {
	p := newRenderer(t).NewPage().AddScript("", pagecraft.PositionHead, false)

	var verr *pagecraft.ValidationError
	require.ErrorAs(t, p.Err(), &verr)
	assert.Equal(t, "script URL", verr.Field)
}

func TestPage_FirstValidationErrorSticks(t *testing.T) {
	p := newRenderer(t).NewPage().
		AddStyleSheet("", "all", false).
		AddScript("", pagecraft.PositionFooter, false)

	var verr *pagecraft.ValidationError
	require.ErrorAs(t, p.Err(), &verr)
	assert.Equal(t, "stylesheet URL", verr.Field)
}

func TestPage_ScriptPositions(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		AddScript("https://a.com/head.js", pagecraft.PositionHead, false).
		AddScript("https://a.com/foot.js", pagecraft.PositionFooter, false).
		AddScript("https://a.com/default.js", "", false).
		Fetch()
	require.NoError(t, err)

	headEnd := strings.Index(doc, "</head>")
	require.Greater(t, headEnd, 0)

	assert.Contains(t, doc[:headEnd], "head.js")
	assert.NotContains(t, doc[:headEnd], "foot.js")
	assert.Contains(t, doc[headEnd:], "foot.js")
	// Unrecognized position lands in the footer.
	assert.Contains(t, doc[headEnd:], "default.js")
}

func TestPage_ClearCollections(t *testing.T) {
	p := newRenderer(t).NewPage().
		AddStyleSheet("https://a.com/s.css", "", false).
		AddScript("https://a.com/head.js", pagecraft.PositionHead, false).
		AddScript("https://a.com/foot.js", pagecraft.PositionFooter, false).
		SetOpenGraph("title", "Home").
		SetTwitterCard("card", "summary")

	p.ClearStyleSheets().ClearScripts().ClearOpenGraph().ClearTwitterCard()

	doc, err := p.Fetch()
	require.NoError(t, err)
	assert.NotContains(t, doc, "stylesheet")
	assert.NotContains(t, doc, "<script")
	assert.NotContains(t, doc, "og:")
	assert.NotContains(t, doc, "twitter:")
}

func TestPage_OpenGraphImageNormalized(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		SetOpenGraph("image", "http://x.com/i.jpg").
		Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, `<meta property="og:image" content="//x.com/i.jpg">`)
	assert.NotContains(t, doc, "http://x.com/i.jpg")
}

func TestPage_AddMarkdown(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		AddMarkdown("# Hello\n\nSome *emphasis*.\n").
		Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, "<h1>Hello</h1>")
	assert.Contains(t, doc, "<em>emphasis</em>")
}

func TestPage_AddUntrustedContent(t *testing.T) {
	doc, err := newRenderer(t).NewPage().
		AddUntrustedContent(`<p>fine</p><script>alert("x")</script>`).
		Fetch()
	require.NoError(t, err)

	assert.Contains(t, doc, "<p>fine</p>")
	assert.NotContains(t, doc, "alert(")
}

func TestPage_StringAliasesFetch(t *testing.T) {
	p := newRenderer(t).NewPage().SetTitle("Home")

	doc, err := p.Fetch()
	require.NoError(t, err)
	assert.Equal(t, doc, p.String())
}

func TestPage_StringOnErrorReturnsEmpty(t *testing.T) {
	p := newRenderer(t).NewPage().AddStyleSheet("", "", false)

	assert.Empty(t, p.String())
	assert.Error(t, p.Err())
}

func TestPage_RenderDoesNotConsumeState(t *testing.T) {
	p := newRenderer(t).NewPage().
		SetMetaTag("description", "x").
		AddContent("<p>body</p>")

	_, err := p.Fetch()
	require.NoError(t, err)

	// A later mutation still builds on the accumulated state.
	doc, err := p.AddContent("<p>more</p>").Fetch()
	require.NoError(t, err)
	assert.Contains(t, doc, "<p>body</p><p>more</p>")
	assert.Contains(t, doc, `<meta name="description" content="x">`)
}

func TestValidationError_Message(t *testing.T) {
	err := &pagecraft.ValidationError{Field: "stylesheet URL", Reason: "must not be empty"}
	assert.Equal(t, "pagecraft: invalid stylesheet URL: must not be empty", err.Error())
}
