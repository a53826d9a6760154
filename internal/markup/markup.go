// Package markup converts the model's lightweight markdown output into
// sanitized display HTML. Model output is untrusted: any raw HTML it emits
// is stripped by an explicit allow-list policy.
package markup

import (
	"html"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday"
)

// Matches the original renderer setup: fenced code blocks plus hard line
// breaks so single newlines become <br/>.
const markdownExtensions = blackfriday.EXTENSION_FENCED_CODE |
	blackfriday.EXTENSION_HARD_LINE_BREAK |
	blackfriday.EXTENSION_NO_INTRA_EMPHASIS

var displayPolicy = newDisplayPolicy()

var stripPolicy = bluemonday.StrictPolicy()

// newDisplayPolicy enumerates exactly the tags the renderer can emit for
// the constrained markdown dialect; everything else is removed.
func newDisplayPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre",
		"h1", "h2", "h3", "h4",
		"blockquote",
	)
	return p
}

// ToDisplayHTML renders raw markdown to sanitized HTML. It never fails: if
// the renderer panics the original text is returned unchanged.
func ToDisplayHTML(raw string) (out string) {
	out = raw
	defer func() {
		if r := recover(); r != nil {
			slog.Error("markdown conversion panicked, returning raw text", "panic", r)
			out = raw
		}
	}()

	renderer := blackfriday.HtmlRenderer(blackfriday.HTML_USE_XHTML, "", "")
	rendered := blackfriday.Markdown([]byte(raw), renderer, markdownExtensions)
	return displayPolicy.Sanitize(string(rendered))
}

// StripTags reduces display markup back to plain text, used when replaying
// stored answers into the model's history context.
func StripTags(htmlText string) string {
	return html.UnescapeString(stripPolicy.Sanitize(htmlText))
}
