package resolver

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// LinkRenderer renders HTML links to wiki pages.
type LinkRenderer struct {
	articlePath string
	titles      sflink.TitleResolver
	policy      *bluemonday.Policy
}

// NewLinkRenderer creates a LinkRenderer. articlePath contains "$1" where the URL
// title goes, e.g. "/wiki/$1".
func NewLinkRenderer(articlePath string, titles sflink.TitleResolver) *LinkRenderer {
	if titles == nil {
		panic("titles cannot be nil")
	}
	if articlePath == "" {
		articlePath = sflink.DefaultArticlePath
	}
	return &LinkRenderer{
		articlePath: articlePath,
		titles:      titles,
		policy:      bluemonday.StrictPolicy(),
	}
}

// LinkText returns an anchor for name in ns. An empty text uses the page text.
// When the title cannot be resolved, the unresolved "Ns:Name" text is returned as is.
func (r *LinkRenderer) LinkText(ns sflink.Namespace, name, text string) string {
	inText := r.titles.NsText(ns) + ":" + name
	page, ok := r.titles.NewFromText(inText)
	if !ok {
		return inText
	}
	if text == "" {
		text = r.titles.Text(page)
	}
	return fmt.Sprintf(`<a href="%s" title="%s">%s</a>`,
		html.EscapeString(r.URL(page)),
		html.EscapeString(r.titles.TitleString(page)),
		r.policy.Sanitize(text))
}

// URL returns the article URL of page.
func (r *LinkRenderer) URL(page sflink.PageIdentity) string {
	return strings.Replace(r.articlePath, "$1", r.titles.TitleURLString(page), 1)
}
