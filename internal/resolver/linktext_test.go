package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/sflink/pkg/sflink"
)

func TestLinkText(t *testing.T) {
	f := newFixture(t, "en")
	r := NewLinkRenderer("/wiki/$1", f.titles)

	tests := []struct {
		name     string
		ns       sflink.Namespace
		pageName string
		text     string
		want     string
	}{
		{
			name:     "page text used when text empty",
			ns:       sflink.NSMain,
			pageName: "new york",
			want:     `<a href="/wiki/New_york" title="New york">New york</a>`,
		},
		{
			name:     "namespaced page",
			ns:       sflink.NSForm,
			pageName: "City",
			text:     "the city form",
			want:     `<a href="/wiki/Form:City" title="Form:City">the city form</a>`,
		},
		{
			name:     "markup stripped from text",
			ns:       sflink.NSCategory,
			pageName: "Cities",
			text:     "<b>Big</b> cities",
			want:     `<a href="/wiki/Category:Cities" title="Category:Cities">Big cities</a>`,
		},
		{
			name:     "ampersand escaped in href",
			ns:       sflink.NSMain,
			pageName: "Q&A",
			text:     "FAQ",
			want:     `<a href="/wiki/Q%26A" title="Q&amp;A">FAQ</a>`,
		},
		{
			name:     "unresolvable title returned as text",
			ns:       sflink.NSMain,
			pageName: "a|b",
			want:     ":a|b",
		},
		{
			name:     "unresolvable namespaced title",
			ns:       sflink.NSTemplate,
			pageName: "",
			want:     "Template:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.LinkText(tt.ns, tt.pageName, tt.text))
		})
	}
}

func TestLinkRenderer_URL(t *testing.T) {
	f := newFixture(t, "en")

	r := NewLinkRenderer("/index.php?title=$1", f.titles)
	assert.Equal(t, "/index.php?title=Help:Forms", r.URL(sflink.Page(sflink.NSHelp, "forms")))

	r = NewLinkRenderer("", f.titles)
	assert.Equal(t, "/wiki/Help:Forms", r.URL(sflink.Page(sflink.NSHelp, "forms")))
}
