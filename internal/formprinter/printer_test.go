package formprinter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sflink/pkg/sflink"
)

const countryForm = `This form creates countries.
{{{for template|Country|label=Country}}}
{| class="formtable"
! Continent: || {{{field|Continent|default=Europe}}}
! Capital: || {{{field|Capital}}}
! Name: || {{{field|Name|default={{PAGENAME}}}}}
|}
{{{end template}}}
{{{for template|Footer}}}{{{end template}}}
{{{standard input|save}}}`

func TestParse(t *testing.T) {
	def, err := Parse(countryForm, "France")
	require.NoError(t, err)

	want := Definition{
		PageName: "France",
		Templates: []Template{
			{Name: "Country", Fields: []Field{
				{Name: "Continent", Default: "Europe"},
				{Name: "Capital"},
				{Name: "Name", Default: "France"},
			}},
			{Name: "Footer"},
		},
	}
	if diff := cmp.Diff(want, def, cmpopts.IgnoreUnexported(Field{})); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		definition string
	}{
		{"unclosed", "{{{for template|A}}}{{{field|x}}}"},
		{"nested", "{{{for template|A}}}{{{for template|B}}}{{{end template}}}{{{end template}}}"},
		{"stray end", "{{{end template}}}"},
		{"no name", "{{{for template}}}{{{end template}}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.definition, "X")
			assert.ErrorIs(t, err, ErrMalformedForm)
		})
	}
}

func TestParse_FieldOutsideTemplateIgnored(t *testing.T) {
	def, err := Parse("{{{field|Loose}}}{{{for template|T}}}{{{field|}}}{{{end template}}}", "X")
	require.NoError(t, err)
	require.Len(t, def.Templates, 1)
	assert.Empty(t, def.Templates[0].Fields)
}

func TestPrinter_Print(t *testing.T) {
	out, err := New().Print(context.Background(), countryForm, sflink.PlaceholderPageName)
	require.NoError(t, err)

	assert.Equal(t, "{{Country\n|Continent=Europe\n|Capital=\n|Name="+sflink.PlaceholderPageName+"\n}}\n{{Footer\n}}\n", out.DataText)
	assert.Contains(t, out.FormHTML, `<fieldset class="sf-template" data-template="Country">`)
	assert.Contains(t, out.FormHTML, `name="Country[Continent]" value="Europe"`)
	assert.Contains(t, out.FormHTML, `name="Country[Capital]" value=""`)
}

func TestPrinter_PrintEscapesHTML(t *testing.T) {
	out, err := New().Print(context.Background(), `{{{for template|T}}}{{{field|F|default="><script>}}}{{{end template}}}`, "P")
	require.NoError(t, err)

	assert.NotContains(t, out.FormHTML, "<script>")
	assert.Equal(t, "{{T\n|F=\"><script>\n}}\n", out.DataText)
}

func TestPrinter_PrintEmpty(t *testing.T) {
	out, err := New().Print(context.Background(), "", "P")
	require.NoError(t, err)
	assert.Empty(t, out.DataText)
	assert.Contains(t, out.FormHTML, "<form")
}

func TestPrinter_PrintCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Print(ctx, countryForm, "P")
	assert.ErrorIs(t, err, context.Canceled)
}
