// Package formprinter renders Semantic Forms definitions: the HTML form a user
// fills in, and the wikitext a page created from the form starts with.
package formprinter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// ErrMalformedForm is returned for definitions whose template blocks do not nest.
var ErrMalformedForm = errors.New("malformed form definition")

const pageNameVariable = "{{PAGENAME}}"

var formTemplate = template.Must(template.New("form").Parse(
	`<form method="post" class="sf-form" data-page="{{.PageName}}">
{{- range .Templates}}
<fieldset class="sf-template" data-template="{{.Name}}">
{{- range .Fields}}
<label>{{.Name}} <input type="text" name="{{.InputName}}" value="{{.Default}}"></label>
{{- end}}
</fieldset>
{{- end}}
</form>`))

// Field is a {{{field|Name|default=...}}} tag.
type Field struct {
	Name     string
	Default  string
	template string
}

// InputName is the form input name, Template[Field].
func (f Field) InputName() string {
	return f.template + "[" + f.Name + "]"
}

// Template is a {{{for template|Name}}} ... {{{end template}}} block.
type Template struct {
	Name   string
	Fields []Field
}

// Definition is a parsed form definition.
type Definition struct {
	PageName  string
	Templates []Template
}

// Printer implements sflink.FormPrinter. Stateless.
type Printer struct{}

func New() *Printer {
	return &Printer{}
}

// Print renders definition for a page called pageName. An empty definition
// yields an empty form and empty page text.
func (p *Printer) Print(ctx context.Context, definition, pageName string) (sflink.FormOutput, error) {
	if err := ctx.Err(); err != nil {
		return sflink.FormOutput{}, err
	}

	def, err := Parse(definition, pageName)
	if err != nil {
		return sflink.FormOutput{}, err
	}

	var html bytes.Buffer
	if err := formTemplate.Execute(&html, def); err != nil {
		return sflink.FormOutput{}, fmt.Errorf("failed to render form: %w", err)
	}
	return sflink.FormOutput{FormHTML: html.String(), DataText: def.DataText()}, nil
}

// Parse reads the template blocks and fields of a form definition. Text outside
// tags and unknown tags are ignored, as are fields outside a template block.
func Parse(definition, pageName string) (Definition, error) {
	def := Definition{PageName: pageName}
	var current *Template

	for _, body := range tags(definition) {
		parts := strings.Split(body, "|")
		tag := strings.TrimSpace(parts[0])

		switch tag {
		case "for template":
			if current != nil {
				return Definition{}, fmt.Errorf("%w: template %q opened inside %q", ErrMalformedForm, argument(parts), current.Name)
			}
			name := argument(parts)
			if name == "" {
				return Definition{}, fmt.Errorf("%w: 'for template' without a template name", ErrMalformedForm)
			}
			current = &Template{Name: name}

		case "end template":
			if current == nil {
				return Definition{}, fmt.Errorf("%w: 'end template' without 'for template'", ErrMalformedForm)
			}
			def.Templates = append(def.Templates, *current)
			current = nil

		case "field":
			if current == nil {
				continue
			}
			name := argument(parts)
			if name == "" {
				continue
			}
			current.Fields = append(current.Fields, Field{
				Name:     name,
				Default:  strings.ReplaceAll(option(parts, "default"), pageNameVariable, pageName),
				template: current.Name,
			})
		}
	}

	if current != nil {
		return Definition{}, fmt.Errorf("%w: template %q is never closed", ErrMalformedForm, current.Name)
	}
	return def, nil
}

// tags returns the bodies of the {{{...}}} tags in text. Braces inside a tag,
// such as {{PAGENAME}} in a default value, must balance.
func tags(text string) []string {
	var out []string
	for {
		start := strings.Index(text, "{{{")
		if start < 0 {
			return out
		}
		text = text[start+3:]

		depth, end := 3, -1
		for i := 0; i < len(text) && end < 0; i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
		}
		if end < 0 {
			return out
		}
		// end is the last of the three closing braces.
		out = append(out, text[:end-2])
		text = text[end+1:]
	}
}

// DataText returns the template calls a new page starts with.
func (d Definition) DataText() string {
	var sb strings.Builder
	for _, t := range d.Templates {
		sb.WriteString("{{")
		sb.WriteString(t.Name)
		sb.WriteString("\n")
		for _, f := range t.Fields {
			fmt.Fprintf(&sb, "|%s=%s\n", f.Name, f.Default)
		}
		sb.WriteString("}}\n")
	}
	return sb.String()
}

func argument(parts []string) string {
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func option(parts []string, key string) string {
	for _, part := range parts[1:] {
		k, v, found := strings.Cut(part, "=")
		if found && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var _ sflink.FormPrinter = (*Printer)(nil)
