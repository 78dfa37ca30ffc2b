package resolver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// URLBuilder builds Special:FormEdit URLs. Pure; safe for concurrent use.
type URLBuilder struct {
	formEditPath string
	titles       sflink.TitleResolver
}

// NewURLBuilder creates a URLBuilder rooted at formEditPath, e.g. "/wiki/Special:FormEdit".
func NewURLBuilder(formEditPath string, titles sflink.TitleResolver) *URLBuilder {
	if titles == nil {
		panic("titles cannot be nil")
	}
	if formEditPath == "" {
		formEditPath = sflink.DefaultFormEditPath
	}
	return &URLBuilder{
		formEditPath: strings.TrimSuffix(formEditPath, "/"),
		titles:       titles,
	}
}

// Request combines resolved forms into an edit request. ok is false when both
// lists are empty.
func (b *URLBuilder) Request(target sflink.PageIdentity, defaultForms, alternateForms []string) (req sflink.FormEditRequest, ok bool) {
	req = sflink.FormEditRequest{
		Target:         target,
		AlternateForms: alternateForms,
	}
	if len(defaultForms) > 0 {
		req.PrimaryForm = defaultForms[0]
		req.HasPrimaryForm = true
	}
	if req.IsEmpty() {
		return sflink.FormEditRequest{}, false
	}
	return req, true
}

// URL renders req as a local URL:
//
//	{formEditPath}[/{primary form}]/{target}[?alt_form[0]=A&alt_form[1]=B...]
func (b *URLBuilder) URL(req sflink.FormEditRequest) string {
	var sb strings.Builder
	sb.WriteString(b.formEditPath)
	if req.HasPrimaryForm {
		sb.WriteString("/")
		sb.WriteString(b.titles.EncodeSegment(req.PrimaryForm))
	}
	sb.WriteString("/")
	sb.WriteString(b.titles.TitleURLString(req.Target))

	for i, alt := range req.AlternateForms {
		if i == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString("&")
		}
		fmt.Fprintf(&sb, "%s[%d]=%s", sflink.AltFormParam, i, url.QueryEscape(alt))
	}
	return sb.String()
}

// BuildEditURL returns the edit URL for target, or ok=false when no form applies.
func (b *URLBuilder) BuildEditURL(target sflink.PageIdentity, defaultForms, alternateForms []string) (string, bool) {
	req, ok := b.Request(target, defaultForms, alternateForms)
	if !ok {
		return "", false
	}
	return b.URL(req), true
}
