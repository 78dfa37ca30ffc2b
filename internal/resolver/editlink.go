package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// EditLinkResolver finds the form-edit URL for a page that links point at.
type EditLinkResolver struct {
	store     sflink.PropertyStore
	lookup    *FormLookup
	urls      *URLBuilder
	titles    sflink.TitleResolver
	localizer sflink.Localizer
	logger    sflink.Logger
}

// NewEditLinkResolver creates an EditLinkResolver. store may be nil.
func NewEditLinkResolver(store sflink.PropertyStore, lookup *FormLookup, urls *URLBuilder, titles sflink.TitleResolver, localizer sflink.Localizer, logger sflink.Logger) *EditLinkResolver {
	if lookup == nil {
		panic("lookup cannot be nil")
	}
	if urls == nil {
		panic("urls cannot be nil")
	}
	if titles == nil {
		panic("titles cannot be nil")
	}
	if localizer == nil {
		panic("localizer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &EditLinkResolver{
		store:     store,
		lookup:    lookup,
		urls:      urls,
		titles:    titles,
		localizer: localizer,
		logger:    logger,
	}
}

// FormEditLink returns the Special:FormEdit URL for target. ok is false when no
// form applies and ordinary editing should be used.
func (r *EditLinkResolver) FormEditLink(ctx context.Context, target sflink.PageIdentity) (url string, ok bool, err error) {
	req, ok, err := r.Resolve(ctx, target)
	if err != nil || !ok {
		return "", false, err
	}
	return r.urls.URL(req), true, nil
}

// Resolve returns the edit request for target. The first incoming property that
// designates a default or alternate form wins; otherwise the namespace default applies.
func (r *EditLinkResolver) Resolve(ctx context.Context, target sflink.PageIdentity) (sflink.FormEditRequest, bool, error) {
	if r.store == nil {
		return sflink.FormEditRequest{}, false, sflink.ErrPropertyStoreUnavailable
	}
	target, valid := r.titles.MakeTitleSafe(target.Namespace, target.Name)
	if !valid {
		return sflink.FormEditRequest{}, false, nil
	}

	incoming, err := r.store.IncomingProperties(ctx, target)
	if err != nil {
		return sflink.FormEditRequest{}, false, fmt.Errorf("failed to read incoming properties of %s: %w", r.titles.TitleString(target), err)
	}

	for _, prop := range incoming {
		subject := sflink.Page(sflink.NSProperty, prop.SubjectName)
		req, ok, err := r.formsFor(ctx, target, subject)
		if err != nil {
			return sflink.FormEditRequest{}, false, err
		}
		if ok {
			r.logger.Verbose("edit link: %s resolved via property %q", r.titles.TitleString(target), prop.SubjectName)
			return req, true, nil
		}
	}

	subject := namespaceSubject(target, r.titles, r.localizer)
	req, ok, err := r.formsFor(ctx, target, subject)
	if err != nil {
		return sflink.FormEditRequest{}, false, err
	}
	if ok {
		r.logger.Verbose("edit link: %s resolved via namespace %q", r.titles.TitleString(target), subject.Name)
	}
	return req, ok, nil
}

func (r *EditLinkResolver) formsFor(ctx context.Context, target, subject sflink.PageIdentity) (sflink.FormEditRequest, bool, error) {
	defaults, err := r.lookup.LookupForms(ctx, subject, sflink.PropDefaultForm)
	if err != nil {
		return sflink.FormEditRequest{}, false, err
	}
	alternates, err := r.lookup.LookupForms(ctx, subject, sflink.PropAlternateForm)
	if err != nil {
		return sflink.FormEditRequest{}, false, err
	}
	req, ok := r.urls.Request(target, defaults, alternates)
	return req, ok, nil
}
