package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// ArticleFormResolver resolves the forms offered when a page is edited directly.
type ArticleFormResolver struct {
	lookup     *FormLookup
	categories sflink.CategoryIndex
	titles     sflink.TitleResolver
	localizer  sflink.Localizer
	logger     sflink.Logger
}

// NewArticleFormResolver creates an ArticleFormResolver.
func NewArticleFormResolver(lookup *FormLookup, categories sflink.CategoryIndex, titles sflink.TitleResolver, localizer sflink.Localizer, logger sflink.Logger) *ArticleFormResolver {
	if lookup == nil {
		panic("lookup cannot be nil")
	}
	if categories == nil {
		panic("categories cannot be nil")
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
	return &ArticleFormResolver{
		lookup:     lookup,
		categories: categories,
		titles:     titles,
		localizer:  localizer,
		logger:     logger,
	}
}

// Forms returns the forms for page: its own default form, else the default forms of
// its categories, else the default form of its namespace. The last tier may be empty.
func (r *ArticleFormResolver) Forms(ctx context.Context, page sflink.PageIdentity) ([]string, error) {
	page, ok := r.titles.MakeTitleSafe(page.Namespace, page.Name)
	if !ok {
		return nil, nil
	}

	forms, err := r.lookup.LookupForms(ctx, page, sflink.PropPageDefaultForm)
	if err != nil {
		return nil, err
	}
	if len(forms) > 0 {
		r.logger.Verbose("article forms: %s has page default form %v", r.titles.TitleString(page), forms)
		return forms, nil
	}

	if page.Namespace != sflink.NSCategory {
		forms, err = r.categoryForms(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(forms) > 0 {
			r.logger.Verbose("article forms: %s has category default forms %v", r.titles.TitleString(page), forms)
			return forms, nil
		}
	}

	subject := namespaceSubject(page, r.titles, r.localizer)
	forms, err = r.lookup.LookupForms(ctx, subject, sflink.PropDefaultForm)
	if err != nil {
		return nil, err
	}
	r.logger.Verbose("article forms: %s namespace %q default forms %v", r.titles.TitleString(page), subject.Name, forms)
	return forms, nil
}

// categoryForms concatenates the default forms of every category of page, keeping
// duplicates.
func (r *ArticleFormResolver) categoryForms(ctx context.Context, page sflink.PageIdentity) ([]string, error) {
	categories, err := r.categories.CategoriesOf(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories of %s: %w", r.titles.TitleString(page), err)
	}

	var forms []string
	for _, category := range categories {
		found, err := r.lookup.LookupForms(ctx, sflink.Page(sflink.NSCategory, category), sflink.PropDefaultForm)
		if err != nil {
			return nil, err
		}
		forms = append(forms, found...)
	}
	return forms, nil
}
