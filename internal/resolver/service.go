package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// Deps are the collaborators a Service is built from. Store may be nil when the
// semantic property store is not installed; every resolution then fails with
// sflink.ErrPropertyStoreUnavailable.
type Deps struct {
	Store      sflink.PropertyStore
	Categories sflink.CategoryIndex
	Pages      sflink.PageSource
	Queue      sflink.JobQueue
	Printer    sflink.FormPrinter
	Titles     sflink.TitleResolver
	Localizer  sflink.Localizer
	Logger     sflink.Logger

	FormEditPath string
	ArticlePath  string
}

// Service wires the resolvers together. Safe for concurrent use as long as the
// collaborators are.
type Service struct {
	titles     sflink.TitleResolver
	categories sflink.CategoryIndex
	editLinks  *EditLinkResolver
	articles   *ArticleFormResolver
	creator    *LinkedPageCreator
	brokenLink *BrokenLinkHook
	links      *LinkRenderer
}

// NewService builds a Service from deps.
func NewService(deps Deps) *Service {
	lookup := NewFormLookup(deps.Store, deps.Titles, deps.Localizer, deps.Logger)
	urls := NewURLBuilder(deps.FormEditPath, deps.Titles)
	editLinks := NewEditLinkResolver(deps.Store, lookup, urls, deps.Titles, deps.Localizer, deps.Logger)
	creator := NewLinkedPageCreator(deps.Store, lookup, deps.Pages, deps.Printer, deps.Queue, deps.Titles, deps.Logger)

	return &Service{
		titles:     deps.Titles,
		categories: deps.Categories,
		editLinks:  editLinks,
		articles:   NewArticleFormResolver(lookup, deps.Categories, deps.Titles, deps.Localizer, deps.Logger),
		creator:    creator,
		brokenLink: NewBrokenLinkHook(creator, editLinks),
		links:      NewLinkRenderer(deps.ArticlePath, deps.Titles),
	}
}

// ParseTitle parses "Namespace:Name" text into a page identity.
func (s *Service) ParseTitle(text string) (sflink.PageIdentity, error) {
	page, ok := s.titles.NewFromText(text)
	if !ok {
		return sflink.PageIdentity{}, fmt.Errorf("%w: %q", sflink.ErrInvalidTitle, text)
	}
	return page, nil
}

func (s *Service) FormEditLink(ctx context.Context, target sflink.PageIdentity) (string, bool, error) {
	return s.editLinks.FormEditLink(ctx, target)
}

func (s *Service) ArticleForms(ctx context.Context, page sflink.PageIdentity) ([]string, error) {
	return s.articles.Forms(ctx, page)
}

func (s *Service) CreateLinkedPage(ctx context.Context, viewed, target sflink.PageIdentity, userID int64) (bool, error) {
	return s.creator.CreateLinkedPage(ctx, viewed, target, userID)
}

func (s *Service) BrokenLinkHref(ctx context.Context, link Link) (string, error) {
	return s.brokenLink.Href(ctx, link)
}

func (s *Service) LinkText(ns sflink.Namespace, name, text string) string {
	return s.links.LinkText(ns, name, text)
}

// Categories lists the categories of page in store order.
func (s *Service) Categories(ctx context.Context, page sflink.PageIdentity) ([]string, error) {
	return s.categories.CategoriesOf(ctx, page)
}

// AllCategories lists every category used on the wiki.
func (s *Service) AllCategories(ctx context.Context) ([]string, error) {
	return s.categories.AllCategories(ctx)
}
