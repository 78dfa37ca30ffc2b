package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sflink/internal/i18n"
	"github.com/vvka-141/sflink/internal/title"
	"github.com/vvka-141/sflink/pkg/sflink"
)

type valuesCall struct {
	subject    sflink.PageIdentity
	propertyID string
}

type mockStore struct {
	values        map[valuesCall][]sflink.PropertyValue
	incoming      map[sflink.PageIdentity][]sflink.IncomingProperty
	valuesErr     error
	incomingErr   error
	valuesCalls   []valuesCall
	incomingCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		values:   make(map[valuesCall][]sflink.PropertyValue),
		incoming: make(map[sflink.PageIdentity][]sflink.IncomingProperty),
	}
}

// forms asserts page-typed values of propertyID on subject.
func (m *mockStore) forms(subject sflink.PageIdentity, propertyID string, names ...string) {
	key := valuesCall{subject: subject, propertyID: propertyID}
	for _, name := range names {
		m.values[key] = append(m.values[key], sflink.PageValue(sflink.NSForm, name))
	}
}

func (m *mockStore) ValuesOf(_ context.Context, subject sflink.PageIdentity, propertyID string) ([]sflink.PropertyValue, error) {
	key := valuesCall{subject: subject, propertyID: propertyID}
	m.valuesCalls = append(m.valuesCalls, key)
	if m.valuesErr != nil {
		return nil, m.valuesErr
	}
	return m.values[key], nil
}

func (m *mockStore) IncomingProperties(_ context.Context, value sflink.PageIdentity) ([]sflink.IncomingProperty, error) {
	m.incomingCalls++
	if m.incomingErr != nil {
		return nil, m.incomingErr
	}
	return m.incoming[value], nil
}

func (m *mockStore) callsFor(propertyID string) int {
	n := 0
	for _, c := range m.valuesCalls {
		if c.propertyID == propertyID {
			n++
		}
	}
	return n
}

func (m *mockStore) callsOn(subject sflink.PageIdentity) int {
	n := 0
	for _, c := range m.valuesCalls {
		if c.subject == subject {
			n++
		}
	}
	return n
}

type mockCategories struct {
	categories map[sflink.PageIdentity][]string
	all        []string
	err        error
	calls      int
}

func (m *mockCategories) CategoriesOf(_ context.Context, page sflink.PageIdentity) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories[page], nil
}

func (m *mockCategories) AllCategories(_ context.Context) ([]string, error) {
	return m.all, m.err
}

type mockPages struct {
	texts map[sflink.PageIdentity]string
	err   error
}

func (m *mockPages) PageText(_ context.Context, page sflink.PageIdentity) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	text, ok := m.texts[page]
	return text, ok, nil
}

type mockPrinter struct {
	dataText    string
	err         error
	definitions []string
	pageNames   []string
}

func (m *mockPrinter) Print(_ context.Context, definition, pageName string) (sflink.FormOutput, error) {
	m.definitions = append(m.definitions, definition)
	m.pageNames = append(m.pageNames, pageName)
	if m.err != nil {
		return sflink.FormOutput{}, m.err
	}
	return sflink.FormOutput{FormHTML: "<form></form>", DataText: m.dataText}, nil
}

type mockQueue struct {
	jobs []sflink.PageCreationJob
	err  error
}

func (m *mockQueue) Enqueue(_ context.Context, jobs ...sflink.PageCreationJob) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, jobs...)
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

func newLocalizer(t *testing.T, lang string) *i18n.Localizer {
	t.Helper()
	l, err := i18n.New(lang)
	require.NoError(t, err)
	return l
}

func newTitles(t *testing.T, loc *i18n.Localizer) *title.Resolver {
	t.Helper()
	return title.NewResolver(loc, loc.Language(), true)
}

// fixture holds a fully wired set of resolvers over mock collaborators.
type fixture struct {
	store      *mockStore
	categories *mockCategories
	pages      *mockPages
	printer    *mockPrinter
	queue      *mockQueue
	localizer  *i18n.Localizer
	titles     *title.Resolver
	lookup     *FormLookup
	urls       *URLBuilder
	editLinks  *EditLinkResolver
	articles   *ArticleFormResolver
	creator    *LinkedPageCreator
}

func newFixture(t *testing.T, lang string) *fixture {
	t.Helper()
	f := &fixture{
		store:      newMockStore(),
		categories: &mockCategories{categories: make(map[sflink.PageIdentity][]string)},
		pages:      &mockPages{texts: make(map[sflink.PageIdentity]string)},
		printer:    &mockPrinter{},
		queue:      &mockQueue{},
		localizer:  newLocalizer(t, lang),
	}
	f.titles = newTitles(t, f.localizer)
	logger := &mockLogger{}
	f.lookup = NewFormLookup(f.store, f.titles, f.localizer, logger)
	f.urls = NewURLBuilder(sflink.DefaultFormEditPath, f.titles)
	f.editLinks = NewEditLinkResolver(f.store, f.lookup, f.urls, f.titles, f.localizer, logger)
	f.articles = NewArticleFormResolver(f.lookup, f.categories, f.titles, f.localizer, logger)
	f.creator = NewLinkedPageCreator(f.store, f.lookup, f.pages, f.printer, f.queue, f.titles, logger)
	return f
}
