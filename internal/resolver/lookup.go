package resolver

import (
	"context"
	"fmt"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// FormLookup reads the forms a subject page points to through a property.
type FormLookup struct {
	store     sflink.PropertyStore
	titles    sflink.TitleResolver
	localizer sflink.Localizer
	logger    sflink.Logger
}

// NewFormLookup creates a FormLookup. store may be nil; lookups then fail with
// sflink.ErrPropertyStoreUnavailable.
func NewFormLookup(store sflink.PropertyStore, titles sflink.TitleResolver, localizer sflink.Localizer, logger sflink.Logger) *FormLookup {
	if titles == nil {
		panic("titles cannot be nil")
	}
	if localizer == nil {
		panic("localizer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &FormLookup{
		store:     store,
		titles:    titles,
		localizer: localizer,
		logger:    logger,
	}
}

// LookupForms returns the forms subject points to through props, in store order.
// Results for the fallback property id follow the primary ones and are only queried
// when the content language is not the default language.
func (l *FormLookup) LookupForms(ctx context.Context, subject sflink.PageIdentity, props sflink.PropertyPair) ([]string, error) {
	if subject.IsZero() {
		return nil, nil
	}
	if l.store == nil {
		return nil, sflink.ErrPropertyStoreUnavailable
	}

	page, ok := l.titles.MakeTitleSafe(subject.Namespace, subject.Name)
	if !ok {
		l.logger.Verbose("form lookup: %q in namespace %d is not a valid title", subject.Name, subject.Namespace)
		return nil, nil
	}

	forms, err := l.formsVia(ctx, page, props.Primary)
	if err != nil {
		return nil, err
	}

	if !l.localizer.IsDefaultLanguage() && props.Fallback != "" {
		fallback, err := l.formsVia(ctx, page, props.Fallback)
		if err != nil {
			return nil, err
		}
		forms = append(forms, fallback...)
	}

	l.logger.Verbose("form lookup: %s via %s -> %v", l.titles.TitleString(page), props.Primary, forms)
	return forms, nil
}

func (l *FormLookup) formsVia(ctx context.Context, page sflink.PageIdentity, propertyID string) ([]string, error) {
	values, err := l.store.ValuesOf(ctx, page, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s of %s: %w", propertyID, l.titles.TitleString(page), err)
	}
	return l.formNames(values), nil
}

// formNames keeps the page-typed values and returns their page texts.
// Other values are dropped silently.
func (l *FormLookup) formNames(values []sflink.PropertyValue) []string {
	var names []string
	for _, v := range values {
		if !v.IsPageReference() {
			continue
		}
		names = append(names, l.titles.Text(v.Page))
	}
	return names
}
