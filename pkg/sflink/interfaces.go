package sflink

import "context"

// TitleResolver turns namespace/name pairs into page identities and formats them
// the way the wiki does in links and URLs.
type TitleResolver interface {
	// MakeTitleSafe normalises name within ns. ok is false when the text
	// cannot name a page (empty, or contains forbidden characters).
	MakeTitleSafe(ns Namespace, name string) (page PageIdentity, ok bool)

	// NewFromText parses "Namespace:Name" text, recognising namespace prefixes.
	NewFromText(text string) (page PageIdentity, ok bool)

	// NsText returns the localized display name of ns ("" for the main namespace).
	NsText(ns Namespace) string

	// Text returns the display text of the page name, without namespace.
	Text(page PageIdentity) string

	// TitleString returns the namespaced, non-encoded title.
	TitleString(page PageIdentity) string

	// TitleURLString returns the namespaced, URL-encoded title used in paths.
	TitleURLString(page PageIdentity) string

	// EncodeSegment URL-encodes a single path segment such as a form name.
	EncodeSegment(segment string) string
}

// PropertyStore is the semantic property store.
type PropertyStore interface {
	// ValuesOf returns the values of propertyID asserted on subject, in store order.
	ValuesOf(ctx context.Context, subject PageIdentity, propertyID string) ([]PropertyValue, error)

	// IncomingProperties returns the properties that have value as one of their
	// values on any subject, in store order.
	IncomingProperties(ctx context.Context, value PageIdentity) ([]IncomingProperty, error)
}

// CategoryIndex answers category membership questions.
type CategoryIndex interface {
	// CategoriesOf returns the distinct categories of page. Pages without a backing
	// record yield an empty result, not an error.
	CategoriesOf(ctx context.Context, page PageIdentity) ([]string, error)

	// AllCategories returns every distinct category used on the wiki.
	AllCategories(ctx context.Context) ([]string, error)
}

// PageSource reads stored page content.
type PageSource interface {
	// PageText returns the current text of page. found is false when the page does not exist.
	PageText(ctx context.Context, page PageIdentity) (text string, found bool, err error)
}

// JobQueue accepts page creation jobs. Enqueue does not wait for execution.
type JobQueue interface {
	Enqueue(ctx context.Context, jobs ...PageCreationJob) error
}

// Localizer exposes the content-language settings that affect resolution.
type Localizer interface {
	// Language returns the content language code.
	Language() string

	// IsDefaultLanguage reports whether the content language is the default (English) one.
	IsDefaultLanguage() bool

	// BlankNamespaceLabel returns the localized word used in place of the empty
	// main namespace name ("Main" in English).
	BlankNamespaceLabel() string
}

// FormPrinter renders a form definition for a page that does not exist yet.
type FormPrinter interface {
	Print(ctx context.Context, definition, pageName string) (FormOutput, error)
}

// Approver confirms destructive operations on a database.
type Approver interface {
	// RequestApproval returns true when the operation on dbName may proceed.
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
