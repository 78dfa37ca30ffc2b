package sflink

import (
	"time"

	"github.com/google/uuid"
)

// Namespace is a wiki namespace index.
type Namespace int

// Namespace indexes used by the wiki and by Semantic MediaWiki / Semantic Forms.
const (
	NSSpecial  Namespace = -1
	NSMain     Namespace = 0
	NSTalk     Namespace = 1
	NSUser     Namespace = 2
	NSProject  Namespace = 4
	NSFile     Namespace = 6
	NSTemplate Namespace = 10
	NSHelp     Namespace = 12
	NSCategory Namespace = 14
	NSProperty Namespace = 102
	NSForm     Namespace = 106
)

// PageIdentity identifies a wiki page within the store.
// Name is the page text without namespace prefix, with spaces (not underscores).
type PageIdentity struct {
	Name      string    `json:"name"`
	Namespace Namespace `json:"namespace"`
}

// Page is shorthand for constructing a PageIdentity.
func Page(ns Namespace, name string) PageIdentity {
	return PageIdentity{Name: name, Namespace: ns}
}

// IsZero reports whether the identity has no name.
func (p PageIdentity) IsZero() bool {
	return p.Name == ""
}

// PropertyPair names a semantic property twice: the id used by the active content
// language and the language-independent id that older data may still use.
type PropertyPair struct {
	Primary  string
	Fallback string
}

// Special property ids registered by Semantic Forms.
var (
	// PropDefaultForm is "Has default form" on categories, properties and namespaces.
	PropDefaultForm = PropertyPair{Primary: "_SF_DF", Fallback: "_SF_DF_BACKUP"}

	// PropAlternateForm is "Has alternate form".
	PropAlternateForm = PropertyPair{Primary: "_SF_AF", Fallback: "_SF_AF_BACKUP"}

	// PropPageDefaultForm is "Page has default form", set on a page itself.
	PropPageDefaultForm = PropertyPair{Primary: "_SF_PDF", Fallback: "_SF_PDF_BACKUP"}

	// PropCreatesPagesWithForm is "Creates pages with form", set on properties.
	PropCreatesPagesWithForm = PropertyPair{Primary: "_SF_CP", Fallback: "_SF_CP_BACKUP"}
)

// ValueKind classifies a property value returned by the store.
type ValueKind int

const (
	ValueKindUnknown ValueKind = iota
	ValueKindPage
	ValueKindText
)

// PropertyValue is a single value of a property assertion.
type PropertyValue struct {
	Kind ValueKind
	Page PageIdentity
	Text string
}

// PageValue builds a page-typed property value.
func PageValue(ns Namespace, name string) PropertyValue {
	return PropertyValue{Kind: ValueKindPage, Page: Page(ns, name)}
}

// TextValue builds a plain text property value.
func TextValue(text string) PropertyValue {
	return PropertyValue{Kind: ValueKindText, Text: text}
}

// IsPageReference reports whether the value points at a page with a usable name.
// Values failing this check are dropped by form lookups rather than reported.
func (v PropertyValue) IsPageReference() bool {
	return v.Kind == ValueKindPage && v.Page.Name != ""
}

// IncomingProperty is a property whose assertions point at a given page.
// SubjectName is the property's page name in the Property namespace.
type IncomingProperty struct {
	PropertyID  string
	SubjectName string
}

// FormEditRequest describes a form-based edit of Target.
// HasPrimaryForm distinguishes "no default form" from a default form with an empty name.
type FormEditRequest struct {
	Target         PageIdentity
	PrimaryForm    string
	HasPrimaryForm bool
	AlternateForms []string
}

// IsEmpty reports whether no form applies, in which case ordinary editing is used.
func (r FormEditRequest) IsEmpty() bool {
	return !r.HasPrimaryForm && len(r.AlternateForms) == 0
}

// PageCreationJob asks the background job system to create Target with PageText.
type PageCreationJob struct {
	ID        uuid.UUID    `json:"id"`
	Target    PageIdentity `json:"target"`
	UserID    int64        `json:"user_id"`
	PageText  string       `json:"page_text"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewPageCreationJob creates a job with a fresh id.
func NewPageCreationJob(target PageIdentity, userID int64, pageText string) PageCreationJob {
	return PageCreationJob{
		ID:        uuid.New(),
		Target:    target,
		UserID:    userID,
		PageText:  pageText,
		CreatedAt: time.Now().UTC(),
	}
}

// FormOutput is what a form printer produces for a form definition.
type FormOutput struct {
	FormHTML string
	DataText string
}
