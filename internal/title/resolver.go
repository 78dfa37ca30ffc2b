package title

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// forbiddenChars may never appear in a page name.
const forbiddenChars = "#<>[]|{}"

// urlReadable are escapes the wiki leaves unencoded in URLs.
var urlReadable = strings.NewReplacer(
	"%3B", ";",
	"%40", "@",
	"%24", "$",
	"%21", "!",
	"%2A", "*",
	"%28", "(",
	"%29", ")",
	"%2C", ",",
	"%2F", "/",
	"%3A", ":",
)

// NamespaceNames supplies namespace display names. *i18n.Localizer implements it.
type NamespaceNames interface {
	NamespaceName(ns sflink.Namespace) (string, bool)
	CanonicalNamespaceName(ns sflink.Namespace) (string, bool)
	Namespaces() []sflink.Namespace
}

// Resolver implements sflink.TitleResolver.
// Stateless after construction and safe for concurrent use.
type Resolver struct {
	names        NamespaceNames
	tag          language.Tag
	capitalLinks bool
}

// NewResolver creates a Resolver. lang selects the casing rules applied to the
// first letter when capitalLinks is enabled.
func NewResolver(names NamespaceNames, lang string, capitalLinks bool) *Resolver {
	if names == nil {
		panic("names cannot be nil")
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Resolver{
		names:        names,
		tag:          tag,
		capitalLinks: capitalLinks,
	}
}

// MakeTitleSafe normalises name within ns.
func (r *Resolver) MakeTitleSafe(ns sflink.Namespace, name string) (sflink.PageIdentity, bool) {
	name = normalizeName(name)
	if name == "" || strings.ContainsAny(name, forbiddenChars) {
		return sflink.PageIdentity{}, false
	}
	if r.capitalLinks {
		name = r.ucfirst(name)
	}
	return sflink.Page(ns, name), true
}

// NewFromText parses "Namespace:Name", matching localized and canonical namespace
// names case-insensitively. Text without a known prefix is in the main namespace.
func (r *Resolver) NewFromText(text string) (sflink.PageIdentity, bool) {
	text = strings.TrimPrefix(normalizeName(text), ":")
	if prefix, rest, found := strings.Cut(text, ":"); found {
		if ns, ok := r.lookupNamespace(prefix); ok {
			return r.MakeTitleSafe(ns, rest)
		}
	}
	return r.MakeTitleSafe(sflink.NSMain, text)
}

func (r *Resolver) lookupNamespace(prefix string) (sflink.Namespace, bool) {
	prefix = normalizeName(prefix)
	if prefix == "" {
		return sflink.NSMain, false
	}
	for _, ns := range r.names.Namespaces() {
		if ns == sflink.NSMain {
			continue
		}
		if name, ok := r.names.NamespaceName(ns); ok && strings.EqualFold(normalizeName(name), prefix) {
			return ns, true
		}
		if name, ok := r.names.CanonicalNamespaceName(ns); ok && strings.EqualFold(name, prefix) {
			return ns, true
		}
	}
	return sflink.NSMain, false
}

// NsText returns the localized name of ns, or "" for the main or an unknown namespace.
func (r *Resolver) NsText(ns sflink.Namespace) string {
	name, ok := r.names.NamespaceName(ns)
	if !ok {
		return ""
	}
	return name
}

// Text returns the page name as displayed.
func (r *Resolver) Text(page sflink.PageIdentity) string {
	return normalizeName(page.Name)
}

// TitleString returns the namespaced title, e.g. "Category:Cities".
func (r *Resolver) TitleString(page sflink.PageIdentity) string {
	ns := r.NsText(page.Namespace)
	if ns != "" {
		ns += ":"
	}
	text := r.Text(page)
	if r.capitalLinks {
		text = r.ucfirst(text)
	}
	return ns + text
}

// TitleURLString returns the namespaced title encoded for use in a URL path.
func (r *Resolver) TitleURLString(page sflink.PageIdentity) string {
	ns := Urlencode(dbKey(r.NsText(page.Namespace)))
	if ns != "" {
		ns += ":"
	}
	text := dbKey(r.Text(page))
	if r.capitalLinks {
		text = r.ucfirst(text)
	}
	return ns + Urlencode(text)
}

// EncodeSegment encodes a single path segment such as a form name.
// Empty segments stay empty.
func (r *Resolver) EncodeSegment(segment string) string {
	return Urlencode(dbKey(strings.TrimSpace(segment)))
}

func (r *Resolver) ucfirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	// A Caser holds state, so one is built per call.
	return cases.Upper(r.tag).String(string(first)) + s[size:]
}

// Urlencode escapes s the way the wiki does for titles in URLs.
func Urlencode(s string) string {
	return urlReadable.Replace(url.QueryEscape(s))
}

func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	return strings.Join(strings.Fields(name), " ")
}

func dbKey(text string) string {
	return strings.ReplaceAll(text, " ", "_")
}

// Verify Resolver implements the TitleResolver interface at compile time
var _ sflink.TitleResolver = (*Resolver)(nil)
