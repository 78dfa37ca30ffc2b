// Package i18n resolves the content-language settings that form resolution
// depends on: whether the language is the default one, the localized label of
// the main namespace, and localized namespace names.
package i18n

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/sflink/pkg/sflink"
)

//go:embed messages.yaml
var messagesYAML []byte

// LanguagePack holds the messages for one content language.
type LanguagePack struct {
	BlankNamespace string                      `yaml:"blank_namespace"`
	Namespaces     map[sflink.Namespace]string `yaml:"namespaces"`
}

// Catalog maps language codes to their packs.
type Catalog map[string]LanguagePack

// LoadCatalog parses the embedded message catalog.
func LoadCatalog() (Catalog, error) {
	return ParseCatalog(messagesYAML)
}

// ParseCatalog parses a catalog in the embedded YAML layout.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}
	if _, ok := c[sflink.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("message catalog has no %q pack: %w", sflink.DefaultLanguage, sflink.ErrInvalidConfig)
	}
	return c, nil
}

// Languages returns the language codes in the catalog, sorted.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c))
	for lang := range c {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Localizer implements sflink.Localizer for a single content language.
// Messages missing from the language pack fall back to English.
type Localizer struct {
	lang          string
	pack          LanguagePack
	fallback      LanguagePack
	blankOverride string
	nsOverrides   map[sflink.Namespace]string
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithBlankNamespaceLabel overrides the catalog's main-namespace label.
func WithBlankNamespaceLabel(label string) Option {
	return func(l *Localizer) {
		l.blankOverride = label
	}
}

// WithNamespaceNames overrides individual namespace names, typically from site configuration.
func WithNamespaceNames(names map[sflink.Namespace]string) Option {
	return func(l *Localizer) {
		for ns, name := range names {
			l.nsOverrides[ns] = name
		}
	}
}

// New creates a Localizer for lang using the embedded catalog.
func New(lang string, opts ...Option) (*Localizer, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	return NewFromCatalog(catalog, lang, opts...)
}

// NewFromCatalog creates a Localizer for lang from catalog.
// Unknown languages are accepted and use English messages throughout, but are still
// treated as non-default for property fallback purposes.
func NewFromCatalog(catalog Catalog, lang string, opts ...Option) (*Localizer, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = sflink.DefaultLanguage
	}

	fallback, ok := catalog[sflink.DefaultLanguage]
	if !ok {
		return nil, fmt.Errorf("message catalog has no %q pack: %w", sflink.DefaultLanguage, sflink.ErrInvalidConfig)
	}

	l := &Localizer{
		lang:        lang,
		pack:        catalog[lang],
		fallback:    fallback,
		nsOverrides: make(map[sflink.Namespace]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Language returns the content language code.
func (l *Localizer) Language() string {
	return l.lang
}

// IsDefaultLanguage reports whether the content language is English.
func (l *Localizer) IsDefaultLanguage() bool {
	return l.lang == sflink.DefaultLanguage
}

// BlankNamespaceLabel returns the localized word for the main namespace.
func (l *Localizer) BlankNamespaceLabel() string {
	if l.blankOverride != "" {
		return l.blankOverride
	}
	if l.pack.BlankNamespace != "" {
		return l.pack.BlankNamespace
	}
	return l.fallback.BlankNamespace
}

// NamespaceName returns the localized name of ns. The main namespace has the empty name.
func (l *Localizer) NamespaceName(ns sflink.Namespace) (string, bool) {
	if ns == sflink.NSMain {
		return "", true
	}
	if name, ok := l.nsOverrides[ns]; ok {
		return name, true
	}
	if name, ok := l.pack.Namespaces[ns]; ok {
		return name, true
	}
	name, ok := l.fallback.Namespaces[ns]
	return name, ok
}

// CanonicalNamespaceName returns the English name of ns, which is always accepted
// as a title prefix regardless of content language.
func (l *Localizer) CanonicalNamespaceName(ns sflink.Namespace) (string, bool) {
	if ns == sflink.NSMain {
		return "", true
	}
	name, ok := l.fallback.Namespaces[ns]
	return name, ok
}

// Namespaces returns every namespace index known to the localizer.
func (l *Localizer) Namespaces() []sflink.Namespace {
	seen := map[sflink.Namespace]bool{sflink.NSMain: true}
	for ns := range l.fallback.Namespaces {
		seen[ns] = true
	}
	for ns := range l.pack.Namespaces {
		seen[ns] = true
	}
	for ns := range l.nsOverrides {
		seen[ns] = true
	}
	out := make([]sflink.Namespace, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Verify Localizer implements the Localizer interface at compile time
var _ sflink.Localizer = (*Localizer)(nil)
