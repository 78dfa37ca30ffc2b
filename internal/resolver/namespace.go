package resolver

import "github.com/vvka-141/sflink/pkg/sflink"

// namespaceSubject returns the Project-namespace page that carries the default form
// of page's namespace. The main namespace has no name, so the localized "Main"
// label stands in for it.
func namespaceSubject(page sflink.PageIdentity, titles sflink.TitleResolver, localizer sflink.Localizer) sflink.PageIdentity {
	label := titles.NsText(page.Namespace)
	if page.Namespace == sflink.NSMain {
		label = localizer.BlankNamespaceLabel()
	}
	return sflink.Page(sflink.NSProject, label)
}
