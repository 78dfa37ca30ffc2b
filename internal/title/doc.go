// Package title implements sflink.TitleResolver: it normalises page names,
// recognises namespace prefixes and formats titles for display and for URLs
// the way the wiki does.
//
// Normalisation rules:
//   - underscores become spaces, surrounding whitespace is trimmed and runs of
//     spaces collapse to one
//   - names that are empty or contain any of # < > [ ] | { } are invalid
//   - with capital links enabled the first letter is upper-cased using the
//     content language's casing rules (Turkish "i" becomes "İ")
//
// URL encoding follows the wiki's convention: query escaping with the
// characters ; @ $ ! * ( ) , / : left readable.
package title
