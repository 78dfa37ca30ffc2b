// Package resolver decides which forms govern a wiki page and turns that decision
// into a Special:FormEdit URL or a background page creation job.
//
// Every operation is a fresh, synchronous read against the property store; nothing
// is cached between calls. A missing property store is reported as
// sflink.ErrPropertyStoreUnavailable and must abort the request. Every other
// "nothing found" condition is an empty result, never an error.
//
// Resolution order:
//
//	FormEditLink:  incoming properties (first with a default or alternate form wins),
//	               then the namespace default form
//	ArticleForms:  page default form, then category default forms (merged, not
//	               deduplicated), then the namespace default form
package resolver
