package sflink

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	url, ok, err := links.FormEditLink(ctx, page)
//	if errors.Is(err, sflink.ErrPropertyStoreUnavailable) {
//	    // abort the request, nothing can be resolved
//	}
var (
	// ErrPropertyStoreUnavailable indicates no semantic property store is configured.
	// Form resolution cannot run without it, so callers must abort the request.
	ErrPropertyStoreUnavailable = errors.New("semantic property store unavailable: Semantic MediaWiki must be installed for Semantic Forms to run")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTitle indicates text that cannot name a wiki page.
	ErrInvalidTitle = errors.New("invalid title")

	// ErrConnectionFailed indicates database or broker connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrApprovalDenied indicates the user declined a destructive operation.
	ErrApprovalDenied = errors.New("approval denied")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrPropertyStoreUnavailable):
		return ExitStoreUnavailable
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidTitle):
		return ExitUsageError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	errStr := err.Error()
	if isUsageError(errStr) {
		return ExitUsageError
	}
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

// isUsageError recognises the argument and flag errors produced by cobra.
func isUsageError(msg string) bool {
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
