package sflink

import "time"

// Exit codes for semantic error classification.
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid title)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitConnectionError  = 11 // Failed to connect to database or broker
	ExitApprovalDenied   = 12 // User denied a destructive reset
	ExitStoreUnavailable = 15 // Semantic property store not configured
)

const (
	// DefaultLanguage is the content language whose property names need no fallback lookup.
	DefaultLanguage = "en"

	// DefaultArticlePath is the wiki article path; $1 is replaced by the URL title.
	DefaultArticlePath = "/wiki/$1"

	// DefaultFormEditPath is the local URL of Special:FormEdit.
	DefaultFormEditPath = "/wiki/Special:FormEdit"

	// AltFormParam is the query parameter carrying alternate forms, indexed from 0.
	AltFormParam = "alt_form"

	// PlaceholderPageName is handed to the form printer when pre-rendering the
	// content of an automatically created page.
	PlaceholderPageName = "Some very long page name that will hopefully never get created ABCDEF123"

	// DefaultJobSubject is the JetStream subject page creation jobs are published on.
	DefaultJobSubject = "sflink.jobs.create_page"

	// DefaultForceApprovalCountdown is how long --force waits before a destructive reset.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
