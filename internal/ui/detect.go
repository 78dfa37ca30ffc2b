package ui

import (
	"os"

	"golang.org/x/term"
)

// EnvNonInteractive forces plain, unprompted output when set to "1".
const EnvNonInteractive = "SFLINK_NON_INTERACTIVE"

// Mode represents the interaction mode of the CLI.
type Mode int

const (
	// ModeNonInteractive is used for scripts, pipes and CI.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether sflink talks to a human.
//
// Returns ModeNonInteractive if:
//   - SFLINK_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stdin or stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
