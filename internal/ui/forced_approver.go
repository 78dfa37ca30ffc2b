package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// ForcedApprover approves a destructive operation after a countdown. It is used
// when --force is given.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) sflink.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval counts down and approves unless ctx is cancelled first.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, WarningStyle.Render(fmt.Sprintf("%s DANGER: all wiki tables in '%s' will be dropped", SymbolWarn, dbName)))
	fmt.Fprintln(a.output)

	countdown := int(sflink.DefaultForceApprovalCountdown.Seconds())
	for i := countdown; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rResetting in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r%s Proceeding with reset...                                   \n", SymbolCheck)
	return true, nil
}

var _ sflink.Approver = (*ForcedApprover)(nil)
