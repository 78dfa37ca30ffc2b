package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// InteractiveApprover asks the user to type the database name before a
// destructive operation.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover on stdin/stderr.
func NewInteractiveApprover(verbose bool) sflink.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts for the database name and approves on an exact match.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s WARNING: You are about to DROP and RECREATE the wiki tables in '%s'\n", SymbolWarn, dbName)
	fmt.Fprintln(a.output, "This will permanently delete all pages, property values, categories and queued jobs!")
	fmt.Fprintf(a.output, "\nTo confirm, type the database name '%s' and press Enter: ", dbName)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := bufio.NewReader(a.input).ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == dbName {
			fmt.Fprintf(a.output, "%s Confirmed. Proceeding with reset...\n", SymbolCheck)
			return true, nil
		}
		fmt.Fprintf(a.output, "%s Input '%s' does not match database name '%s'. Operation cancelled.\n", SymbolCross, input, dbName)
		return false, nil
	}
}

var _ sflink.Approver = (*InteractiveApprover)(nil)
