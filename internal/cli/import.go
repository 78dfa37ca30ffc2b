package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <fixture.yaml>",
	Short: "Load pages, categories and property values from a YAML file",
	Long: `Load wiki content from a YAML fixture into the wiki tables. The tables must
exist (see "sflink migrate"). Existing pages are overwritten; property values
and category links are appended.`,
	Example: `  sflink migrate && sflink import testdata/geography.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	fixture, err := store.ParseFixture(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := a.connect(ctx); err != nil {
		return err
	}

	stats, err := a.store.Import(ctx, fixture, a.titles)
	if err != nil {
		return err
	}
	noticeOutput(cmd).Success("Imported %d pages, %d category links, %d property labels, %d property values",
		stats.Pages, stats.Categories, stats.Properties, stats.Values)
	return nil
}
