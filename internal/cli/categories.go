package cli

import (
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories [title]",
	Short: "List the categories of a page, or every category of the wiki",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}

	var categories []string
	if len(args) == 0 {
		categories, err = svc.AllCategories(ctx)
	} else {
		page, parseErr := svc.ParseTitle(args[0])
		if parseErr != nil {
			return parseErr
		}
		categories, err = svc.Categories(ctx, page)
	}
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		noticeOutput(cmd).Notice("No categories")
		return nil
	}
	resultOutput(cmd).Results(categories)
	return nil
}
