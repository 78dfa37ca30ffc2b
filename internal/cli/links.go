package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/resolver"
)

var editLinkCmd = &cobra.Command{
	Use:   "edit-link <title>",
	Short: "Print the form edit URL of a page",
	Long: `Print the Special:FormEdit URL for a page, or nothing when no form applies.

The form is taken from the first property pointing at the page that has a
default or alternate form, and otherwise from the page's namespace.`,
	Example: `  sflink edit-link "France"
  sflink edit-link "Template:Country" --connection postgresql://wiki@localhost/wiki`,
	Args: exactlyOneTitle,
	RunE: runEditLink,
}

var articleFormsCmd = &cobra.Command{
	Use:   "article-forms <title>",
	Short: "List the forms that apply to an existing page",
	Long: `List the forms of an existing page, one per line, in this order of preference:
the page's own default form, then the default forms of its categories, then the
default form of its namespace.`,
	Args: exactlyOneTitle,
	RunE: runArticleForms,
}

var linkCmd = &cobra.Command{
	Use:     "link <title> [text]",
	Short:   "Print an HTML link to a page",
	Long:    "Print an HTML link to a page. The link text defaults to the page name.",
	Example: `  sflink link "Category:Cities" "Big cities"`,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runLink,
}

func init() {
	rootCmd.AddCommand(editLinkCmd)
	rootCmd.AddCommand(articleFormsCmd)
	rootCmd.AddCommand(linkCmd)
}

func runEditLink(cmd *cobra.Command, args []string) error {
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

	page, err := svc.ParseTitle(args[0])
	if err != nil {
		return err
	}

	url, ok, err := svc.FormEditLink(ctx, page)
	if err != nil {
		return a.report(err)
	}
	if !ok {
		noticeOutput(cmd).Notice("No form applies to %s", a.titles.TitleString(page))
		return nil
	}
	resultOutput(cmd).Result(url)
	return nil
}

func runArticleForms(cmd *cobra.Command, args []string) error {
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

	page, err := svc.ParseTitle(args[0])
	if err != nil {
		return err
	}

	forms, err := svc.ArticleForms(ctx, page)
	if err != nil {
		return a.report(err)
	}
	if len(forms) == 0 {
		noticeOutput(cmd).Notice("No forms apply to %s", a.titles.TitleString(page))
		return nil
	}
	resultOutput(cmd).Results(forms)
	return nil
}

// runLink needs no database: links are rendered from the title alone.
func runLink(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page, ok := a.titles.NewFromText(args[0])
	if !ok {
		return invalidTitle(args[0])
	}

	var text string
	if len(args) == 2 {
		text = args[1]
	}
	links := resolver.NewLinkRenderer(a.cfg.Wiki.ArticlePath, a.titles)
	resultOutput(cmd).Result(links.LinkText(page.Namespace, page.Name, text))
	return nil
}
