package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sflink/internal/resolver"
	"github.com/vvka-141/sflink/pkg/sflink"
)

var createFlags struct {
	from   string
	user   int64
	broken bool
}

var createLinkedCmd = &cobra.Command{
	Use:   "create-linked <title>",
	Short: "Queue creation of a missing page from its linking property",
	Long: `Queue a job that creates a missing page when a property pointing at it
names a form that "creates pages with form". The page text is pre-rendered from
that form's definition.

With --href the command instead prints the href a red link to the page should
use: unchanged when the page was queued, otherwise its form edit URL.`,
	Example: `  sflink create-linked "Spain" --from "Madrid" --user 42
  sflink create-linked "Spain" --from "Madrid" --href`,
	Args: exactlyOneTitle,
	RunE: runCreateLinked,
}

func init() {
	createLinkedCmd.Flags().StringVar(&createFlags.from, "from", "", "Title of the page being viewed (required for creation)")
	createLinkedCmd.Flags().Int64Var(&createFlags.user, "user", 0, "Id of the user the job acts for")
	createLinkedCmd.Flags().BoolVar(&createFlags.broken, "href", false, "Print the href for a red link to the page instead")
	rootCmd.AddCommand(createLinkedCmd)
}

func resetCreateFlags() {
	createFlags.from = ""
	createFlags.user = 0
	createFlags.broken = false
}

func runCreateLinked(cmd *cobra.Command, args []string) error {
	if createFlags.user < 0 {
		return fmt.Errorf("invalid argument %q for --user: must not be negative", fmt.Sprint(createFlags.user))
	}

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

	target, err := svc.ParseTitle(args[0])
	if err != nil {
		return err
	}
	var viewed sflink.PageIdentity
	if createFlags.from != "" {
		if viewed, err = svc.ParseTitle(createFlags.from); err != nil {
			return err
		}
	}

	if createFlags.broken {
		href, err := svc.BrokenLinkHref(ctx, resolver.Link{
			Viewed: viewed,
			Target: target,
			UserID: createFlags.user,
			Href:   resolver.NewLinkRenderer(a.cfg.Wiki.ArticlePath, a.titles).URL(target),
			Broken: true,
		})
		if err != nil {
			return a.report(err)
		}
		resultOutput(cmd).Result(href)
		return nil
	}

	created, err := svc.CreateLinkedPage(ctx, viewed, target, createFlags.user)
	if err != nil {
		return a.report(err)
	}
	if !created {
		noticeOutput(cmd).Notice("No property linking to %s creates pages with a form", a.titles.TitleString(target))
		return nil
	}
	noticeOutput(cmd).Success("Queued creation of %s", a.titles.TitleString(target))
	return nil
}

func invalidTitle(text string) error {
	return fmt.Errorf("%w: %q", sflink.ErrInvalidTitle, text)
}
