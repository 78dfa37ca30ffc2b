package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sflink",
	Short: "Form-aware link generation for a Semantic Forms wiki",
	Long: `sflink answers the link questions of a Semantic Forms wiki from its database:
which form edits a page, which forms an article offers, and what a red link
to a missing page should point at.

Exit Codes:
  0  - Success (including "no form applies")
  1  - General error
  2  - CLI usage error (invalid arguments, flags or title)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database or NATS connection failed
  12 - User denied a destructive reset
  15 - Semantic property store not installed`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// globalFlags holds the persistent flags shared by every command.
var globalFlags struct {
	verbose    bool
	configPath string
	connection string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Path to sflink.yaml or the directory holding it (default: ./sflink.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.connection, "connection", "",
		"PostgreSQL connection string of the wiki database\n"+
			"Falls back to $SFLINK_DATABASE_URL, $DATABASE_URL, then connection.dsn")
}

func resetGlobalFlags() {
	globalFlags.verbose = false
	globalFlags.configPath = ""
	globalFlags.connection = ""
}

// exactlyOneTitle is cobra.ExactArgs(1) with a message naming the argument.
func exactlyOneTitle(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d: expected a page title such as \"Category:Cities\"", len(args))
	}
	return nil
}
