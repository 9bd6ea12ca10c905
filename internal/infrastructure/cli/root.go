package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	flagConfigPath string
	flagServerURL  string
	flagSource     string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "recheck",
	Version: Version,
	Short:   "Human-in-the-loop verification for machine-extracted data",
	Long: `Recheck is a terminal client for verifying machine-extracted records
before they are allowed downstream. An operator steps through the
server's pending queue, inspects each record against its captured
source rendering, and approves, flags, rejects or corrects it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config file (default ~/.recheck/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "review server URL (overrides config)")
	RootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "restrict the queue to one source id")
}
