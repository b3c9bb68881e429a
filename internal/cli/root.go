// Package cli implements the goxplm developer tool: catalog search,
// flight recording export, plugin scaffolding, and a live inspector
// client. It runs outside the simulator and never touches host state.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/logging"
)

var (
	logLevel string

	// built at init time
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goxplm",
		Short: "goxplm — developer tooling for X-Plane plugins written in Go",
		Long: "goxplm ships alongside the xplm library: search the dataref catalog,\n" +
			"scaffold a new plugin, export flight recordings, and watch live values\n" +
			"from a plugin's embedded inspector.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if level == "" {
				level = "warn"
			}
			log = logging.New(cmd.ErrOrStderr(), level)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDrefsCmd())
	cmd.AddCommand(newFdrCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
