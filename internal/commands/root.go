package commands

import (
	"github.com/spf13/cobra"

	"github.com/grantsscope/wrapped/internal/buildinfo"
	"github.com/grantsscope/wrapped/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "wrapped",
		Short:   "Yearly donation review and project recommendations for grant donors",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLookupCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))

	return rootCmd
}
