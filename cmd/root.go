package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pplale/cardimage/internal/config"
)

var (
	configFlag  string
	workdirFlag string
	noColorFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardimage",
	Short: "Tool for keeping card image URLs in sync with image files",
	Long: `Cardimage matches the cards of the yojo and sweet datasets to the image
files of their category and rewrites the datasets with the matching image URLs.

Paths in the configuration are relative to the working directory (--workdir).
Without a config file the built-in defaults are used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFlag, "config", "f", "", "Path to a config file")
	RootCmd.PersistentFlags().StringVarP(&workdirFlag, "workdir", "C", ".", "Base directory for relative paths")
	RootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(matchCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig resolves and loads the configuration for the current flags
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(config.ResolveConfigPath(configFlag, workdirFlag))
}
