package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pplale/cardimage/internal/updater"
)

var updateDryRun bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [category...]",
	Short: "Rewrite dataset image URLs from the image directories",
	Long: `Update matches every card of the given categories (all categories when none
are given) to a file of the category's image directory and writes the dataset
with the new image URLs to the category's output file.

Cards without a matching file keep their current image URL and are reported
with a warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		categories, err := cfg.Select(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		u := updater.New(cfg, workdirFlag, out)
		u.DryRun = updateDryRun

		reports, err := u.RunAll(categories)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		for _, r := range reports {
			summary := fmt.Sprintf("%s: %d updated, %d without image", r.Category, len(r.Updated), len(r.Missing))
			if r.Written {
				fmt.Fprintf(out, "%s -> %s\n", summary, r.Output)
			} else {
				fmt.Fprintf(out, "%s (dry run, %s not written)\n", summary, r.Output)
			}
		}

		color.New(color.FgGreen).Fprintln(out, "Image URL update complete.")
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVarP(&updateDryRun, "dry-run", "n", false, "Match cards without writing the output files")
}
