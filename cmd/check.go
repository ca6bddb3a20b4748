package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pplale/cardimage/internal/config"
	"github.com/pplale/cardimage/internal/listing"
	"github.com/pplale/cardimage/internal/validator"
)

var checkInput bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [category...]",
	Short: "Check dataset image URLs against the image directories",
	Long: `Check verifies that the image URLs of a dataset point at existing files of
the category's image directory and reports cards without an image, stale URLs,
images shared by several cards and images no card uses.

The output dataset is checked when it exists, the input dataset otherwise.
Use --input to always check the input dataset.`,
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
		cache := listing.NewCache(cfg.Ignore)
		failed := 0

		for _, cat := range categories {
			path := config.Resolve(workdirFlag, cat.Output)
			if _, err := os.Stat(path); checkInput || err != nil {
				path = config.Resolve(workdirFlag, cat.Input)
			}

			v := validator.NewValidator(cat, cfg.Rule(cat), cache, workdirFlag)
			results, err := v.Validate(path)
			if err != nil {
				return fmt.Errorf("check error: %v", err)
			}

			fmt.Fprintf(out, "Check Results: %s (%s)\n", cat.Key, path)
			fmt.Fprintln(out, "-------------------")

			if len(results.Errors) == 0 {
				fmt.Fprintf(out, "✅ All image URLs of '%s' point at existing files.\n", cat.Key)
			} else {
				failed++
				color.New(color.FgRed).Fprintf(out, "❌ '%s' has %d errors:\n", cat.Key, len(results.Errors))
				for i, e := range results.Errors {
					fmt.Fprintf(out, "%d. %s\n", i+1, e)
				}
			}

			if len(results.Warnings) > 0 {
				color.New(color.FgYellow).Fprintln(out, "\nWarnings:")
				for i, warn := range results.Warnings {
					fmt.Fprintf(out, "%d. %s\n", i+1, warn)
				}
			}
			fmt.Fprintln(out)
		}

		if failed > 0 {
			return fmt.Errorf("check failed for %d categories", failed)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkInput, "input", false, "Check the input dataset instead of the output")
}
