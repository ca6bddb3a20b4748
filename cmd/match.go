package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pplale/cardimage/internal/config"
	"github.com/pplale/cardimage/internal/listing"
)

var (
	matchCategory  string
	matchAttribute string
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match [name]",
	Short: "Show which image file a card name resolves to",
	Long: `Match runs the filename matcher for a single card name against the image
directory of a category, without touching any dataset.

Examples:
  cardimage match -c yojo -a いちご やよいちゃん
  cardimage match -c sweet ショートケーキ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := cfg.Category(matchCategory)
		if err != nil {
			return err
		}

		files, err := listing.NewCache(cfg.Ignore).List(config.Resolve(workdirFlag, cat.ImageDir))
		if err != nil {
			return err
		}

		rule := cfg.Rule(cat)
		file, ok := rule.Match(files, args[0], matchAttribute)
		if !ok {
			return fmt.Errorf("no matching file found for %s (%s)", args[0], matchAttribute)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, file)
		fmt.Fprintln(out, cat.ImageURL(file))
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVarP(&matchCategory, "category", "c", "", "Category of the card")
	matchCmd.Flags().StringVarP(&matchAttribute, "attribute", "a", "", "Category attribute of the card (e.g. fruit)")
	matchCmd.MarkFlagRequired("category")
}
