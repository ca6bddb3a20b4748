package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pplale/cardimage/internal/ansiart"
	"github.com/pplale/cardimage/internal/card"
	"github.com/pplale/cardimage/internal/config"
	"github.com/pplale/cardimage/internal/dataset"
	"github.com/pplale/cardimage/internal/listing"
	"github.com/pplale/cardimage/internal/matcher"
)

var (
	showCategory  string
	showAttribute string
	showNoCache   bool
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a card next to an ANSI preview of its matched image",
	Long: `Show looks up a card by name in the category's dataset, matches it to an image
file and prints an ANSI terminal preview of the image next to the card fields.

When several cards share a name, use --attribute to pick one. Cards missing
from the dataset can still be previewed by name.

Examples:
  cardimage show -c yojo -a ぶどう やよいちゃん
  cardimage show -c sweet ショートケーキ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := cfg.Category(showCategory)
		if err != nil {
			return err
		}
		rule := cfg.Rule(cat)

		datasetPath := config.Resolve(workdirFlag, cat.Output)
		if _, err := os.Stat(datasetPath); err != nil {
			datasetPath = config.Resolve(workdirFlag, cat.Input)
		}

		ds, err := dataset.Load(datasetPath, cat.Key)
		if err != nil {
			return fmt.Errorf("error loading dataset: %v", err)
		}

		name, attribute := args[0], showAttribute
		c := findCard(ds.Cards, rule, cat.Attribute, name, attribute)
		if c != nil {
			name, _ = c.Name()
			attribute, _ = c.Attribute(cat.Attribute)
		}

		imageDir := config.Resolve(workdirFlag, cat.ImageDir)
		files, err := listing.NewCache(cfg.Ignore).List(imageDir)
		if err != nil {
			return err
		}

		file, ok := rule.Match(files, name, attribute)
		if !ok {
			return fmt.Errorf("no matching file found for %s (%s)", name, attribute)
		}

		cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
		if showNoCache {
			cacheDir = ""
		}
		art, err := ansiart.Load(filepath.Join(imageDir, file), cacheDir, ansiart.DefaultWidth, ansiart.DefaultHeight)
		if err != nil {
			return fmt.Errorf("error rendering image: %v", err)
		}

		info := cardInfo{
			Name:      name,
			Category:  cat.Key,
			Attribute: attribute,
			File:      file,
			URL:       cat.ImageURL(file),
		}
		if c != nil {
			info.Current = c.ImageURL()
			info.Description = c.Description()
		}

		displayCard(cmd.OutOrStdout(), info, art)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showCategory, "category", "c", "", "Category of the card")
	showCmd.Flags().StringVarP(&showAttribute, "attribute", "a", "", "Category attribute of the card (e.g. fruit)")
	showCmd.Flags().BoolVar(&showNoCache, "no-cache", false, "Render the preview without the ANSI cache")
	showCmd.MarkFlagRequired("category")
}

type cardInfo struct {
	Name        string
	Category    string
	Attribute   string
	File        string
	URL         string
	Current     string
	Description string
}

// findCard returns the first card whose cleaned name equals the cleaned
// query and, if attribute is set, whose attribute matches
func findCard(cards []*card.Card, rule matcher.Rule, field, name, attribute string) *card.Card {
	want := rule.Clean(name)
	for _, c := range cards {
		n, err := c.Name()
		if err != nil || rule.Clean(n) != want {
			continue
		}
		if attribute != "" {
			if a, _ := c.Attribute(field); a != attribute {
				continue
			}
		}
		return c
	}
	return nil
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine []rune
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	// card text is mostly Japanese without spaces, so long words are cut
	var chunks [][]rune
	for _, word := range words {
		w := []rune(word)
		for len(w) > width {
			chunks = append(chunks, w[:width])
			w = w[width:]
		}
		chunks = append(chunks, w)
	}

	for _, w := range chunks {
		switch {
		case len(currentLine) == 0:
			currentLine = append([]rune(nil), w...)
		case len(currentLine)+1+len(w) <= width:
			currentLine = append(append(currentLine, ' '), w...)
		default:
			result = append(result, string(currentLine))
			currentLine = append([]rune(nil), w...)
		}
	}

	if len(currentLine) > 0 {
		result = append(result, string(currentLine))
	}

	return result
}

// displayCard prints the ANSI art with the card info to its right
func displayCard(out io.Writer, info cardInfo, ansiArt string) {
	ansiLines := strings.Split(strings.TrimSuffix(ansiArt, "\n"), "\n")
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		if w := len([]rune(ansiart.Strip(line))); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	label := colorize.CyanString
	value := func(s string) string { return colorize.HiWhiteString("%s", s) }

	infoLines := []string{
		label("Card:      ") + value(info.Name),
		label("Category:  ") + value(info.Category),
		label("Attribute: ") + value(info.Attribute),
		label("File:      ") + value(info.File),
		label("URL:       ") + value(info.URL),
	}
	if info.Current != "" && info.Current != info.URL {
		infoLines = append(infoLines, label("Current:   ")+colorize.YellowString("%s", info.Current))
	}

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if info.Description != "" {
		infoLines = append(infoLines, "", label("Description:"))
		infoLines = append(infoLines, wrapText(info.Description, infoWidth)...)
	}

	fmt.Fprintln(out)

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(out, "  ")
		if i < len(ansiLines) {
			fmt.Fprint(out, ansiLines[i])
			visibleWidth := len([]rune(ansiart.Strip(ansiLines[i])))
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(out, infoLines[i])
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
}
