package updater

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/pplale/cardimage/internal/config"
	"github.com/pplale/cardimage/internal/dataset"
	"github.com/pplale/cardimage/internal/listing"
)

var (
	updatedColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
)

// Report summarizes the update of one category
type Report struct {
	Category string
	Output   string
	Updated  []string
	Missing  []string
	Written  bool
}

// Updater rewrites the image URLs of card datasets
type Updater struct {
	Config  *config.Config
	Cache   *listing.Cache
	Workdir string
	Out     io.Writer
	DryRun  bool
}

// New creates an updater with its own listing cache
func New(cfg *config.Config, workdir string, out io.Writer) *Updater {
	return &Updater{
		Config:  cfg,
		Cache:   listing.NewCache(cfg.Ignore),
		Workdir: workdir,
		Out:     out,
	}
}

// Run updates a single category: every card gets the URL of its matching
// image, cards without a match keep their current URL. The dataset is then
// saved to the category output unless DryRun is set.
func (u *Updater) Run(cat config.Category) (*Report, error) {
	ds, err := dataset.Load(config.Resolve(u.Workdir, cat.Input), cat.Key)
	if err != nil {
		return nil, err
	}

	files, err := u.Cache.List(config.Resolve(u.Workdir, cat.ImageDir))
	if err != nil {
		return nil, err
	}

	rule := u.Config.Rule(cat)
	report := &Report{
		Category: cat.Key,
		Output:   config.Resolve(u.Workdir, cat.Output),
	}

	for i, c := range ds.Cards {
		name, err := c.Name()
		if err != nil {
			return nil, fmt.Errorf("%s card %d: %w", cat.Key, i, err)
		}
		attribute, err := c.Attribute(cat.Attribute)
		if err != nil {
			return nil, fmt.Errorf("%s card %d (%s): %w", cat.Key, i, name, err)
		}

		file, ok := rule.Match(files, name, attribute)
		if !ok {
			warningColor.Fprintf(u.Out, "Warning: No matching file found for %s (%s)\n", name, attribute)
			report.Missing = append(report.Missing, name)
			continue
		}

		if err := c.SetImageURL(cat.ImageURL(file)); err != nil {
			return nil, err
		}
		updatedColor.Fprintf(u.Out, "Updated %s (%s): %s\n", name, attribute, file)
		report.Updated = append(report.Updated, name)
	}

	if u.DryRun {
		return report, nil
	}

	if err := ds.Save(report.Output); err != nil {
		return nil, err
	}
	report.Written = true

	return report, nil
}

// RunAll updates the given categories in order and stops at the first
// fatal error
func (u *Updater) RunAll(categories []config.Category) ([]*Report, error) {
	reports := make([]*Report, 0, len(categories))
	for _, cat := range categories {
		report, err := u.Run(cat)
		if err != nil {
			return reports, fmt.Errorf("error updating %s: %w", cat.Key, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
