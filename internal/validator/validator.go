package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pplale/cardimage/internal/config"
	"github.com/pplale/cardimage/internal/dataset"
	"github.com/pplale/cardimage/internal/listing"
	"github.com/pplale/cardimage/internal/matcher"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks the image URLs of one category's dataset against its
// image directory
type Validator struct {
	Category config.Category
	Rule     matcher.Rule
	Cache    *listing.Cache
	Workdir  string
	Results  ValidationResults

	files   []string
	present map[string]bool
}

func NewValidator(cat config.Category, rule matcher.Rule, cache *listing.Cache, workdir string) *Validator {
	return &Validator{
		Category: cat,
		Rule:     rule,
		Cache:    cache,
		Workdir:  workdir,
		Results:  ValidationResults{},
	}
}

// Validate loads the dataset at path and reports broken, stale or missing
// image URLs. Unreadable datasets or image directories are returned as an
// error.
func (v *Validator) Validate(path string) (ValidationResults, error) {
	ds, err := dataset.Load(path, v.Category.Key)
	if err != nil {
		return v.Results, err
	}

	if err := v.loadImages(); err != nil {
		return v.Results, err
	}

	claimed := make(map[string][]string)
	for i, c := range ds.Cards {
		name, err := c.Name()
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %d: %v", i, err))
			continue
		}
		attribute, err := c.Attribute(v.Category.Attribute)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %d (%s): %v", i, name, err))
			continue
		}
		label := fmt.Sprintf("%s (%s)", name, attribute)

		v.validateImageURL(label, c.ImageURL())

		file, ok := v.Rule.Match(v.files, name, attribute)
		if !ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("no matching file found for %s", label))
			continue
		}
		claimed[file] = append(claimed[file], label)

		if url := c.ImageURL(); url != "" && url != v.Category.ImageURL(file) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("stale imageUrl for %s: %s (would be %s)", label, url, v.Category.ImageURL(file)))
		}
	}

	v.validateClaims(claimed)

	return v.Results, nil
}

func (v *Validator) loadImages() error {
	files, err := v.Cache.List(config.Resolve(v.Workdir, v.Category.ImageDir))
	if err != nil {
		return err
	}

	v.files = files
	v.present = make(map[string]bool, len(files))
	for _, f := range files {
		v.present[f] = true
	}
	return nil
}

// validateImageURL checks that the current URL points at an existing image
func (v *Validator) validateImageURL(label, url string) {
	if url == "" {
		v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("no imageUrl for %s", label))
		return
	}

	prefix := strings.TrimSuffix(v.Category.URLPrefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("imageUrl of %s is outside %s: %s", label, prefix, url))
		return
	}

	if file := strings.TrimPrefix(url, prefix); !v.present[file] {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("image not found for %s: %s", label, file))
	}
}

// validateClaims reports files shared by several cards and images no card
// resolves to
func (v *Validator) validateClaims(claimed map[string][]string) {
	shared := make([]string, 0)
	for file, labels := range claimed {
		if len(labels) > 1 {
			shared = append(shared, file)
		}
	}
	sort.Strings(shared)
	for _, file := range shared {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s is matched by %d cards: %s", file, len(claimed[file]), strings.Join(claimed[file], ", ")))
	}

	orphans := []string{}
	for _, file := range v.files {
		if strings.HasSuffix(file, v.Rule.Suffix) && len(claimed[file]) == 0 {
			orphans = append(orphans, file)
		}
	}
	if len(orphans) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("images not used by any card: %s", strings.Join(orphans, ", ")))
	}
}
