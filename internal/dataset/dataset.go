package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pplale/cardimage/internal/card"
	"github.com/pplale/cardimage/internal/jsonobj"
)

// Dataset is a card data file: a JSON object holding the cards of one
// category under the category key.
type Dataset struct {
	Path  string
	Key   string
	Cards []*card.Card

	root jsonobj.Object
}

// Load reads the dataset at path and extracts the cards stored under key
func Load(path, key string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	ds, err := Parse(data, key)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	ds.Path = path

	return ds, nil
}

// Parse decodes dataset bytes
func Parse(data []byte, key string) (*Dataset, error) {
	ds := &Dataset{Key: key}
	if err := json.Unmarshal(data, &ds.root); err != nil {
		return nil, err
	}

	raw, ok := ds.root.Get(key)
	if !ok {
		return nil, fmt.Errorf("key %q not found", key)
	}
	if err := json.Unmarshal(raw, &ds.Cards); err != nil {
		return nil, fmt.Errorf("key %q does not hold a list of cards: %w", key, err)
	}
	for i, c := range ds.Cards {
		if c == nil {
			return nil, fmt.Errorf("card %d under %q is null", i, key)
		}
	}

	return ds, nil
}

// Encode renders the dataset with two-space indentation. Non-ASCII text is
// written literally.
func (d *Dataset) Encode() ([]byte, error) {
	cards, err := card.EncodeList(d.Cards)
	if err != nil {
		return nil, err
	}
	d.root.SetRaw(d.Key, cards)

	compact, err := d.root.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Save writes the dataset to path, creating the parent directory if needed
func (d *Dataset) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("error encoding dataset: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing dataset: %w", err)
	}

	return nil
}
