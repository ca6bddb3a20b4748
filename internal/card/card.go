package card

import (
	"encoding/json"
	"fmt"

	"github.com/pplale/cardimage/internal/jsonobj"
)

// Well-known card fields
const (
	FieldName        = "name"
	FieldImageURL    = "imageUrl"
	FieldDescription = "description"
)

// Card represents a card entry of a dataset. Fields other than the ones the
// tool touches are carried through untouched.
type Card struct {
	jsonobj.Object
}

// Name returns the display name of the card
func (c *Card) Name() (string, error) {
	name, ok, err := c.GetString(FieldName)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("card has no %q field", FieldName)
	}
	return name, nil
}

// Attribute returns the category attribute (e.g. fruit). Missing or null
// attributes read as the empty string.
func (c *Card) Attribute(field string) (string, error) {
	v, _, err := c.GetString(field)
	return v, err
}

// ImageURL returns the current image URL, or "" if the card has none
func (c *Card) ImageURL() string {
	v, _, err := c.GetString(FieldImageURL)
	if err != nil {
		return ""
	}
	return v
}

// SetImageURL updates the image URL, appending the field if it is new
func (c *Card) SetImageURL(url string) error {
	return c.Set(FieldImageURL, url)
}

// Description returns the card text, if any
func (c *Card) Description() string {
	v, _, err := c.GetString(FieldDescription)
	if err != nil {
		return ""
	}
	return v
}

// EncodeList writes cards as a compact JSON array
func EncodeList(cards []*Card) (json.RawMessage, error) {
	buf := []byte{'['}
	for i, c := range cards {
		if i > 0 {
			buf = append(buf, ',')
		}
		raw, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf = append(buf, raw...)
	}
	buf = append(buf, ']')
	return buf, nil
}
