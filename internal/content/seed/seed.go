// Package seed provides the datasets a fresh site starts with.
package seed

import (
	_ "embed"
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
)

var ErrDecode = errors.New("seed: failed to decode bundled data")

//go:embed seed.yaml
var raw []byte

// Dataset is the default content of every store.
type Dataset struct {
	News     []content.NewsArticle `yaml:"news"`
	Products []content.Product     `yaml:"products"`
	Media    []content.MediaItem   `yaml:"media"`
	Company  content.CompanyConfig `yaml:"company"`
}

// Default decodes the bundled dataset. Every call returns an independent copy.
func Default() (Dataset, error) {
	return Parse(raw)
}

// Parse decodes a dataset from YAML. Blank news and product slugs are derived from
// their labels.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, errors.Join(ErrDecode, err)
	}
	ds.News = slug.Heal(ds.News)
	ds.Products = slug.Heal(ds.Products)
	return ds, nil
}
