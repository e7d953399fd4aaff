package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML document driving the seed commands.
type Manifest struct {
	Categories []CategorySeed `yaml:"categories"`
	Products   []ProductSeed  `yaml:"products"`
	Images     ImageMappings  `yaml:"images"`
}

type CategorySeed struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type ProductSeed struct {
	Name          string          `yaml:"name"`
	Slug          string          `yaml:"slug"`
	Subtitle      string          `yaml:"subtitle"`
	SKU           string          `yaml:"sku"`
	Price         string          `yaml:"price"`
	Stock         int             `yaml:"stock"`
	Description   string          `yaml:"description"`
	CategorySlug  string          `yaml:"category"`
	TechnicalData []TechnicalSeed `yaml:"technical_data"`
}

type TechnicalSeed struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// ImageMappings links already-seeded records to image files by slug.
type ImageMappings struct {
	Categories []ImageLink `yaml:"categories"`
	Products   []ImageLink `yaml:"products"`
}

type ImageLink struct {
	Slug  string `yaml:"slug"`
	Image string `yaml:"image"`
}

// DecimalPrice parses the price field, kept as a string in YAML to
// avoid float rounding.
func (p ProductSeed) DecimalPrice() (decimal.Decimal, error) {
	return decimal.NewFromString(p.Price)
}

func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
