package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
)

// SeedProduct is one entry of the catalog seed file.
type SeedProduct struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Price       string   `yaml:"price"`
	ImageURLs   []string `yaml:"image_urls"`
	Sizes       []string `yaml:"sizes"`
	Colors      []string `yaml:"colors"`
	Description string   `yaml:"description"`
	Stock       int      `yaml:"stock"`
}

type seedFile struct {
	Products []SeedProduct `yaml:"products"`
}

// ParseSeed decodes and validates a YAML catalog.
func ParseSeed(r io.Reader) ([]models.Product, error) {
	var file seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Products))
	out := make([]models.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("product %q listed twice", p.Name)
		}
		seen[p.Name] = struct{}{}
		category, err := enums.ParseProductCategory(p.Category)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("product %q: invalid price %q", p.Name, p.Price)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q: stock cannot be negative", p.Name)
		}
		out = append(out, models.Product{
			Name:        p.Name,
			Category:    category,
			Price:       price,
			ImageURLs:   p.ImageURLs,
			Sizes:       p.Sizes,
			Colors:      p.Colors,
			Description: p.Description,
			Stock:       p.Stock,
		})
	}
	return out, nil
}

// SeedFromFile loads the YAML catalog at path and upserts it.
func SeedFromFile(ctx context.Context, repo *Repository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	products, err := ParseSeed(f)
	if err != nil {
		return 0, err
	}
	if err := repo.Upsert(ctx, products); err != nil {
		return 0, fmt.Errorf("upsert products: %w", err)
	}
	return len(products), nil
}
