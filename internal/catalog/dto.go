package catalog

import (
	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
)

// ProductDTO is the public catalog projection.
type ProductDTO struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Category    enums.ProductCategory `json:"category"`
	Price       int64                 `json:"price"`
	ImageURLs   []string              `json:"image_urls"`
	Sizes       []string              `json:"sizes"`
	Colors      []string              `json:"colors"`
	Description string                `json:"description"`
	Stock       int                   `json:"stock"`
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price.Round(0).IntPart(),
		ImageURLs:   nonNil(p.ImageURLs),
		Sizes:       nonNil(p.Sizes),
		Colors:      nonNil(p.Colors),
		Description: p.Description,
		Stock:       p.Stock,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
