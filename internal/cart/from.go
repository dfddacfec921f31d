package cart

import (
	"fmt"
	"strings"

	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/enums"
)

// ProductLine is the cart line for qty units of a catalog product.
func ProductLine(p storefront.Product, qty int) Line {
	return Line{
		ID:          p.ID,
		ItemType:    enums.ItemTypeStandard,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    qty,
		ImageURLs:   append([]string(nil), p.ImageURLs...),
	}.normalize()
}

// TailoringLine is the custom line for a saved measurement request. The unit
// price is the list price of the chosen fabric.
func TailoringLine(rec storefront.TailoringRecord) Line {
	kind := "Custom Suit"
	if rec.IsWomensSuit {
		kind = "Custom Women's Suit"
	}
	parts := []string{
		fmt.Sprintf("Size %s", rec.Size),
		fmt.Sprintf("%s fit", rec.FitStyle),
		fmt.Sprintf("%s lapels", rec.Lapels),
	}
	if rec.BottomStyle != "" {
		parts = append(parts, string(rec.BottomStyle))
	}
	if rec.Color != "" {
		parts = append(parts, rec.Color)
	}
	line := Line{
		ID:                rec.ID,
		ItemType:          enums.ItemTypeCustom,
		Name:              kind,
		Description:       strings.Join(parts, ", "),
		Price:             rec.Fabric.ListPrice(),
		Quantity:          1,
		Fabric:            rec.Fabric.String(),
		CustomDescription: rec.AdditionalDescription,
	}
	if rec.ImageURL != "" {
		line.ImageURLs = []string{rec.ImageURL}
	}
	return line
}
