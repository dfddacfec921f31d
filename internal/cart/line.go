package cart

import (
	"fmt"

	"github.com/tailorline/storefront/pkg/enums"
)

// Key identifies a cart line. Catalog products and custom tailoring requests
// come from different id sequences so the item type is part of the identity.
type Key struct {
	ID       int64          `json:"id"`
	ItemType enums.ItemType `json:"itemType"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.ItemType, k.ID)
}

// StandardKey is the key of a catalog product line.
func StandardKey(id int64) Key {
	return Key{ID: id, ItemType: enums.ItemTypeStandard}
}

// CustomKey is the key of a custom tailoring line.
func CustomKey(id int64) Key {
	return Key{ID: id, ItemType: enums.ItemTypeCustom}
}

// Line is a single entry in the cart. Price is in whole shillings.
type Line struct {
	ID                int64          `json:"id"`
	ItemType          enums.ItemType `json:"itemType"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Price             int64          `json:"price"`
	Quantity          int            `json:"quantity"`
	Fabric            string         `json:"fabric,omitempty"`
	CustomDescription string         `json:"customDescription,omitempty"`
	ImageURLs         []string       `json:"imageUrls,omitempty"`
}

func (l Line) Key() Key {
	return Key{ID: l.ID, ItemType: l.ItemType}
}

func (l Line) LinePrice() int64 {
	return l.Price
}

func (l Line) LineQuantity() int {
	return l.Quantity
}

// PrimaryImage returns the first image url, if any.
func (l Line) PrimaryImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

func (l Line) clone() Line {
	if l.ImageURLs != nil {
		l.ImageURLs = append([]string(nil), l.ImageURLs...)
	}
	return l
}

// normalize fills defaults for lines arriving from storage or callers.
func (l Line) normalize() Line {
	if !l.ItemType.IsValid() {
		l.ItemType = enums.ItemTypeStandard
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Price < 0 {
		l.Price = 0
	}
	return l
}
