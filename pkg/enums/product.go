package enums

// ProductCategory splits the catalog into the men's and women's ranges.
type ProductCategory string

const (
	ProductCategoryMens   ProductCategory = "mens"
	ProductCategoryWomens ProductCategory = "womens"
)

var productCategories = []ProductCategory{ProductCategoryMens, ProductCategoryWomens}

func (c ProductCategory) String() string { return string(c) }

func (c ProductCategory) IsValid() bool { return member(productCategories, c) }

func ParseProductCategory(value string) (ProductCategory, error) {
	return parse("product category", productCategories, value)
}
