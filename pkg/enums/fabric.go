package enums

import "slices"

// Fabric is a suiting fabric grade offered for custom tailoring.
type Fabric string

const (
	FabricNormalPlain   Fabric = "Normal Quality Plain Fabric"
	FabricStandardPlain Fabric = "Standard Quality Plain Fabric"
	FabricHighCheck     Fabric = "High Check Fabrics"
	FabricSuperWool     Fabric = "Super Wool Fabric"
)

type fabricTerms struct {
	extraDays int
	listPrice int64
}

var fabricCatalog = map[Fabric]fabricTerms{
	FabricNormalPlain:   {extraDays: 0, listPrice: 12000},
	FabricStandardPlain: {extraDays: 2, listPrice: 13000},
	FabricHighCheck:     {extraDays: 4, listPrice: 15000},
	FabricSuperWool:     {extraDays: 7, listPrice: 25000},
}

var validFabrics = []Fabric{
	FabricNormalPlain,
	FabricStandardPlain,
	FabricHighCheck,
	FabricSuperWool,
}

// Fabrics returns the fabrics in price order.
func Fabrics() []Fabric {
	return slices.Clone(validFabrics)
}

// String implements fmt.Stringer.
func (f Fabric) String() string {
	return string(f)
}

// IsValid reports whether the value is a known Fabric.
func (f Fabric) IsValid() bool {
	_, ok := fabricCatalog[f]
	return ok
}

// ExtraDeliveryDays is the tailoring time the fabric adds on top of the base
// delivery window. Unknown fabrics add nothing.
func (f Fabric) ExtraDeliveryDays() int {
	return fabricCatalog[f].extraDays
}

// ListPrice is the KES price of a custom suit cut from this fabric.
func (f Fabric) ListPrice() int64 {
	return fabricCatalog[f].listPrice
}

// ParseFabric converts raw input into a Fabric.
func ParseFabric(value string) (Fabric, error) {
	return parse("fabric", validFabrics, value)
}
