package enums

// ItemType separates catalog products from custom tailoring requests, whose
// ids come from different tables and may collide.
type ItemType string

const (
	ItemTypeStandard ItemType = "standard"
	ItemTypeCustom   ItemType = "custom"
)

var itemTypes = []ItemType{ItemTypeStandard, ItemTypeCustom}

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool { return member(itemTypes, t) }

func ParseItemType(value string) (ItemType, error) {
	return parse("item type", itemTypes, value)
}
