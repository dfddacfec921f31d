package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/tailorline/storefront/pkg/db/types"
	"github.com/tailorline/storefront/pkg/enums"
)

// OrderItem is one cart line frozen into an order.
type OrderItem struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Price             int64          `json:"price"`
	Quantity          int            `json:"quantity"`
	Description       string         `json:"description"`
	ItemType          enums.ItemType `json:"itemType"`
	CustomDescription string         `json:"customDescription,omitempty"`
	Fabric            string         `json:"fabric,omitempty"`
}

func (i OrderItem) LinePrice() int64 { return i.Price }

func (i OrderItem) LineQuantity() int { return i.Quantity }

type Order struct {
	ID        int64                       `gorm:"column:id;primaryKey;autoIncrement"`
	UserName  string                      `gorm:"column:user_name;not null"`
	UserEmail string                      `gorm:"column:user_email;not null;index"`
	UserPhone string                      `gorm:"column:user_phone;size:20;not null"`
	Items     dbtypes.JSONList[OrderItem] `gorm:"column:items;type:jsonb;not null"`
	Total     decimal.Decimal             `gorm:"column:total;type:decimal(10,2);not null"`
	Status    enums.OrderStatus           `gorm:"column:status;not null;default:Received"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

// Fabrics lists the fabric of every item that has one.
func (o Order) Fabrics() []string {
	out := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Fabric != "" {
			out = append(out, item.Fabric)
		}
	}
	return out
}
