package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
)

// ItemInput is one submitted cart line.
type ItemInput struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Price             int64          `json:"price"`
	Quantity          int            `json:"quantity"`
	Description       string         `json:"description"`
	ItemType          enums.ItemType `json:"itemType"`
	CustomDescription string         `json:"customDescription,omitempty"`
	Fabric            string         `json:"fabric,omitempty"`
}

// CreateOrderInput is the order snapshot posted by the storefront.
type CreateOrderInput struct {
	UserName  string          `json:"user_name"`
	UserEmail string          `json:"user_email"`
	UserPhone string          `json:"user_phone"`
	Items     []ItemInput     `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

type OrderCreatedDTO struct {
	OrderID int64             `json:"orderId"`
	Status  enums.OrderStatus `json:"status"`
}

type ItemSummaryDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type TrackedOrderDTO struct {
	OrderID           int64             `json:"orderId"`
	Status            enums.OrderStatus `json:"status"`
	Items             []ItemSummaryDTO  `json:"items"`
	CreatedAt         time.Time         `json:"createdAt"`
	EstimatedDelivery string            `json:"estimatedDelivery"`
}

// AdminOrderDTO is the back office projection of an order.
type AdminOrderDTO struct {
	ID        int64             `json:"id"`
	UserName  string            `json:"user_name"`
	UserEmail string            `json:"user_email"`
	UserPhone string            `json:"user_phone"`
	Items     []ItemSummaryDTO  `json:"items"`
	Total     int64             `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type AdminOrderPageDTO struct {
	Orders     []AdminOrderDTO `json:"orders"`
	NextCursor string          `json:"-"`
}

type StatusUpdatedDTO struct {
	OrderID int64             `json:"orderId"`
	Status  enums.OrderStatus `json:"status"`
}

func summarize(items []models.OrderItem) []ItemSummaryDTO {
	out := make([]ItemSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ItemSummaryDTO{Name: item.Name, Quantity: item.Quantity})
	}
	return out
}

func toAdminDTO(o models.Order) AdminOrderDTO {
	return AdminOrderDTO{
		ID:        o.ID,
		UserName:  o.UserName,
		UserEmail: o.UserEmail,
		UserPhone: o.UserPhone,
		Items:     summarize(o.Items),
		Total:     o.Total.Round(0).IntPart(),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}
