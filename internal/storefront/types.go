package storefront

import (
	"time"

	"github.com/tailorline/storefront/pkg/enums"
)

// OrderItem is a cart line as submitted with an order.
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

type CreateOrderRequest struct {
	UserName  string      `json:"user_name"`
	UserEmail string      `json:"user_email"`
	UserPhone string      `json:"user_phone"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
}

type OrderCreated struct {
	OrderID int64             `json:"orderId"`
	Status  enums.OrderStatus `json:"status"`
}

type ItemSummary struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type TrackedOrder struct {
	OrderID           int64             `json:"orderId"`
	Status            enums.OrderStatus `json:"status"`
	Items             []ItemSummary     `json:"items"`
	CreatedAt         time.Time         `json:"createdAt"`
	EstimatedDelivery string            `json:"estimatedDelivery"`
}

type Product struct {
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

// TailoringRequest is the measurement form. Image is optional.
type TailoringRequest struct {
	Name                  string
	Phone                 string
	Email                 string
	Chest                 float64
	Waist                 float64
	ArmLength             float64
	Shoulder              float64
	Size                  enums.SuitSize
	Color                 string
	FitStyle              enums.FitStyle
	BottomStyle           enums.BottomStyle
	Fabric                enums.Fabric
	Lapels                enums.Lapels
	IsWomensSuit          bool
	AdditionalDescription string
	ImageName             string
	Image                 []byte
}

type TailoringRecord struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Phone                 string            `json:"phone"`
	Email                 string            `json:"email"`
	Chest                 float64           `json:"chest"`
	Waist                 float64           `json:"waist"`
	ArmLength             float64           `json:"arm_length"`
	Shoulder              float64           `json:"shoulder"`
	Size                  enums.SuitSize    `json:"size"`
	Color                 string            `json:"color"`
	FitStyle              enums.FitStyle    `json:"fit_style"`
	BottomStyle           enums.BottomStyle `json:"bottom_style"`
	Fabric                enums.Fabric      `json:"fabric"`
	Lapels                enums.Lapels      `json:"lapels"`
	IsWomensSuit          bool              `json:"is_womens_suit"`
	AdditionalDescription string            `json:"additional_description"`
	ImageURL              string            `json:"image_url,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}

type ContactRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Message            string `json:"message"`
	IsTailoringRequest bool   `json:"isTailoringRequest"`
}

type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AdminOrder struct {
	ID        int64             `json:"id"`
	UserName  string            `json:"user_name"`
	UserEmail string            `json:"user_email"`
	UserPhone string            `json:"user_phone"`
	Items     []ItemSummary     `json:"items"`
	Total     int64             `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type OrderStatusUpdate struct {
	OrderID int64             `json:"orderId"`
	Status  enums.OrderStatus `json:"status"`
}

type Subscriber struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
