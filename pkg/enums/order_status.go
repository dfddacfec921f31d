package enums

import "slices"

// OrderStatus is the customer visible stage of an order.
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "Received"
	OrderStatusInProgress OrderStatus = "In Progress"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// validOrderStatuses is ordered by stage.
var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusDelivered,
}

// OrderStatuses returns every stage in lifecycle order.
func OrderStatuses() []OrderStatus {
	return slices.Clone(validOrderStatuses)
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	return s.Stage() >= 0
}

// Stage returns the zero based position of the status, or -1 when unknown.
func (s OrderStatus) Stage() int {
	return slices.Index(validOrderStatuses, s)
}

// Progress returns the completion percentage shown on the tracking bar.
func (s OrderStatus) Progress() int {
	stage := s.Stage()
	if stage < 0 {
		return 0
	}
	return (stage + 1) * 100 / len(validOrderStatuses)
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	return parse("order status", validOrderStatuses, value)
}
