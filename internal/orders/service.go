package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/pkg/checkout"
	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/metrics"
	"github.com/tailorline/storefront/pkg/pagination"
)

const (
	MsgOrderPlaced   = "Order placed successfully"
	MsgOrderNotFound = "Order not found"
	MsgTotalMismatch = "Order total does not match items"
)

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo    *Repository
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Service exposes order placement, tracking and back office updates.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderCreatedDTO, error)
	Track(ctx context.Context, orderID, emailOrPhone string) (*TrackedOrderDTO, error)
	List(ctx context.Context, params pagination.Params) (AdminOrderPageDTO, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*StatusUpdatedDTO, error)
}

type service struct {
	repo    *Repository
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: params.Repo, logg: logg, metrics: params.Metrics}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderCreatedDTO, error) {
	contact, err := validateCreate(input)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, models.OrderItem{
			ID:                in.ID,
			Name:              strings.TrimSpace(in.Name),
			Price:             in.Price,
			Quantity:          in.Quantity,
			Description:       in.Description,
			ItemType:          in.ItemType,
			CustomDescription: in.CustomDescription,
			Fabric:            in.Fabric,
		})
	}
	total := pricing.CartTotal(items)
	if !input.Total.Equal(decimal.NewFromInt(total)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, MsgTotalMismatch).
			WithDetails(map[string][]string{"total": {fmt.Sprintf("Expected %d", total)}})
	}

	order := &models.Order{
		UserName:  contact.Name,
		UserEmail: contact.Email,
		UserPhone: contact.Phone,
		Items:     items,
		Total:     decimal.NewFromInt(total),
		Status:    enums.OrderStatusReceived,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.metrics.OrderPlaced(total)
	ctx = s.logg.WithOrderID(ctx, order.ID)
	s.logg.Info(s.logg.WithField(ctx, "items", len(items)), "order.created")

	return &OrderCreatedDTO{OrderID: order.ID, Status: order.Status}, nil
}

func (s *service) Track(ctx context.Context, orderID, emailOrPhone string) (*TrackedOrderDTO, error) {
	orderID = strings.TrimSpace(orderID)
	emailOrPhone = strings.TrimSpace(emailOrPhone)
	details := map[string][]string{}
	if orderID == "" {
		details["orderId"] = []string{"Order ID is required"}
	}
	if emailOrPhone == "" {
		details["emailOrPhone"] = []string{"Email or phone is required"}
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, pkgerrors.MetadataFor(pkgerrors.CodeValidation).PublicMessage).WithDetails(details)
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(orderID, "#"), 10, 64)
	if err != nil || id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgOrderNotFound)
	}

	order, err := s.repo.FindForContact(ctx, id, emailOrPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, MsgOrderNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	eta := pricing.DeliveryDateFor(order.CreatedAt, order.Fabrics()...)
	return &TrackedOrderDTO{
		OrderID:           order.ID,
		Status:            order.Status,
		Items:             summarize(order.Items),
		CreatedAt:         order.CreatedAt,
		EstimatedDelivery: pricing.FormatLongDate(eta),
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (AdminOrderPageDTO, error) {
	rows, next, err := s.repo.List(ctx, params)
	if pagination.IsMalformed(err) {
		return AdminOrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if err != nil {
		return AdminOrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]AdminOrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAdminDTO(row))
	}
	return AdminOrderPageDTO{Orders: out, NextCursor: next}, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, raw string) (*StatusUpdatedDTO, error) {
	status, err := enums.ParseOrderStatus(strings.TrimSpace(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "The selected status is invalid.").
			WithDetails(map[string][]string{"status": {"The selected status is invalid."}})
	}
	found, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgOrderNotFound)
	}
	s.metrics.StatusChanged(status.String())
	ctx = s.logg.WithOrderID(ctx, orderID)
	s.logg.Info(s.logg.WithField(ctx, "status", status.String()), "order.status_updated")
	return &StatusUpdatedDTO{OrderID: orderID, Status: status}, nil
}

// validateCreate checks the contact and every line, collecting all field
// errors under the request's JSON names.
func validateCreate(input CreateOrderInput) (checkout.Contact, error) {
	contact := checkout.Contact{Name: input.UserName, Email: input.UserEmail, Phone: input.UserPhone}.Normalize()
	details := map[string][]string{}
	for field, msg := range contact.Validate() {
		details["user_"+field] = []string{msg}
	}

	if len(input.Items) == 0 {
		details["items"] = []string{"Select at least one item to order"}
	}
	for i, item := range input.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		if item.ID <= 0 {
			details[prefix+"id"] = []string{"The item id is required."}
		}
		if strings.TrimSpace(item.Name) == "" {
			details[prefix+"name"] = []string{"The item name is required."}
		}
		if item.Price < 0 {
			details[prefix+"price"] = []string{"The price must be at least 0."}
		}
		if item.Quantity < 1 {
			details[prefix+"quantity"] = []string{"The quantity must be at least 1."}
		}
		if !item.ItemType.IsValid() {
			details[prefix+"itemType"] = []string{"The selected item type is invalid."}
		}
		if item.Fabric != "" && !enums.Fabric(item.Fabric).IsValid() {
			details[prefix+"fabric"] = []string{"The selected fabric is invalid."}
		}
	}
	if input.Total.IsNegative() {
		details["total"] = []string{"The total must be at least 0."}
	}

	if len(details) == 0 {
		return contact, nil
	}
	return contact, pkgerrors.New(pkgerrors.CodeValidation, firstMessage(details)).WithDetails(details)
}

var fieldOrder = []string{"user_name", "user_email", "user_phone", "items"}

func firstMessage(details map[string][]string) string {
	for _, field := range fieldOrder {
		if msgs, ok := details[field]; ok && len(msgs) > 0 {
			return msgs[0]
		}
	}
	return pkgerrors.MetadataFor(pkgerrors.CodeValidation).PublicMessage
}
