package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tailorline/storefront/internal/cart"
	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/checkout"
	"github.com/tailorline/storefront/pkg/enums"
	"github.com/tailorline/storefront/pkg/logger"
)

const (
	MsgEmptySelection = "Select at least one item to order"
	MsgSubmitFailed   = "Failed to place order"
	msgPlacedFormat   = "Order #%d placed! We'll contact you soon."
)

// State is where the workflow currently is in a submission.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome classifies a finished Submit call.
type Outcome string

const (
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeInvalid        Outcome = "invalid"
	OutcomeEmptySelection Outcome = "empty_selection"
	OutcomeFailed         Outcome = "failed"
	OutcomeBusy           Outcome = "busy"
)

// OrderForm holds the contact details typed by the customer.
type OrderForm struct {
	Name  string
	Email string
	Phone string
}

func (f OrderForm) contact() checkout.Contact {
	return checkout.Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}.Normalize()
}

// Selection picks the cart lines to order. The zero value selects every line.
type Selection struct {
	explicit bool
	keys     []cart.Key
}

// SelectAll orders the whole cart.
func SelectAll() Selection { return Selection{} }

// Select orders only the listed lines.
func Select(keys ...cart.Key) Selection {
	return Selection{explicit: true, keys: append([]cart.Key(nil), keys...)}
}

// OrderCreator submits an order to the storefront API.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req storefront.CreateOrderRequest, idempotencyKey string) (*storefront.OrderCreated, error)
}

// Confirmation is what the caller needs to show the placed order.
type Confirmation struct {
	OrderID int64
	Status  enums.OrderStatus
	Items   []cart.Line
	Total   int64
}

// Result is the value every Submit call ends with.
type Result struct {
	Outcome      Outcome
	Message      string
	FieldErrors  checkout.FieldErrors
	Confirmation *Confirmation
}

// OK reports whether the order was placed.
func (r Result) OK() bool { return r.Outcome == OutcomeSucceeded }

// Workflow turns a cart selection and contact details into a placed order.
type Workflow struct {
	store  *cart.Store
	orders OrderCreator
	logg   *logger.Logger
	newKey func() string

	inFlight atomic.Bool

	mu    sync.Mutex
	state State
	form  OrderForm
}

func NewWorkflow(store *cart.Store, orders OrderCreator, logg *logger.Logger) (*Workflow, error) {
	if store == nil {
		return nil, errors.New("cart store required")
	}
	if orders == nil {
		return nil, errors.New("order creator required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Workflow{
		store:  store,
		orders: orders,
		logg:   logg,
		newKey: func() string { return uuid.NewString() },
	}, nil
}

func (w *Workflow) SetForm(form OrderForm) {
	w.mu.Lock()
	w.form = form
	w.mu.Unlock()
}

func (w *Workflow) Form() OrderForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Submit validates the form, resolves the selection and places the order.
// Only one submission runs at a time; a second caller gets OutcomeBusy.
func (w *Workflow) Submit(ctx context.Context, sel Selection) Result {
	if !w.inFlight.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeBusy}
	}
	defer w.inFlight.Store(false)
	defer w.setState(StateIdle)

	w.setState(StateValidating)
	contact := w.Form().contact()
	if errs := contact.Validate(); len(errs) > 0 {
		return Result{Outcome: OutcomeInvalid, Message: errs.First(), FieldErrors: errs}
	}

	lines := w.resolve(sel)
	if len(lines) == 0 {
		return Result{Outcome: OutcomeEmptySelection, Message: MsgEmptySelection}
	}

	w.setState(StateSubmitting)
	total := pricing.CartTotal(lines)
	req := storefront.CreateOrderRequest{
		UserName:  contact.Name,
		UserEmail: contact.Email,
		UserPhone: contact.Phone,
		Items:     toOrderItems(lines),
		Total:     total,
	}
	created, err := w.orders.CreateOrder(ctx, req, w.newKey())
	if err != nil {
		w.setState(StateFailed)
		w.logg.Warn(w.logg.WithField(ctx, "error", err.Error()), "checkout.submit_failed")
		msg := storefront.ServerMessage(err)
		if msg == "" {
			msg = MsgSubmitFailed
		}
		return Result{Outcome: OutcomeFailed, Message: msg}
	}

	w.setState(StateSucceeded)
	keys := make([]cart.Key, 0, len(lines))
	for _, l := range lines {
		keys = append(keys, l.Key())
	}
	// The order exists server-side, so the removal ignores caller cancellation.
	removed := w.store.RemoveLines(context.WithoutCancel(ctx), keys)
	w.SetForm(OrderForm{})

	ctx = w.logg.WithOrderID(ctx, created.OrderID)
	ctx = w.logg.WithFields(ctx, map[string]any{"lines": len(lines), "removed": removed})
	w.logg.Info(ctx, "checkout.order_placed")

	return Result{
		Outcome: OutcomeSucceeded,
		Message: fmt.Sprintf(msgPlacedFormat, created.OrderID),
		Confirmation: &Confirmation{
			OrderID: created.OrderID,
			Status:  created.Status,
			Items:   lines,
			Total:   total,
		},
	}
}

func (w *Workflow) resolve(sel Selection) []cart.Line {
	if !sel.explicit {
		return w.store.Lines()
	}
	lines := make([]cart.Line, 0, len(sel.keys))
	seen := make(map[cart.Key]struct{}, len(sel.keys))
	for _, k := range sel.keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if l, ok := w.store.Get(k); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func toOrderItems(lines []cart.Line) []storefront.OrderItem {
	items := make([]storefront.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, storefront.OrderItem{
			ID:                l.ID,
			Name:              l.Name,
			Price:             l.Price,
			Quantity:          l.Quantity,
			Description:       l.Description,
			ItemType:          l.ItemType,
			CustomDescription: l.CustomDescription,
			Fabric:            l.Fabric,
		})
	}
	return items
}
