package tracking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/logger"
)

const (
	MsgOrderIDRequired      = "Order ID is required"
	MsgEmailOrPhoneRequired = "Email or phone is required"
	MsgFound                = "Order found!"
	MsgNotFound             = "Order not found"
)

// Outcome classifies a finished Track call.
type Outcome string

const (
	OutcomeFound   Outcome = "found"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailed  Outcome = "failed"
	OutcomeBusy    Outcome = "busy"
)

// Query identifies an order by its id and the contact used to place it.
type Query struct {
	OrderID      string
	EmailOrPhone string
}

func (q Query) normalize() Query {
	return Query{OrderID: strings.TrimSpace(q.OrderID), EmailOrPhone: strings.TrimSpace(q.EmailOrPhone)}
}

// Validate returns per-field messages, or nil when the query can be sent.
func (q Query) Validate() map[string]string {
	q = q.normalize()
	errs := map[string]string{}
	if q.OrderID == "" {
		errs["orderId"] = MsgOrderIDRequired
	}
	if q.EmailOrPhone == "" {
		errs["emailOrPhone"] = MsgEmailOrPhoneRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// OrderTracker looks an order up on the storefront API.
type OrderTracker interface {
	TrackOrder(ctx context.Context, orderID, emailOrPhone string) (*storefront.TrackedOrder, error)
}

// Result is the value every Track call ends with.
type Result struct {
	Outcome     Outcome
	Message     string
	FieldErrors map[string]string
	Order       *storefront.TrackedOrder
}

// Progress is the completion percentage of the found order, 0 otherwise.
func (r Result) Progress() int {
	if r.Order == nil {
		return 0
	}
	return r.Order.Status.Progress()
}

// Workflow runs order lookups and keeps the latest successful result.
type Workflow struct {
	tracker OrderTracker
	logg    *logger.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	current *storefront.TrackedOrder
}

func NewWorkflow(tracker OrderTracker, logg *logger.Logger) (*Workflow, error) {
	if tracker == nil {
		return nil, errors.New("order tracker required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Workflow{tracker: tracker, logg: logg}, nil
}

// Current returns the last order found, or nil after a failed lookup.
func (w *Workflow) Current() *storefront.TrackedOrder {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Workflow) setCurrent(o *storefront.TrackedOrder) {
	w.mu.Lock()
	w.current = o
	w.mu.Unlock()
}

// Track validates the query and fetches the order. A failed lookup clears
// the previously shown order.
func (w *Workflow) Track(ctx context.Context, q Query) Result {
	if !w.inFlight.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeBusy}
	}
	defer w.inFlight.Store(false)

	q = q.normalize()
	if errs := q.Validate(); errs != nil {
		msg := errs["orderId"]
		if msg == "" {
			msg = errs["emailOrPhone"]
		}
		return Result{Outcome: OutcomeInvalid, Message: msg, FieldErrors: errs}
	}

	order, err := w.tracker.TrackOrder(ctx, q.OrderID, q.EmailOrPhone)
	if err == nil && (order == nil || !order.Status.IsValid()) {
		err = errors.New("unrecognised order status")
	}
	if err != nil {
		w.setCurrent(nil)
		w.logg.Warn(w.logg.WithField(ctx, "error", err.Error()), "tracking.lookup_failed")
		msg := storefront.ServerMessage(err)
		if msg == "" {
			msg = MsgNotFound
		}
		return Result{Outcome: OutcomeFailed, Message: msg}
	}

	w.setCurrent(order)
	return Result{Outcome: OutcomeFound, Message: MsgFound, Order: order}
}
