package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts storefront business events.
type StoreMetrics struct {
	ordersPlaced   prometheus.Counter
	orderValue     prometheus.Counter
	statusChanges  *prometheus.CounterVec
	tailoringForms prometheus.Counter
	subscriptions  prometheus.Counter
}

// NewStoreMetrics registers the storefront counters on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	m := &StoreMetrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders accepted by the API.",
		}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_value_kes_total",
			Help: "Sum of accepted order totals in KES.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "Admin order status updates by target status.",
		}, []string{"status"}),
		tailoringForms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "custom_tailoring_requests_total",
			Help: "Measurement forms saved.",
		}),
		subscriptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "New newsletter subscribers.",
		}),
	}
	reg.MustRegister(m.ordersPlaced, m.orderValue, m.statusChanges, m.tailoringForms, m.subscriptions)
	return m
}

func (m *StoreMetrics) OrderPlaced(total int64) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderValue.Add(float64(total))
}

func (m *StoreMetrics) StatusChanged(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *StoreMetrics) TailoringSaved() {
	if m == nil || m.tailoringForms == nil {
		return
	}
	m.tailoringForms.Inc()
}

func (m *StoreMetrics) Subscribed() {
	if m == nil || m.subscriptions == nil {
		return
	}
	m.subscriptions.Inc()
}
