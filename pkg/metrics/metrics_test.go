package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the series of family name whose labels include want.
func sample(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	series:
		for _, m := range family.GetMetric() {
			have := map[string]string{}
			for _, pair := range m.GetLabel() {
				have[pair.GetName()] = pair.GetValue()
			}
			for k, v := range want {
				if have[k] != v {
					continue series
				}
			}
			return m
		}
	}
	t.Fatalf("no %s series with labels %v", name, want)
	return nil
}

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("POST", "/api/orders", 201, 120*time.Millisecond)
	m.Observe("POST", "/api/orders", 201, 80*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	orders := map[string]string{"route": "/api/orders", "status": "201"}
	assert.Equal(t, 2.0, sample(t, reg, "http_requests_total", orders).GetCounter().GetValue())
	assert.InDelta(t, 0.2, sample(t, reg, "http_request_duration_seconds", map[string]string{"route": "/api/orders"}).GetHistogram().GetSampleSum(), 1e-9)
	assert.Equal(t, 1.0, sample(t, reg, "http_requests_total", map[string]string{"route": "unknown"}).GetCounter().GetValue())
}

func TestStoreMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)
	m.OrderPlaced(24000)
	m.OrderPlaced(16000)
	m.StatusChanged("Ready")
	m.TailoringSaved()
	m.Subscribed()

	assert.Equal(t, 2.0, sample(t, reg, "orders_placed_total", nil).GetCounter().GetValue())
	assert.Equal(t, 40000.0, sample(t, reg, "orders_value_kes_total", nil).GetCounter().GetValue())
	assert.Equal(t, 1.0, sample(t, reg, "order_status_changes_total", map[string]string{"status": "Ready"}).GetCounter().GetValue())
	assert.Equal(t, 1.0, sample(t, reg, "custom_tailoring_requests_total", nil).GetCounter().GetValue())
	assert.Equal(t, 1.0, sample(t, reg, "newsletter_subscriptions_total", nil).GetCounter().GetValue())
}

func TestNilRegistererIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)
		NewStoreMetrics(nil).OrderPlaced(1)
		var m *StoreMetrics
		m.TailoringSaved()
		m.StatusChanged("Ready")
	})
}
