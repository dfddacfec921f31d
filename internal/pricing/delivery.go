package pricing

import (
	"time"

	"github.com/tailorline/storefront/pkg/enums"
)

// BaseDeliveryDays is the tailoring window before fabric adjustments.
const BaseDeliveryDays = 14

// LongDateLayout matches the en-KE long date, e.g. "19 October 2026".
const LongDateLayout = "2 January 2006"

// DeliveryDays returns the delivery window for a single fabric. Unknown or
// empty fabrics use the base window.
func DeliveryDays(fabric string) int {
	return BaseDeliveryDays + enums.Fabric(fabric).ExtraDeliveryDays()
}

// DeliveryDaysFor returns the window for a set of fabrics, which is driven by
// the slowest one.
func DeliveryDaysFor(fabrics ...string) int {
	extra := 0
	for _, f := range fabrics {
		if d := enums.Fabric(f).ExtraDeliveryDays(); d > extra {
			extra = d
		}
	}
	return BaseDeliveryDays + extra
}

// DeliveryDate adds the delivery window for fabric to from.
func DeliveryDate(from time.Time, fabric string) time.Time {
	return from.AddDate(0, 0, DeliveryDays(fabric))
}

// DeliveryDateFor adds the window of the slowest fabric to from.
func DeliveryDateFor(from time.Time, fabrics ...string) time.Time {
	return from.AddDate(0, 0, DeliveryDaysFor(fabrics...))
}

// FormatLongDate renders t as an en-KE long date.
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// Estimator produces delivery estimates relative to an injected clock.
type Estimator struct {
	now func() time.Time
}

// NewEstimator returns an Estimator; a nil clock uses time.Now.
func NewEstimator(now func() time.Time) *Estimator {
	if now == nil {
		now = time.Now
	}
	return &Estimator{now: now}
}

// EstimatedDelivery returns today plus the fabric's delivery window.
func (e *Estimator) EstimatedDelivery(fabric string) time.Time {
	return DeliveryDate(e.now(), fabric)
}

// EstimatedDeliveryLabel is EstimatedDelivery formatted for display.
func (e *Estimator) EstimatedDeliveryLabel(fabric string) string {
	return FormatLongDate(e.EstimatedDelivery(fabric))
}
