package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusProgress(t *testing.T) {
	cases := map[OrderStatus]int{
		OrderStatusReceived:   25,
		OrderStatusInProgress: 50,
		OrderStatusReady:      75,
		OrderStatusDelivered:  100,
		OrderStatus("Lost"):   0,
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Progress(), status)
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("In Progress")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusInProgress, got)

	_, err = ParseOrderStatus("in progress")
	require.Error(t, err)
}

func TestOrderStatusesAreOrderedCopies(t *testing.T) {
	statuses := OrderStatuses()
	require.Len(t, statuses, 4)
	assert.Equal(t, OrderStatusReceived, statuses[0])
	assert.Equal(t, OrderStatusDelivered, statuses[3])

	statuses[0] = "mutated"
	assert.Equal(t, OrderStatusReceived, OrderStatuses()[0])
}

func TestFabricTerms(t *testing.T) {
	assert.Equal(t, 0, FabricNormalPlain.ExtraDeliveryDays())
	assert.Equal(t, 2, FabricStandardPlain.ExtraDeliveryDays())
	assert.Equal(t, 4, FabricHighCheck.ExtraDeliveryDays())
	assert.Equal(t, 7, FabricSuperWool.ExtraDeliveryDays())
	assert.Equal(t, 0, Fabric("Denim").ExtraDeliveryDays())

	assert.Equal(t, int64(12000), FabricNormalPlain.ListPrice())
	assert.Equal(t, int64(25000), FabricSuperWool.ListPrice())

	_, err := ParseFabric("Denim")
	require.Error(t, err)
}

func TestItemTypeParse(t *testing.T) {
	got, err := ParseItemType("custom")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeCustom, got)
	assert.False(t, ItemType("").IsValid())
}

func TestTailoringOptions(t *testing.T) {
	assert.True(t, SuitSizeXL.IsValid())
	assert.False(t, SuitSize("XXL").IsValid())
	assert.True(t, FitStyleTailored.IsValid())
	assert.True(t, BottomStyleSkirt.IsValid())
	assert.False(t, BottomStyle("shorts").IsValid())
	_, err := ParseLapels("Peak")
	require.NoError(t, err)
	_, err = ParseProductCategory("kids")
	require.Error(t, err)
}
