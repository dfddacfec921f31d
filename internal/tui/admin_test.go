package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/enums"
)

type fakeAdminAPI struct {
	mu          sync.Mutex
	orders      []storefront.AdminOrder
	subscribers []storefront.Subscriber
	updates     []string
	ordersErr   error
}

func (f *fakeAdminAPI) AdminOrders(context.Context) ([]storefront.AdminOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	out := make([]storefront.AdminOrder, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeAdminAPI) UpdateOrderStatus(_ context.Context, orderID int64, status string) (*storefront.OrderStatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = enums.OrderStatus(status)
			f.updates = append(f.updates, status)
			return &storefront.OrderStatusUpdate{OrderID: orderID, Status: enums.OrderStatus(status)}, nil
		}
	}
	return nil, &storefront.APIError{Status: 404, Message: "Order not found"}
}

func (f *fakeAdminAPI) AdminSubscribers(context.Context) ([]storefront.Subscriber, error) {
	return f.subscribers, nil
}

func newFakeAPI() *fakeAdminAPI {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &fakeAdminAPI{
		orders: []storefront.AdminOrder{
			{ID: 7, UserName: "Ada", UserEmail: "ada@example.com", Items: []storefront.ItemSummary{{Name: "Navy Suit", Quantity: 2}}, Total: 90000, Status: enums.OrderStatusReceived, CreatedAt: placed},
			{ID: 8, UserName: "Lin", UserPhone: "+15555550100", Total: 45000, Status: enums.OrderStatusReady, CreatedAt: placed},
		},
		subscribers: []storefront.Subscriber{{Email: "news@example.com", CreatedAt: placed}},
	}
}

// runCommands executes cmd and feeds every produced message back into the
// model until no command is left.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 20, "command loop did not settle")
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}
		model, cmd = model.Update(msg)
	}
	m, ok := model.(Model)
	require.True(t, ok)
	return m
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := m.Update(msg)
	return runCommands(t, model, cmd)
}

func TestInitLoadsOrders(t *testing.T) {
	api := newFakeAPI()
	m := New(api)
	m = runCommands(t, m, m.Init())

	require.Len(t, m.orders, 2)
	assert.False(t, m.loading)
	view := m.View()
	assert.Contains(t, view, "Ada")
	assert.Contains(t, view, "ada@example.com")
	assert.Contains(t, view, "+15555550100")
	assert.Contains(t, view, "Received")
}

func TestNumberKeysSetSelectedOrderStatus(t *testing.T) {
	api := newFakeAPI()
	m := New(api)
	m = runCommands(t, m, m.Init())

	m = press(t, m, "2")
	assert.Equal(t, []string{"In Progress"}, api.updates)
	assert.Equal(t, enums.OrderStatusInProgress, m.orders[0].Status)
	assert.Contains(t, m.View(), "Order #7 is now In Progress")

	m = press(t, m, "down")
	m = press(t, m, "4")
	assert.Equal(t, []string{"In Progress", "Delivered"}, api.updates)
	assert.Equal(t, enums.OrderStatusDelivered, m.orders[1].Status)
}

func TestStatusKeysIgnoredWithoutOrders(t *testing.T) {
	api := &fakeAdminAPI{}
	m := New(api)
	m = runCommands(t, m, m.Init())

	m = press(t, m, "1")
	assert.Empty(t, api.updates)
	assert.False(t, m.loading)
}

func TestToggleSubscribersView(t *testing.T) {
	api := newFakeAPI()
	m := New(api)
	m = runCommands(t, m, m.Init())

	m = press(t, m, "s")
	assert.Equal(t, viewSubscribers, m.view)
	assert.Contains(t, m.View(), "news@example.com")

	m = press(t, m, "3")
	assert.Empty(t, api.updates, "status keys only apply to the orders view")

	m = press(t, m, "s")
	assert.Equal(t, viewOrders, m.view)
	assert.Contains(t, m.View(), "Ada")
}

func TestRefreshShowsServerError(t *testing.T) {
	api := newFakeAPI()
	m := New(api)
	m = runCommands(t, m, m.Init())

	api.ordersErr = &storefront.APIError{Status: 401, Message: "Unauthenticated."}
	m = press(t, m, "r")
	assert.Contains(t, m.View(), "Unauthenticated.")

	api.ordersErr = errors.New("dial tcp: connection refused")
	m = press(t, m, "r")
	assert.Contains(t, m.View(), "connection refused")
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := New(newFakeAPI())
		_, cmd := m.Update(keyFor(key))
		require.NotNil(t, cmd, key)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, key)
	}
}

func keyFor(key string) tea.KeyMsg {
	if key == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestOrderRowsTotalsItems(t *testing.T) {
	rows := orderRows(newFakeAPI().orders)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0][3])
	assert.True(t, strings.HasPrefix(rows[0][4], "Ksh"))
	assert.Equal(t, "+15555550100", rows[1][2])
}
