// Package tui is the back office screen: a table of orders whose status can
// be advanced from the keyboard, plus the newsletter subscriber list.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailorline/storefront/internal/pricing"
	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/pkg/enums"
)

const requestTimeout = 10 * time.Second

// AdminAPI is the part of the storefront client the screen needs.
type AdminAPI interface {
	AdminOrders(ctx context.Context) ([]storefront.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*storefront.OrderStatusUpdate, error)
	AdminSubscribers(ctx context.Context) ([]storefront.Subscriber, error)
}

type view int

const (
	viewOrders view = iota
	viewSubscribers
)

// statusKeys maps the number keys to the order lifecycle.
var statusKeys = map[string]enums.OrderStatus{
	"1": enums.OrderStatusReceived,
	"2": enums.OrderStatusInProgress,
	"3": enums.OrderStatusReady,
	"4": enums.OrderStatusDelivered,
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tableStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type ordersLoadedMsg struct {
	orders []storefront.AdminOrder
	err    error
}

type subscribersLoadedMsg struct {
	subscribers []storefront.Subscriber
	err         error
}

type statusUpdatedMsg struct {
	update *storefront.OrderStatusUpdate
	err    error
}

// Model is the bubbletea model for the admin screen.
type Model struct {
	api         AdminAPI
	view        view
	orders      []storefront.AdminOrder
	subscribers []storefront.Subscriber
	ordersTable table.Model
	subsTable   table.Model
	loading     bool
	notice      string
	err         error
}

func New(api AdminAPI) Model {
	orders := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 6},
			{Title: "Customer", Width: 20},
			{Title: "Contact", Width: 26},
			{Title: "Items", Width: 6},
			{Title: "Total", Width: 14},
			{Title: "Status", Width: 12},
			{Title: "Placed", Width: 17},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	subs := table.New(
		table.WithColumns([]table.Column{
			{Title: "Email", Width: 36},
			{Title: "Subscribed", Width: 17},
		}),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	orders.SetStyles(styles)
	subs.SetStyles(styles)

	return Model{api: api, ordersTable: orders, subsTable: subs, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.loadOrders()
}

func (m Model) loadOrders() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		orders, err := api.AdminOrders(ctx)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (m Model) loadSubscribers() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		subs, err := api.AdminSubscribers(ctx)
		return subscribersLoadedMsg{subscribers: subs, err: err}
	}
}

func (m Model) updateStatus(orderID int64, status enums.OrderStatus) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		update, err := api.UpdateOrderStatus(ctx, orderID, status.String())
		return statusUpdatedMsg{update: update, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.orders = msg.orders
		m.ordersTable.SetRows(orderRows(m.orders))
		return m, nil

	case subscribersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.subscribers = msg.subscribers
		m.subsTable.SetRows(subscriberRows(m.subscribers))
		return m, nil

	case statusUpdatedMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Order #%d is now %s", msg.update.OrderID, msg.update.Status)
		return m, m.loadOrders()
	}

	var cmd tea.Cmd
	if m.view == viewOrders {
		m.ordersTable, cmd = m.ordersTable.Update(msg)
	} else {
		m.subsTable, cmd = m.subsTable.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.loading = true
		m.notice = ""
		if m.view == viewSubscribers {
			return m, m.loadSubscribers()
		}
		return m, m.loadOrders()

	case "s":
		m.notice = ""
		if m.view == viewOrders {
			m.view = viewSubscribers
			m.ordersTable.Blur()
			m.subsTable.Focus()
			m.loading = true
			return m, m.loadSubscribers()
		}
		m.view = viewOrders
		m.subsTable.Blur()
		m.ordersTable.Focus()
		return m, nil
	}

	if status, ok := statusKeys[key]; ok && m.view == viewOrders {
		order, ok := m.selectedOrder()
		if !ok {
			return m, nil
		}
		m.loading = true
		return m, m.updateStatus(order.ID, status)
	}

	var cmd tea.Cmd
	if m.view == viewOrders {
		m.ordersTable, cmd = m.ordersTable.Update(msg)
	} else {
		m.subsTable, cmd = m.subsTable.Update(msg)
	}
	return m, cmd
}

func (m Model) selectedOrder() (storefront.AdminOrder, bool) {
	i := m.ordersTable.Cursor()
	if i < 0 || i >= len(m.orders) {
		return storefront.AdminOrder{}, false
	}
	return m.orders[i], true
}

func (m Model) View() string {
	title := "Tailorline · Orders"
	body := m.ordersTable.View()
	help := "↑/↓ select · 1 Received · 2 In Progress · 3 Ready · 4 Delivered · s subscribers · r refresh · q quit"
	if m.view == viewSubscribers {
		title = "Tailorline · Subscribers"
		body = m.subsTable.View()
		help = "↑/↓ scroll · s orders · r refresh · q quit"
	}

	out := titleStyle.Render(title) + "\n" + tableStyle.Render(body) + "\n"
	switch {
	case m.err != nil:
		out += errorStyle.Render(errorText(m.err)) + "\n"
	case m.loading:
		out += helpStyle.Render("Loading…") + "\n"
	case m.notice != "":
		out += noticeStyle.Render(m.notice) + "\n"
	}
	return out + helpStyle.Render(help) + "\n"
}

func errorText(err error) string {
	if msg := storefront.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

func orderRows(orders []storefront.AdminOrder) []table.Row {
	rows := make([]table.Row, 0, len(orders))
	for _, o := range orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		contact := o.UserEmail
		if contact == "" {
			contact = o.UserPhone
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(o.ID, 10),
			o.UserName,
			contact,
			strconv.Itoa(items),
			pricing.FormatCurrency(o.Total),
			o.Status.String(),
			o.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func subscriberRows(subs []storefront.Subscriber) []table.Row {
	rows := make([]table.Row, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, table.Row{s.Email, s.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	return rows
}
