package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/internal/admin"
	"github.com/tailorline/storefront/internal/catalog"
	"github.com/tailorline/storefront/internal/contact"
	"github.com/tailorline/storefront/internal/orders"
	"github.com/tailorline/storefront/internal/storefront"
	"github.com/tailorline/storefront/internal/subscribers"
	"github.com/tailorline/storefront/internal/tailoring"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/db/dbtest"
	"github.com/tailorline/storefront/pkg/enums"
	"github.com/tailorline/storefront/pkg/metrics"
	"github.com/tailorline/storefront/pkg/security"
	"github.com/tailorline/storefront/pkg/storage/local"
)

const adminPassword = "measure-twice"

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type stubPinger struct{ err error }

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *countingLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int64)
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *countingLimiter) RateLimitKey(scope string) string { return "rl:" + scope }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := security.HashPassword(adminPassword, config.PasswordConfig{
		ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	require.NoError(t, err)
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		Admin: config.AdminConfig{
			PasswordHash:      hash,
			JWTSecret:         "secret",
			JWTIssuer:         "tailorline",
			ExpirationMinutes: 60,
		},
		Storage: config.StorageConfig{UploadDir: t.TempDir(), PublicPrefix: "/storage", MaxUploadMB: 1},
	}
}

func newTestServer(t *testing.T, dbPinger stubPinger, opts ...func(*Deps)) (*httptest.Server, *storefront.Client) {
	t.Helper()
	cfg := newTestConfig(t)
	conn := dbtest.Open(t)
	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(registry)

	catalogRepo := catalog.NewRepository(conn)
	_, err := catalog.SeedFromFile(context.Background(), catalogRepo, "../../seed/catalog.yaml")
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)

	ordersSvc, err := orders.NewService(orders.ServiceParams{Repo: orders.NewRepository(conn), Metrics: storeMetrics})
	require.NoError(t, err)

	images, err := local.New(cfg.Storage, nil)
	require.NoError(t, err)
	tailoringSvc, err := tailoring.NewService(tailoring.ServiceParams{Repo: tailoring.NewRepository(conn), Images: images})
	require.NoError(t, err)

	subscribersSvc, err := subscribers.NewService(subscribers.NewRepository(conn), nil, storeMetrics)
	require.NoError(t, err)
	contactSvc, err := contact.NewService(conn, nil)
	require.NoError(t, err)
	adminSvc, err := admin.NewService(admin.ServiceParams{Config: cfg.Admin})
	require.NoError(t, err)

	deps := Deps{
		Config:      cfg,
		DB:          dbPinger,
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		UploadDir:   images.Dir(),
		Catalog:     catalogSvc,
		Orders:      ordersSvc,
		Tailoring:   tailoringSvc,
		Subscribers: subscribersSvc,
		Contact:     contactSvc,
		Admin:       adminSvc,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)

	client, err := storefront.NewClient(srv.URL)
	require.NoError(t, err)
	return srv, client
}

func apiError(t *testing.T, err error) *storefront.APIError {
	t.Helper()
	var apiErr *storefront.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr
}

func sampleOrder() storefront.CreateOrderRequest {
	return storefront.CreateOrderRequest{
		UserName:  "Ada Lovelace",
		UserEmail: "Ada@Example.com",
		UserPhone: "+15551234567",
		Items: []storefront.OrderItem{
			{ID: 1, Name: "Classic Navy Suit", Price: 15000, Quantity: 2, Description: "Navy", ItemType: enums.ItemTypeStandard},
			{ID: 1, Name: "Custom Suit", Price: 10000, Quantity: 1, ItemType: enums.ItemTypeCustom, Fabric: string(enums.FabricSuperWool)},
		},
		Total: 40000,
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, stubPinger{})

	resp, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReadyReportsDownDependency(t *testing.T) {
	srv, _ := newTestServer(t, stubPinger{err: errors.New("connection refused")})

	resp, err := http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "connection refused")
}

func TestProductsByCategory(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	ctx := context.Background()

	all, err := client.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	womens, err := client.ListProducts(ctx, "womens")
	require.NoError(t, err)
	require.Len(t, womens, 1)
	assert.Equal(t, enums.ProductCategoryWomens, womens[0].Category)

	_, err = client.ListProducts(ctx, "kids")
	assert.Equal(t, http.StatusUnprocessableEntity, apiError(t, err).Status)
}

func TestOrderLifecycle(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	ctx := context.Background()

	created, err := client.CreateOrder(ctx, sampleOrder(), "key-1")
	require.NoError(t, err)
	assert.Positive(t, created.OrderID)
	assert.Equal(t, enums.OrderStatusReceived, created.Status)

	orderID := "#" + strconv.FormatInt(created.OrderID, 10)
	tracked, err := client.TrackOrder(ctx, orderID, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, tracked.OrderID)
	assert.Len(t, tracked.Items, 2)
	assert.NotEmpty(t, tracked.EstimatedDelivery)

	tracked, err = client.TrackOrder(ctx, orderID, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, tracked.OrderID)

	_, err = client.TrackOrder(ctx, orderID, "someone@else.com")
	notFound := apiError(t, err)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "Order not found", notFound.Message)
}

func TestCreateOrderRejectsWrongTotal(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	order := sampleOrder()
	order.Total = 39999

	_, err := client.CreateOrder(context.Background(), order, "")
	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, orders.MsgTotalMismatch, apiErr.Message)
}

func TestCreateOrderReportsFieldErrors(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	order := sampleOrder()
	order.UserEmail = "not-an-email"

	_, err := client.CreateOrder(context.Background(), order, "")
	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Fields, "user_email")
}

func TestSubscribeAndAlias(t *testing.T) {
	srv, client := newTestServer(t, stubPinger{})
	ctx := context.Background()

	msg, err := client.Subscribe(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, subscribers.MsgSubscribed, msg)

	_, err = client.Subscribe(ctx, "GUEST@example.com")
	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, subscribers.MsgInvalidOrExisting, apiErr.Message)

	resp, err := http.Post(srv.URL+"/api/subscribe", "application/json", strings.NewReader(`{"email":"other@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSubscribeEmailLimitIsSeparateFromIPLimit(t *testing.T) {
	_, client := newTestServer(t, stubPinger{}, func(d *Deps) {
		d.Config.RateLimit = config.RateLimitConfig{SubscribeWindow: time.Minute, SubscribeIPLimit: 100, SubscribeEmailLimit: 1}
		d.RateLimiter = &countingLimiter{}
	})
	ctx := context.Background()

	_, err := client.Subscribe(ctx, "first@example.com")
	require.NoError(t, err)
	_, err = client.Subscribe(ctx, "second@example.com")
	require.NoError(t, err)

	_, err = client.Subscribe(ctx, "first@example.com")
	assert.Equal(t, http.StatusTooManyRequests, apiError(t, err).Status)
}

func TestContact(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	ctx := context.Background()

	msg, err := client.Contact(ctx, storefront.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Do you do waistcoats?"})
	require.NoError(t, err)
	assert.Equal(t, contact.MsgSent, msg)

	_, err = client.Contact(ctx, storefront.ContactRequest{Name: "Ada", Email: "ada@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, apiError(t, err).Status)
}

func TestTailoringUploadIsServed(t *testing.T) {
	srv, client := newTestServer(t, stubPinger{})

	rec, err := client.SubmitTailoring(context.Background(), storefront.TailoringRequest{
		Name:      "Ada",
		Phone:     "+15551234567",
		Email:     "ada@example.com",
		Chest:     96,
		Waist:     80,
		ArmLength: 60,
		Shoulder:  45,
		Size:      enums.SuitSizeM,
		Color:     "Navy",
		FitStyle:  enums.FitStyleSlim,
		Fabric:    enums.FabricHighCheck,
		Lapels:    enums.LapelsPeak,
		ImageName: "ref.png",
		Image:     pngHeader,
	})
	require.NoError(t, err)
	assert.Positive(t, rec.ID)
	assert.Equal(t, enums.BottomStyleTrouser, rec.BottomStyle)
	require.True(t, strings.HasPrefix(rec.ImageURL, "/storage/"), rec.ImageURL)

	resp, err := http.Get(srv.URL + rec.ImageURL)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pngHeader, body)
}

func TestTailoringWomensSuitNeedsBottomStyle(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})

	_, err := client.SubmitTailoring(context.Background(), storefront.TailoringRequest{
		Name: "Ada", Phone: "+15551234567", Email: "ada@example.com",
		Chest: 90, Waist: 70, ArmLength: 58, Shoulder: 40,
		Size: enums.SuitSizeS, Color: "Black", FitStyle: enums.FitStyleTailored,
		Fabric: enums.FabricSuperWool, Lapels: enums.LapelsShawl, IsWomensSuit: true,
	})
	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Contains(t, apiErr.Fields, "bottom_style")
}

func TestAdminFlow(t *testing.T) {
	_, client := newTestServer(t, stubPinger{})
	ctx := context.Background()

	_, err := client.AdminOrders(ctx)
	assert.Equal(t, http.StatusUnauthorized, apiError(t, err).Status)

	_, err = client.AdminLogin(ctx, "wrong")
	assert.Equal(t, http.StatusUnauthorized, apiError(t, err).Status)

	created, err := client.CreateOrder(ctx, sampleOrder(), "")
	require.NoError(t, err)
	_, err = client.Subscribe(ctx, "fan@example.com")
	require.NoError(t, err)

	token, err := client.AdminLogin(ctx, adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.False(t, token.ExpiresAt.IsZero())

	list, err := client.AdminOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.OrderID, list[0].ID)
	assert.Equal(t, int64(40000), list[0].Total)
	assert.Equal(t, []storefront.ItemSummary{{Name: "Classic Navy Suit", Quantity: 2}, {Name: "Custom Suit", Quantity: 1}}, list[0].Items)

	updated, err := client.UpdateOrderStatus(ctx, created.OrderID, string(enums.OrderStatusReady))
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusReady, updated.Status)

	_, err = client.UpdateOrderStatus(ctx, created.OrderID+100, string(enums.OrderStatusReady))
	assert.Equal(t, http.StatusNotFound, apiError(t, err).Status)

	_, err = client.UpdateOrderStatus(ctx, created.OrderID, "Lost")
	assert.Equal(t, http.StatusUnprocessableEntity, apiError(t, err).Status)

	subs, err := client.AdminSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "fan@example.com", subs[0].Email)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, client := newTestServer(t, stubPinger{})
	_, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}
