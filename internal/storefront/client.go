// Package storefront is the HTTP client for the storefront API.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/types"
)

const (
	DefaultOrderTimeout = 10 * time.Second
	DefaultShortTimeout = 5 * time.Second

	errorBodyReadLimit int64 = 64 << 10
)

var errBaseURLRequired = errors.New("storefront api base url is required")

// APIError is a non-2xx answer from the API. Message is the server's user
// facing message, which may be empty.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api: status %d", e.Status)
	}
	return fmt.Sprintf("storefront api: status %d: %s", e.Status, e.Message)
}

// ServerMessage extracts the server provided message from err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.TrimSpace(apiErr.Message)
	}
	return ""
}

// Client talks to the storefront API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	orderTimeout time.Duration
	shortTimeout time.Duration
	adminToken   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithOrderTimeout bounds order submission and tracking calls.
func WithOrderTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.orderTimeout = d
		}
	}
}

// WithShortTimeout bounds subscribe and contact calls.
func WithShortTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.shortTimeout = d
		}
	}
}

// WithAdminToken authenticates admin calls.
func WithAdminToken(token string) Option {
	return func(c *Client) {
		c.adminToken = strings.TrimSpace(token)
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := &Client{
		baseURL:      trimmed,
		httpClient:   &http.Client{},
		orderTimeout: DefaultOrderTimeout,
		shortTimeout: DefaultShortTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// SetAdminToken replaces the bearer token used for admin calls.
func (c *Client) SetAdminToken(token string) {
	c.adminToken = strings.TrimSpace(token)
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderCreated, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	headers := http.Header{}
	if idempotencyKey != "" {
		headers.Set("Idempotency-Key", idempotencyKey)
	}
	var out OrderCreated
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, headers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrackOrder(ctx context.Context, orderID, emailOrPhone string) (*TrackedOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("orderId", orderID)
	q.Set("emailOrPhone", emailOrPhone)
	var out TrackedOrder
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/orders/track?"+q.Encode(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	path := "/api/products"
	if category = strings.TrimSpace(category); category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out []Product
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe signs email up for the newsletter and returns the server's message.
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.shortTimeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodPost, "/api/subscribers", map[string]string{"email": email}, nil, nil)
}

// Contact sends the contact form and returns the server's message.
func (c *Client) Contact(ctx context.Context, req ContactRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.shortTimeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodPost, "/api/contact", req, nil, nil)
}

func (c *Client) AdminLogin(ctx context.Context, password string) (*AdminToken, error) {
	ctx, cancel := context.WithTimeout(ctx, c.shortTimeout)
	defer cancel()

	var out AdminToken
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", map[string]string{"password": password}, nil, &out); err != nil {
		return nil, err
	}
	c.adminToken = out.Token
	return &out, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]AdminOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var out []AdminOrder
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/admin/orders", nil, c.adminHeaders(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*OrderStatusUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var out OrderStatusUpdate
	path := fmt.Sprintf("/api/admin/orders/%d", orderID)
	if _, err := c.doJSON(ctx, http.MethodPut, path, map[string]string{"status": status}, c.adminHeaders(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminSubscribers(ctx context.Context) ([]Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	var out []Subscriber
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/admin/subscribers", nil, c.adminHeaders(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) adminHeaders() http.Header {
	h := http.Header{}
	if c.adminToken != "" {
		h.Set("Authorization", "Bearer "+c.adminToken)
	}
	return h
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, headers http.Header, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", req.Method, req.URL.Path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeAPIError(resp)
	}

	envelope := struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	if out != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response data")
		}
	}
	return envelope.Message, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apiErr
	}
	apiErr.Message = envelope.Message
	apiErr.Code = envelope.Code
	if envelope.Errors != nil {
		if encoded, err := json.Marshal(envelope.Errors); err == nil {
			var fields map[string][]string
			if json.Unmarshal(encoded, &fields) == nil {
				apiErr.Fields = fields
			}
		}
	}
	return apiErr
}
