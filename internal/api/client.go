// Package api holds the thin typed clients for the two remote services: the
// store backend and the ML service. Neither service is part of this
// repository; everything here is boundary plumbing.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopadmin/internal/domain"
	"shopadmin/internal/session"
)

// Client talks to the store backend. Every request attaches
// "Authorization: Bearer <token>" when the session holds one; a 401 on an
// authenticated call expires the session globally.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a store-backend client bound to the given session store.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    sess,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do issues one JSON request. fallback is the generic message used when the
// error body carries no "message" field.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Status: 0, Message: fallback}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// 401 on an authenticated call invalidates the whole session, not
		// just this call site.
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.session.Expire()
		}
		return decodeError(resp, fallback)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeError(resp *http.Response, fallback string) error {
	var body struct {
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

// listEnvelope matches the backend's {"data": [...]} list responses.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session on success.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", creds, &out, "login failed"); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrNoToken
	}
	if err := c.session.Set(out.Token); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Report calls GET /api/admin/report.
func (c *Client) Report(ctx context.Context) (*domain.SalesReport, error) {
	var out struct {
		Data domain.SalesReport `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/report", nil, &out, "failed to load report"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Orders calls GET /api/admin/orders.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var out listEnvelope[domain.Order]
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &out, "failed to load orders"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateOrderStatus calls PUT /api/orders/{id}/status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	body := map[string]domain.OrderStatus{"status": status}
	path := fmt.Sprintf("/api/orders/%d/status", orderID)
	return c.do(ctx, http.MethodPut, path, body, nil, "failed to update order status")
}

// Categories calls GET /api/categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out listEnvelope[domain.Category]
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out, "failed to load categories"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Products calls GET /api/products.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out listEnvelope[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out, "failed to load products"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Product calls GET /api/products/{id}.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out struct {
		Data domain.Product `json:"data"`
	}
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "failed to load product"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateProduct calls POST /api/admin/products.
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/products", in, nil, "failed to add product")
}

// UpdateProduct calls PUT /api/products/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) error {
	path := fmt.Sprintf("/api/products/%d", id)
	return c.do(ctx, http.MethodPut, path, in, nil, "failed to update product")
}

// DeleteProduct calls DELETE /api/products/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "failed to delete product")
}

// CreateCategory calls POST /api/admin/categories.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	body := map[string]string{"name": name}
	return c.do(ctx, http.MethodPost, "/api/admin/categories", body, nil, "failed to add category")
}

// UpdateCategory calls PUT /api/admin/categories/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) error {
	body := map[string]string{"name": name}
	path := fmt.Sprintf("/api/admin/categories/%d", id)
	return c.do(ctx, http.MethodPut, path, body, nil, "failed to update category")
}

// DeleteCategory calls DELETE /api/admin/categories/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/categories/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "failed to delete category")
}
