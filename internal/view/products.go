package view

import (
	"context"
	"fmt"
	"sync"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

// ValidationError is a malformed-input error caught before any network call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ProductsPage is the view-state behind the product list and forms: the
// fetched set plus the three view parameters the visible subset derives from.
type ProductsPage struct {
	client *api.Client

	mu       sync.Mutex
	products []domain.Product
	loaded   bool
	query    string
	filter   StockFilter
	sort     Sort
}

func NewProductsPage(client *api.Client) *ProductsPage {
	return &ProductsPage{client: client, filter: StockAll}
}

// Reload fetches the authoritative product list, keeping last-known-good
// data on failure.
func (p *ProductsPage) Reload(ctx context.Context) error {
	products, err := p.client.Products(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.products = products
	p.loaded = true
	p.mu.Unlock()
	return nil
}

func (p *ProductsPage) ensureLoaded(ctx context.Context) error {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()
	if loaded {
		return nil
	}
	return p.Reload(ctx)
}

// SetQuery updates the free-text search term.
func (p *ProductsPage) SetQuery(q string) {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()
}

// SetStockFilter updates the stock-status bucket selector.
func (p *ProductsPage) SetStockFilter(f StockFilter) error {
	if !ValidStockFilter(f) {
		return validationf("unknown stock filter %q", f)
	}
	p.mu.Lock()
	p.filter = f
	p.mu.Unlock()
	return nil
}

// ToggleSort applies a sort-header click: the active key flips direction, a
// new key starts ascending.
func (p *ProductsPage) ToggleSort(key SortKey) error {
	if !ValidSortKey(key) {
		return validationf("unknown sort key %q", key)
	}
	p.mu.Lock()
	p.sort = p.sort.Toggle(key)
	p.mu.Unlock()
	return nil
}

// CurrentSort returns the active key/direction pair.
func (p *ProductsPage) CurrentSort() Sort {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sort
}

// Visible returns the ordered visible subset for the current view
// parameters, loading the list on first use.
func (p *ProductsPage) Visible(ctx context.Context) ([]domain.Product, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return Visible(p.products, p.query, p.filter, p.sort), nil
}

// validateInput is the client-side required-field check; server-side error
// messages still surface verbatim as the fallback.
func validateInput(in domain.ProductInput, requireImage bool) error {
	if in.Name == "" {
		return validationf("product name is required")
	}
	if in.CategoryID <= 0 {
		return validationf("category is required")
	}
	if in.Price <= 0 {
		return validationf("price must be greater than zero")
	}
	if in.StockQuantity < 0 {
		return validationf("stock quantity cannot be negative")
	}
	if requireImage && in.ImageBase64 == "" {
		return validationf("please select an image")
	}
	return nil
}

// Create validates and submits a new product, then reloads the list. The
// image must already be encoded into in.ImageBase64; encoding and submission
// are never concurrent for one submission.
func (p *ProductsPage) Create(ctx context.Context, in domain.ProductInput) error {
	if err := validateInput(in, true); err != nil {
		return err
	}
	if err := p.client.CreateProduct(ctx, in); err != nil {
		return err
	}
	return p.Reload(ctx)
}

// Update validates and submits changes to an existing product, then reloads.
// ImageBase64 stays empty when no new image was selected.
func (p *ProductsPage) Update(ctx context.Context, id int64, in domain.ProductInput) error {
	if id <= 0 {
		return validationf("invalid product id")
	}
	if err := validateInput(in, false); err != nil {
		return err
	}
	if err := p.client.UpdateProduct(ctx, id, in); err != nil {
		return err
	}
	return p.Reload(ctx)
}

// Delete removes a product and reloads the list.
func (p *ProductsPage) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationf("invalid product id")
	}
	if err := p.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return p.Reload(ctx)
}
