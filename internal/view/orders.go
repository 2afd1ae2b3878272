package view

import (
	"context"
	"errors"
	"sync"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
)

var (
	// ErrStatusInFlight is returned when a transition is requested for an
	// order whose previous transition has not finished yet. Transitions on
	// different orders are independent.
	ErrStatusInFlight = errors.New("status update already in progress")
	// ErrInvalidStatus is returned before any network call for an unknown
	// status value.
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrdersPage is the view-state behind the orders list.
type OrdersPage struct {
	client *api.Client

	mu       sync.Mutex
	orders   []domain.Order
	loaded   bool
	inFlight map[int64]bool
}

func NewOrdersPage(client *api.Client) *OrdersPage {
	return &OrdersPage{client: client, inFlight: make(map[int64]bool)}
}

// Reload fetches the authoritative list. On failure the last-known-good list
// is kept so an error never blanks already displayed data.
func (p *OrdersPage) Reload(ctx context.Context) error {
	orders, err := p.client.Orders(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.orders = orders
	p.loaded = true
	p.mu.Unlock()
	return nil
}

// Orders returns the current list, loading it on first use.
func (p *OrdersPage) Orders(ctx context.Context) ([]domain.Order, error) {
	p.mu.Lock()
	loaded := p.loaded
	p.mu.Unlock()
	if !loaded {
		if err := p.Reload(ctx); err != nil {
			return nil, err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Order, len(p.orders))
	copy(out, p.orders)
	return out, nil
}

// SetStatus requests a transition for one order. The order is marked
// in-flight for the duration of the call; success triggers a full list
// reload, failure leaves the displayed status untouched.
func (p *OrdersPage) SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return ErrInvalidStatus
	}

	p.mu.Lock()
	if p.inFlight[orderID] {
		p.mu.Unlock()
		return ErrStatusInFlight
	}
	p.inFlight[orderID] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inFlight, orderID)
		p.mu.Unlock()
	}()

	if err := p.client.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	return p.Reload(ctx)
}

// Updating reports whether a transition for orderID is still in flight.
func (p *OrdersPage) Updating(orderID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight[orderID]
}
