package view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"shopadmin/internal/api"
	"shopadmin/internal/domain"
	"shopadmin/internal/session"
)

// fakeBackend counts calls and serves a mutable order list.
type fakeBackend struct {
	mu           sync.Mutex
	orders       []domain.Order
	listCalls    int
	statusCalls  []string // "id:status"
	failStatus   bool
	statusGate   chan struct{} // when set, status handler blocks until closed
	lastStatusID string
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/admin/orders":
			f.listCalls++
			orders := f.orders
			f.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]any{"data": orders})
		case r.Method == http.MethodPut && len(r.URL.Path) > len("/api/orders/"):
			var body struct {
				Status domain.OrderStatus `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			id := r.URL.Path[len("/api/orders/") : len(r.URL.Path)-len("/status")]
			f.statusCalls = append(f.statusCalls, id+":"+string(body.Status))
			fail := f.failStatus
			gate := f.statusGate
			if !fail {
				for i := range f.orders {
					if idOf(f.orders[i]) == id {
						f.orders[i].Status = body.Status
					}
				}
			}
			f.mu.Unlock()
			if gate != nil {
				<-gate
			}
			if fail {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message":"illegal transition"}`))
				return
			}
			w.Write([]byte(`{}`))
		default:
			f.mu.Unlock()
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func idOf(o domain.Order) string {
	b, _ := json.Marshal(o.ID)
	return string(b)
}

func newOrdersPage(t *testing.T, f *fakeBackend) *OrdersPage {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	sess := session.NewMemory()
	if err := sess.Set("T"); err != nil {
		t.Fatal(err)
	}
	return NewOrdersPage(api.New(srv.URL, sess))
}

func TestSetStatus_PendingToShipped(t *testing.T) {
	f := &fakeBackend{orders: []domain.Order{
		{ID: 1, Status: domain.OrderStatusPending},
		{ID: 2, Status: domain.OrderStatusProcessing},
	}}
	p := newOrdersPage(t, f)
	ctx := context.Background()

	if _, err := p.Orders(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	if err := p.SetStatus(ctx, 1, domain.OrderStatusShipped); err != nil {
		t.Fatalf("set status: %v", err)
	}

	// exactly one status call with {"status":"shipped"}, then one reload
	if len(f.statusCalls) != 1 || f.statusCalls[0] != "1:shipped" {
		t.Fatalf("status calls = %v", f.statusCalls)
	}
	if f.listCalls != 2 {
		t.Fatalf("expected initial load + one reload, got %d list calls", f.listCalls)
	}

	orders, err := p.Orders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if orders[0].Status != domain.OrderStatusShipped {
		t.Fatalf("order 1 status = %s", orders[0].Status)
	}
	if orders[1].Status != domain.OrderStatusProcessing {
		t.Fatalf("other order's status changed to %s", orders[1].Status)
	}
}

func TestSetStatus_FailureKeepsDisplayedStatus(t *testing.T) {
	f := &fakeBackend{
		orders:     []domain.Order{{ID: 1, Status: domain.OrderStatusPending}},
		failStatus: true,
	}
	p := newOrdersPage(t, f)
	ctx := context.Background()
	if _, err := p.Orders(ctx); err != nil {
		t.Fatal(err)
	}

	err := p.SetStatus(ctx, 1, domain.OrderStatusShipped)
	apiErr, ok := err.(*api.Error)
	if !ok || apiErr.Message != "illegal transition" {
		t.Fatalf("expected server message, got %v", err)
	}
	// no reload after failure, displayed status untouched
	if f.listCalls != 1 {
		t.Fatalf("failure must not reload, got %d list calls", f.listCalls)
	}
	orders, _ := p.Orders(ctx)
	if orders[0].Status != domain.OrderStatusPending {
		t.Fatalf("status mutated to %s on failure", orders[0].Status)
	}
}

func TestSetStatus_InvalidStatusRejectedLocally(t *testing.T) {
	f := &fakeBackend{orders: []domain.Order{{ID: 1, Status: domain.OrderStatusPending}}}
	p := newOrdersPage(t, f)
	if err := p.SetStatus(context.Background(), 1, "misplaced"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if len(f.statusCalls) != 0 {
		t.Fatalf("invalid status must not reach the network")
	}
}

func TestSetStatus_SameOrderGuardedConcurrentOrdersIndependent(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeBackend{
		orders: []domain.Order{
			{ID: 1, Status: domain.OrderStatusPending},
			{ID: 2, Status: domain.OrderStatusPending},
		},
		statusGate: gate,
	}
	p := newOrdersPage(t, f)
	ctx := context.Background()
	if _, err := p.Orders(ctx); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- p.SetStatus(ctx, 1, domain.OrderStatusProcessing)
	}()
	<-started
	for !p.Updating(1) {
		time.Sleep(time.Millisecond) // first transition is reaching the wire
	}

	// a second transition on the same order is refused while in flight
	if err := p.SetStatus(ctx, 1, domain.OrderStatusShipped); err != ErrStatusInFlight {
		t.Fatalf("expected ErrStatusInFlight, got %v", err)
	}
	// a different order is independent
	if p.Updating(2) {
		t.Fatalf("order 2 must not be marked in flight")
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if p.Updating(1) {
		t.Fatalf("in-flight flag must clear after completion")
	}
}
