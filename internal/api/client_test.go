package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"shopadmin/internal/domain"
	"shopadmin/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.NewMemory()
	return New(srv.URL, sess), sess
}

func TestLogin_StoresToken(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry auth header")
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
	})
	tok, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok != "tok-abc" || sess.Token() != "tok-abc" {
		t.Fatalf("token not stored, got %q / %q", tok, sess.Token())
	}
}

func TestLogin_NoTokenInResponse(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	if _, err := c.Login(context.Background(), domain.Credentials{}); err != ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if sess.Active() {
		t.Fatalf("session must stay empty")
	}
}

func TestBearerHeader_AttachedAfterLogin(t *testing.T) {
	var seen []string
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[]}`))
	})
	if err := sess.Set("T"); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := c.Orders(ctx); err != nil {
		t.Fatalf("orders: %v", err)
	}
	if _, err := c.Products(ctx); err != nil {
		t.Fatalf("products: %v", err)
	}
	sess.Clear()
	if _, err := c.Categories(ctx); err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []string{"Bearer T", "Bearer T", ""}
	for i, h := range seen {
		if h != want[i] {
			t.Fatalf("call %d auth = %q, want %q", i, h, want[i])
		}
	}
}

func TestUnauthorized_ExpiresSessionGlobally(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})
	if err := sess.Set("stale"); err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	expired := 0
	sess.OnExpired(func() {
		mu.Lock()
		expired++
		mu.Unlock()
	})

	// three concurrent in-flight calls all hitting 401
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Orders(context.Background())
			if !IsAuthFailure(err) {
				t.Errorf("expected auth failure, got %v", err)
			}
		}()
	}
	wg.Wait()

	if sess.Active() {
		t.Fatalf("token must be cleared after 401")
	}
	mu.Lock()
	defer mu.Unlock()
	if expired == 0 {
		t.Fatalf("expiry handler never ran")
	}
}

func TestUnauthorized_OnLoginDoesNotExpire(t *testing.T) {
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	})
	fired := false
	sess.OnExpired(func() { fired = true })
	_, err := c.Login(context.Background(), domain.Credentials{})
	if !IsAuthFailure(err) {
		t.Fatalf("expected auth failure, got %v", err)
	}
	if fired {
		t.Fatalf("unauthenticated 401 must not fire the expiry hook")
	}
}

func TestErrorMessage_FromBodyAndFallback(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"db is down"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})
	_, err := c.Products(context.Background())
	apiErr, ok := err.(*Error)
	if !ok || apiErr.Message != "db is down" {
		t.Fatalf("expected body message, got %v", err)
	}
	_, err = c.Categories(context.Background())
	apiErr, ok = err.(*Error)
	if !ok || apiErr.Message != "failed to load categories" {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestUpdateOrderStatus_Body(t *testing.T) {
	var got map[string]string
	c, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/7/status" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})
	if err := sess.Set("T"); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateOrderStatus(context.Background(), 7, domain.OrderStatusShipped); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got["status"] != "shipped" {
		t.Fatalf("body = %v", got)
	}
}
