package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFile(path)
	if s.Active() {
		t.Fatalf("expected logged out on fresh store")
	}
	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.Token() != "tok-123" {
		t.Fatalf("token = %q", s.Token())
	}

	// a new store over the same file picks the token back up
	s2 := NewFile(path)
	if s2.Token() != "tok-123" {
		t.Fatalf("reloaded token = %q", s2.Token())
	}
}

func TestFileStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFile(path)
	if err := s.Set("tok"); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Active() {
		t.Fatalf("expected cleared")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("token file should be gone, stat err = %v", err)
	}
}

func TestExpire_NotifiesAllHandlers(t *testing.T) {
	s := NewMemory()
	if err := s.Set("tok"); err != nil {
		t.Fatal(err)
	}
	var calls int
	s.OnExpired(func() { calls++ })
	s.OnExpired(func() { calls++ })
	s.Expire()
	if s.Active() {
		t.Fatalf("token must be cleared on expiry")
	}
	if calls != 2 {
		t.Fatalf("expected both handlers, got %d", calls)
	}
}
