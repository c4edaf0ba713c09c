package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestSessionStorePutGetDelete(t *testing.T) {
	srv := miniredis.RunT(t)
	store := NewSessionStore(srv.Addr(), "", time.Minute)

	if _, ok, err := store.Get("session:abc"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"schema_version":1,"identity":{"id":"user-3"}}`)
	if err := store.Put("session:abc", payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, ok, err := store.Get("session:abc")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected payload: %s", data)
	}

	if err := store.Delete("session:abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get("session:abc"); ok {
		t.Fatalf("expected value removed")
	}
	// Повторное удаление — no-op.
	if err := store.Delete("session:abc"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionStoreTTLExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	store := NewSessionStore(srv.Addr(), "", time.Minute)

	if err := store.Put("session:abc", []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	if _, ok, _ := store.Get("session:abc"); ok {
		t.Fatalf("expected value expired after TTL")
	}
}
