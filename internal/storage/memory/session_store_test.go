package memory_test

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	store := memory.NewSessionStore()

	if _, ok, err := store.Get("session:abc"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"schema_version":1}`)
	if err := store.Put("session:abc", payload); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	data, ok, err := store.Get("session:abc")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected payload: %s", data)
	}

	// Возвращённый срез — копия, правка не трогает хранилище.
	data[0] = 'x'
	again, _, _ := store.Get("session:abc")
	if string(again) != string(payload) {
		t.Fatalf("stored payload mutated: %s", again)
	}

	if err := store.Delete("session:abc"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get("session:abc"); ok {
		t.Fatal("expected value removed")
	}
}
