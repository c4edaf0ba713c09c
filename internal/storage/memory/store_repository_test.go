package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newStore(id string) domain.Store {
	return domain.Store{
		ID:      id,
		Name:    "Store " + id,
		Address: "12 MG Road",
		City:    "Mumbai",
	}
}

func TestStoreRepository_CreateGetList(t *testing.T) {
	repo := memory.NewStoreRepository()

	for _, id := range []string{"store-1", "store-2"} {
		if err := repo.Create(newStore(id)); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}

	if err := repo.Create(newStore("store-1")); !errors.Is(err, domain.ErrStoreAlreadyExists) {
		t.Fatalf("expected ErrStoreAlreadyExists, got %v", err)
	}

	stores, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stores) != 2 || stores[0].ID != "store-1" || stores[1].ID != "store-2" {
		t.Fatalf("expected insertion order, got %+v", stores)
	}
}

func TestStoreRepository_Update(t *testing.T) {
	repo := memory.NewStoreRepository()
	if err := repo.Create(newStore("store-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated := newStore("store-1")
	updated.Managers = []string{"user-2"}
	if err := repo.Update(updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get("store-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Managers) != 1 || stored.Managers[0] != "user-2" {
		t.Fatalf("update was not applied: %+v", stored)
	}

	if err := repo.Update(newStore("missing")); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestStoreRepository_CloneOnRead(t *testing.T) {
	repo := memory.NewStoreRepository()
	store := newStore("store-1")
	store.Managers = []string{"user-2"}
	if err := repo.Create(store); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, _ := repo.Get("store-1")
	first.Managers[0] = "user-9"

	second, _ := repo.Get("store-1")
	if second.Managers[0] != "user-2" {
		t.Fatalf("stored store mutated through returned copy: %+v", second)
	}
}
