package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependenciesMemory(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), log.WithField("test", "deps"))

	if deps.Stores == nil || deps.Products == nil || deps.Sales == nil {
		t.Fatal("репозитории каталога не должны быть nil")
	}
	if deps.Activity == nil || deps.Outbox == nil || deps.Idempotency == nil {
		t.Fatal("служебные репозитории не должны быть nil")
	}
	if deps.Sessions == nil {
		t.Fatal("хранилище сессий не должно быть nil")
	}

	// In-memory хранилище сессий работает без внешних сервисов.
	if err := deps.Sessions.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	raw, ok, err := deps.Sessions.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(raw) != "v" {
		t.Errorf("значение = %q, ожидалось v", raw)
	}
}

func TestNewDependenciesNilLogger(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), nil)
	if deps.Logger == nil {
		t.Fatal("логгер должен подставляться по умолчанию")
	}
}
