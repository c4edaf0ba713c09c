package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerHealthy(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.RegisterChecker("catalog", NewSimpleChecker("catalog", func() error { return nil }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("код = %d, ожидался 200", w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("статус = %s, ожидался healthy", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("версия = %s, ожидалась v1.2.3", resp.Version)
	}
	if _, ok := resp.Checks["catalog"]; !ok {
		t.Error("в ответе нет проверки catalog")
	}
}

func TestHandlerUnhealthy(t *testing.T) {
	handler := NewHandler("v1.2.3")
	handler.RegisterChecker("sessions", NewSimpleChecker("sessions", func() error {
		return errors.New("redis недоступен")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("код = %d, ожидался 503", w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("статус = %s, ожидался unhealthy", resp.Status)
	}
	if resp.Checks["sessions"].Message != "redis недоступен" {
		t.Errorf("сообщение = %q", resp.Checks["sessions"].Message)
	}
}

func TestHandlerDegraded(t *testing.T) {
	handler := NewHandler("")
	handler.RegisterChecker("slow", degradedChecker{})
	handler.RegisterChecker("ok", NewSimpleChecker("ok", func() error { return nil }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Degraded не роняет readiness, код остаётся 200.
	if w.Code != http.StatusOK {
		t.Fatalf("код = %d, ожидался 200", w.Code)
	}

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("статус = %s, ожидался degraded", resp.Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("код = %d, ожидался 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("тело = %q, ожидалось ok", w.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := NewHandler("")
	handler.RegisterChecker("ok", NewSimpleChecker("ok", func() error { return nil }))

	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("код = %d, ожидался 200", w.Code)
	}

	handler.RegisterChecker("broken", NewSimpleChecker("broken", func() error {
		return errors.New("down")
	}))

	w = httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("код = %d, ожидался 503", w.Code)
	}
}

type degradedChecker struct{}

func (degradedChecker) Check() Check {
	return Check{Name: "slow", Status: StatusDegraded}
}
