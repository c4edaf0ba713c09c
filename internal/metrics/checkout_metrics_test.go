package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewCheckoutMetrics(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newCheckoutMetricsWithRegisterer should not return nil")
	}

	if metrics.checkoutStarted == nil {
		t.Error("checkoutStarted counter should not be nil")
	}

	if metrics.checkoutCompleted == nil {
		t.Error("checkoutCompleted counter should not be nil")
	}

	if metrics.checkoutFailed == nil {
		t.Error("checkoutFailed counter should not be nil")
	}

	if metrics.salesRecorded == nil {
		t.Error("salesRecorded counter should not be nil")
	}

	if metrics.checkoutDuration == nil {
		t.Error("checkoutDuration histogram should not be nil")
	}

	if metrics.saleAmount == nil {
		t.Error("saleAmount histogram vec should not be nil")
	}

	if metrics.activeSessions == nil {
		t.Error("activeSessions gauge should not be nil")
	}
}

func TestNewCheckoutMetricsReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newCheckoutMetricsWithRegisterer(reg)
	// Повторная регистрация возвращает уже существующие коллекторы.
	second := newCheckoutMetricsWithRegisterer(reg)

	first.RecordCheckoutStarted()
	second.RecordCheckoutStarted()

	metric := &dto.Metric{}
	if err := first.checkoutStarted.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordCheckoutOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()

	checkoutCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_checkout_completed_total",
		Help: "Test counter",
	})
	checkoutFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_checkout_failed_total",
		Help: "Test counter",
	})

	reg.MustRegister(checkoutCompleted, checkoutFailed)

	metrics := &CheckoutMetrics{
		checkoutCompleted: checkoutCompleted,
		checkoutFailed:    checkoutFailed,
	}

	metrics.RecordCheckoutCompleted()
	metrics.RecordCheckoutCompleted()
	metrics.RecordCheckoutFailed()

	metric := &dto.Metric{}
	if err := checkoutCompleted.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected completed value 2.0, got %f", metric.Counter.GetValue())
	}

	metric = &dto.Metric{}
	if err := checkoutFailed.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected failed value 1.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordSale(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordSale("store-1", 798)
	metrics.RecordSale("store-2", 349)
	metrics.RecordSale("store-1", 1047)

	metric := &dto.Metric{}
	if err := metrics.salesRecorded.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 3.0 {
		t.Errorf("expected sales recorded 3.0, got %f", metric.Counter.GetValue())
	}

	histogram, err := metrics.saleAmount.GetMetricWithLabelValues("store-1")
	if err != nil {
		t.Fatalf("failed to get labeled histogram: %v", err)
	}
	histMetric := &dto.Metric{}
	if err := histogram.(prometheus.Histogram).Write(histMetric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if histMetric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples for store-1, got %d", histMetric.Histogram.GetSampleCount())
	}
	if histMetric.Histogram.GetSampleSum() != 798+1047 {
		t.Errorf("unexpected sample sum: %f", histMetric.Histogram.GetSampleSum())
	}
}

func TestRecordCheckoutDuration(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordCheckoutDuration(150 * time.Millisecond)

	metric := &dto.Metric{}
	if err := metrics.checkoutDuration.Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("expected 1 sample, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestSessionGauge(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordSessionOpened()
	metrics.RecordSessionOpened()
	metrics.RecordSessionClosed()

	metric := &dto.Metric{}
	if err := metrics.activeSessions.Write(metric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if metric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected active sessions 1.0, got %f", metric.Gauge.GetValue())
	}
}
