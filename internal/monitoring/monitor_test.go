package monitoring

import (
	"testing"
	"time"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordAdvisory(t *testing.T) {
	m := NewMonitor()

	m.RecordAdvisory("plan", "model_succeeded", 120*time.Millisecond)
	m.RecordAdvisory("plan", "model_succeeded", 80*time.Millisecond)
	m.RecordAdvisory("advice", "no_model_configured", time.Millisecond)

	metrics := m.GetMetrics()

	value, exists := metrics["plan_model_succeeded_total"]
	if !exists {
		t.Fatalf("Expected 'plan_model_succeeded_total' to be present in metrics, but it was not")
	}
	if value != 2 {
		t.Errorf("Expected 'plan_model_succeeded_total' to be 2, but got %v", value)
	}

	value, exists = metrics["last_advice_tier"]
	if !exists {
		t.Fatalf("Expected 'last_advice_tier' to be present in metrics, but it was not")
	}
	if value != "no_model_configured" {
		t.Errorf("Expected 'last_advice_tier' to be 'no_model_configured', but got %v", value)
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
