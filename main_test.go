package main

import "testing"

func TestBaseHealthIncludesUptime(t *testing.T) {
	body := baseHealth()

	uptime, ok := body["uptime"].(float64)
	if !ok {
		t.Fatalf("Expected uptime seconds in health payload, got %v", body["uptime"])
	}
	if uptime < 0 {
		t.Errorf("Expected non-negative uptime, got %f", uptime)
	}
	if body["service"] != "uniplan-backend" {
		t.Errorf("Expected service name, got %v", body["service"])
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}
