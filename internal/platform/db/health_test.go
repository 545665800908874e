package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolHealth_ErrorOmittedWhenHealthy(t *testing.T) {
	health := PoolHealth{
		Status:       "ok",
		PingMS:       3,
		OpenConns:    4,
		IdleConns:    2,
		BusyConns:    2,
		MaxConns:     10,
		AcquireCount: 120,
		AcquireWait:  "250ms",
	}
	out, err := json.Marshal(health)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "\"error\"") {
		t.Errorf("healthy payload carries an error field: %s", out)
	}
	if !strings.Contains(string(out), "\"status\":\"ok\"") {
		t.Errorf("payload missing status: %s", out)
	}
}

func TestPoolHealth_ErrorPresentWhenUnavailable(t *testing.T) {
	health := PoolHealth{Status: "unavailable", Error: "dial refused"}
	out, err := json.Marshal(health)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), "\"error\":\"dial refused\"") {
		t.Errorf("unavailable payload missing error detail: %s", out)
	}
}
