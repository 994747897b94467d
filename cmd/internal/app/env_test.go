package app

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("TODO_TEST_STR", "  value  ")
	if got := EnvString("TODO_TEST_STR", "def"); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := EnvString("TODO_TEST_STR_UNSET", "def"); got != "def" {
		t.Fatalf("got %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TODO_TEST_BOOL", "true")
	if !EnvBool("TODO_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("TODO_TEST_BOOL", "not-a-bool")
	if EnvBool("TODO_TEST_BOOL", false) {
		t.Fatal("garbage must fall back to default")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("TODO_TEST_INT", "42")
	if got := EnvInt("TODO_TEST_INT", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("TODO_TEST_INT", "-3")
	if got := EnvInt("TODO_TEST_INT", 7); got != 7 {
		t.Fatalf("non-positive must fall back to default, got %d", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TODO_TEST_DUR", "30s")
	if got := EnvDuration("TODO_TEST_DUR", time.Minute); got != 30*time.Second {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TODO_TEST_DUR", "0s")
	if got := EnvDuration("TODO_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("non-positive must fall back to default, got %v", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.HTTPAddr == "" {
		t.Fatal("HTTPAddr default missing")
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Fatalf("AccessTTL default=%v", cfg.AccessTTL)
	}
	if cfg.MaxBodyBytes <= 0 {
		t.Fatalf("MaxBodyBytes default=%d", cfg.MaxBodyBytes)
	}
}
