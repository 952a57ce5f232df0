package config

import (
	"reflect"
	"testing"
)

func TestRateLimitCeiling(t *testing.T) {
	prod := &Config{Env: "production"}
	if got := prod.RateLimitCeiling(); got != 50 {
		t.Fatalf("production ceiling = %d, want 50", got)
	}

	dev := &Config{Env: "development"}
	if got := dev.RateLimitCeiling(); got != 100 {
		t.Fatalf("development ceiling = %d, want 100", got)
	}

	override := &Config{Env: "production", RateLimitMax: 7}
	if got := override.RateLimitCeiling(); got != 7 {
		t.Fatalf("override ceiling = %d, want 7", got)
	}
}

func TestCORSOrigins(t *testing.T) {
	prod := &Config{Env: "production", AllowedOrigins: []string{"https://app.example.com"}}
	if got := prod.CORSOrigins(); !reflect.DeepEqual(got, []string{"https://app.example.com"}) {
		t.Fatalf("production origins = %v", got)
	}

	// Production without a configured allowlist must not open up to the
	// wildcard; it closes down to the fixed fallback origin.
	bare := &Config{Env: "production"}
	if got := bare.CORSOrigins(); !reflect.DeepEqual(got, []string{fallbackOrigin}) {
		t.Fatalf("bare production origins = %v, want [%s]", got, fallbackOrigin)
	}
	dev := &Config{Env: "development", AllowedOrigins: []string{"https://app.example.com"}}
	if got := dev.CORSOrigins(); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("development origins = %v", got)
	}
}

func TestIsProduction(t *testing.T) {
	if (&Config{Env: "production"}).IsProduction() != true {
		t.Fatalf("production not detected")
	}
	if (&Config{Env: "staging"}).IsProduction() != false {
		t.Fatalf("staging must not count as production")
	}
}
