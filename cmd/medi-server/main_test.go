package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Ftk-keit/medi-application/internal/config"
)

func TestSigningKey_FromConfig(t *testing.T) {
	cfg := &config.Config{AuthSigningKey: "configured-secret"}
	key, err := signingKey(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(key) != "configured-secret" {
		t.Errorf("expected configured key, got %q", key)
	}
}

func TestSigningKey_Ephemeral(t *testing.T) {
	cfg := &config.Config{}
	key, err := signingKey(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("expected 32-byte key, got %d bytes", len(key))
	}

	key2, err := signingKey(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if bytes.Equal(key, key2) {
		t.Error("two ephemeral keys should not be identical")
	}
}
