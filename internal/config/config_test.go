package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SandboxKeyForcesSandboxMode(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-abcdef")
	t.Setenv("MIDTRANS_PRODUCTION", "true")

	cfg := Load()
	assert.False(t, cfg.MidtransProduction, "sandbox-prefixed key must force sandbox mode")
}

func TestLoad_ProductionKeyForcesProductionMode(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "Mid-server-abcdef")
	t.Setenv("MIDTRANS_PRODUCTION", "false")

	cfg := Load()
	assert.True(t, cfg.MidtransProduction, "production key must force production mode")
}

func TestLoad_ModeKeptWhenConsistent(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-abcdef")
	t.Setenv("MIDTRANS_PRODUCTION", "false")

	cfg := Load()
	assert.False(t, cfg.MidtransProduction)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigins)
}

func TestMaskKey_NeverLeaksFullSecret(t *testing.T) {
	assert.Equal(t, "SB-Mid********", MaskKey("SB-Mid-server1"))
	assert.Equal(t, "******", MaskKey("short"))
	assert.NotContains(t, MaskKey("SB-Mid-server-secret"), "secret")
}
