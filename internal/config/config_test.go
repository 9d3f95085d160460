package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.True(t, cfg.RequireFullPayment, "strict payment policy is the default")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REQUIRE_FULL_PAYMENT", "false")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.False(t, cfg.RequireFullPayment)
}

func TestGetBoolEnv_BadValueFallsBack(t *testing.T) {
	t.Setenv("REQUIRE_FULL_PAYMENT", "definitely")

	cfg := Load()
	assert.True(t, cfg.RequireFullPayment)
}
