package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/lending?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 1, cfg.Business.MinTermYears)
	assert.Equal(t, 7, cfg.Business.MaxTermYears)
	assert.Equal(t, 5, cfg.Business.MaxCodeAttempts)
	assert.True(t, cfg.GetMinPrincipal().Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.GetMaxPrincipal().Equal(decimal.NewFromInt(50000)))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/lending?sslmode=disable")
	t.Setenv("REFERRAL_MAX_CODE_ATTEMPTS", "3")
	t.Setenv("LOAN_MAX_PRINCIPAL", "75000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Business.MaxCodeAttempts)
	assert.True(t, cfg.GetMaxPrincipal().Equal(decimal.NewFromInt(75000)))
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{URL: "postgres://localhost/lending"},
		Business: BusinessConfig{
			MinPrincipal:    "1000",
			MaxPrincipal:    "50000",
			MinTermYears:    1,
			MaxTermYears:    7,
			MaxCodeAttempts: 5,
		},
	}

	assert.NoError(t, valid.Validate())

	noAttempts := valid
	noAttempts.Business.MaxCodeAttempts = 0
	assert.Error(t, noAttempts.Validate())

	badPrincipal := valid
	badPrincipal.Business.MinPrincipal = "lots"
	assert.Error(t, badPrincipal.Validate())

	invertedBounds := valid
	invertedBounds.Business.MinPrincipal = "50000"
	invertedBounds.Business.MaxPrincipal = "1000"
	assert.Error(t, invertedBounds.Validate())
}
