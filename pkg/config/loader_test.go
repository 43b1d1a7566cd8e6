package config_test

import (
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storageConfig struct {
	Backend  string `env:"TEST_OTPKIT_STORAGE" envDefault:"file"`
	VaultDir string `env:"TEST_OTPKIT_VAULT_DIR" envDefault:".otpkit"`
}

type requiredConfig struct {
	Key string `env:"TEST_OTPKIT_REQUIRED_KEY,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg storageConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, ".otpkit", cfg.VaultDir)
}

func TestLoadOverride(t *testing.T) {
	type overrideConfig struct {
		Backend string `env:"TEST_OTPKIT_OVERRIDE_STORAGE" envDefault:"file"`
	}
	t.Setenv("TEST_OTPKIT_OVERRIDE_STORAGE", "redis")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis", cfg.Backend)
}

func TestLoadCachesPerType(t *testing.T) {
	type cachedConfig struct {
		Backend string `env:"TEST_OTPKIT_CACHED_STORAGE" envDefault:"file"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	// Later environment changes must not leak into the cached value.
	t.Setenv("TEST_OTPKIT_CACHED_STORAGE", "mongo")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoadNilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[storageConfig](nil), config.ErrNilPointer)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
}

func TestMustLoadPanics(t *testing.T) {
	type panicConfig struct {
		Key string `env:"TEST_OTPKIT_PANIC_KEY,required"`
	}
	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
