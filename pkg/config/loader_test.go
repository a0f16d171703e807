package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/config"
)

type testConfig struct {
	Host    string        `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port    int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_CFG_HOST", "example.com")
	t.Setenv("TEST_CFG_PORT", "9090")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	var cfg *testConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
