package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopreviews/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"CONFIG_TEST_NAME" envDefault:"reviews"`
	Size    int    `env:"CONFIG_TEST_SIZE" envDefault:"10"`
	Enabled bool   `env:"CONFIG_TEST_ENABLED" envDefault:"true"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED"`
}

type requiredConfig struct {
	Value string `env:"CONFIG_TEST_REQUIRED,required"`
}

type fileConfig struct {
	FromFile string `env:"CONFIG_TEST_FROM_FILE"`
	Priority string `env:"CONFIG_TEST_PRIORITY"`
}

func TestLoad_Defaults(t *testing.T) {
	config.Reset()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "reviews", cfg.Name)
	assert.Equal(t, 10, cfg.Size)
	assert.True(t, cfg.Enabled)
}

func TestLoad_CachedPerType(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CONFIG_TEST_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.Reset()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_RequiredIsRetried(t *testing.T) {
	config.Reset()

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CONFIG_TEST_REQUIRED", "set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "set", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.Panics(t, func() { config.MustLoad(cfg) })
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_PRIORITY", "process")
	require.NoError(t, os.Unsetenv("CONFIG_TEST_FROM_FILE"))
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_TEST_FROM_FILE") })

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "file_value", cfg.FromFile)
	assert.Equal(t, "process", cfg.Priority)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}
