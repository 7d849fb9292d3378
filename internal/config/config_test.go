package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("given no config file should return defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load(context.Background(), "missing")
		require.NoError(t, err)

		assert.Equal(t, "0.12", cfg.Cart.TaxRate)
		assert.Equal(t, "es", cfg.Cart.Locale)
		assert.Equal(t, "file", cfg.Storage.Driver)
		assert.Equal(t, 15*time.Second, cfg.Api.Timeout)
		assert.False(t, cfg.Otel.Enabled)
	})

	t.Run("given config file and env override should merge both", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "env"), 0o755))
		content := []byte(`
api:
  base_url: http://192.168.0.107:8000
  timeout: 3s
cart:
  tax_rate: "0.02"
storage:
  driver: redis
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "env", "client.yaml"), content, 0o644))
		t.Setenv("RESTAURANT_CART_LOCALE", "en")

		cfg, err := Load(context.Background(), "client")
		require.NoError(t, err)

		assert.Equal(t, "http://192.168.0.107:8000", cfg.Api.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.Api.Timeout)
		assert.Equal(t, "0.02", cfg.Cart.TaxRate)
		assert.Equal(t, "en", cfg.Cart.Locale)
		assert.Equal(t, "redis", cfg.Storage.Driver)
	})
}
