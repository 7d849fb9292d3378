package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/restaurant/internal/constants"
)

func TestNewUsesConfiguredStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RESTAURANT_STORAGE_DRIVER", constants.STORAGE_DRIVER_FILE)
	t.Setenv("RESTAURANT_STORAGE_PATH", filepath.Join(dir, "store.json"))

	c, app, err := New(t.Context(), Options{ConfigName: "missing"}, constants.APP_MAIN_RESTAURANT)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close(c)) })

	require.NoError(t, app.Store.Set(c, constants.STORAGE_KEY_CART, "[]"))
	assert.FileExists(t, filepath.Join(dir, "store.json"))
	assert.NotNil(t, app.API)
	_, signedIn := app.Session.User()
	assert.False(t, signedIn)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RESTAURANT_STORAGE_DRIVER", "floppy")

	_, _, err := New(t.Context(), Options{ConfigName: "missing"}, constants.APP_MAIN_RESTAURANT)
	assert.Error(t, err)
}
