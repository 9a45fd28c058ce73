package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naseer2426/rekog/internal/config"
	"github.com/naseer2426/rekog/internal/settings"
)

func TestInitSettingsMemory(t *testing.T) {
	store, err := initSettings(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &settings.MemoryStore{}, store)
	assert.False(t, settings.DebugEnabled(store))
}

func TestInitSettingsDatabase(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "rekog.db")
	store, err := initSettings(&config.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	assert.IsType(t, &settings.GormStore{}, store)

	value, ok, err := store.Get(settings.DebugMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "off", value)
}

func TestInitSettingsReportsDatabaseErrors(t *testing.T) {
	for name, dsn := range map[string]string{
		"unknown scheme":   "mysql://user@tcp(localhost)/rekog",
		"unreachable file": "sqlite://" + filepath.Join(t.TempDir(), "missing", "rekog.db"),
	} {
		assert.NotPanics(t, func() {
			_, err := initSettings(&config.Config{DatabaseURL: dsn})
			assert.Error(t, err, name)
		}, name)
	}
}
