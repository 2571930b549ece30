package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LEDGERLINE_ADDR", "")

	cfg := Default()
	cfg.Database.DSN = "host=db user=x dbname=y"
	cfg.Server.Addr = ":9000"
	cfg.Import.Timezone = "Asia/Seoul"

	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Database.DSN, got.Database.DSN)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
	assert.Equal(t, cfg.Import.Timezone, got.Import.Timezone)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.Database.DSN, "dbname=ledgerline")
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Import.Timezone)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	require.NoError(t, Save(path, Default()))

	t.Setenv("DATABASE_URL", "host=envdb user=env dbname=env")
	t.Setenv("LEDGERLINE_ADDR", ":7777")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "host=envdb user=env dbname=env", got.Database.DSN)
	assert.Equal(t, ":7777", got.Server.Addr)
}

func TestLocation(t *testing.T) {
	loc, err := ImportConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Local", loc.String())

	loc, err = ImportConfig{Timezone: "Asia/Seoul"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())

	_, err = ImportConfig{Timezone: "Not/AZone"}.Location()
	require.Error(t, err)
}
