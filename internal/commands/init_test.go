package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func TestRunInit(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LEDGERLINE_ADDR", "")

	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	path := filepath.Join(dir, "ledgerline.yaml")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.Database.DSN, "dbname=ledgerline")
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	err := runInit(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunInit_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")
	require.NoError(t, runInit(dir))

	_, err := os.Stat(filepath.Join(dir, "ledgerline.yaml"))
	require.NoError(t, err)
}
