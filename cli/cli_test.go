package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gear6io/sift/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sift-server.yml")

	require.NoError(t, runCommand(t, "init", path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := runCommand(t, "init", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, runCommand(t, "init", path, "--force"))
	})
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := loadServerConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
	})

	t.Run("explicit path is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		cfg := config.LoadDefaultConfig()
		cfg.Session.TTLMinutes = 15
		require.NoError(t, config.SaveConfig(cfg, path))

		loaded, err := loadServerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 15, loaded.Session.TTLMinutes)
	})

	t.Run("missing default falls back", func(t *testing.T) {
		restoreWorkingDir(t)
		require.NoError(t, os.Chdir(t.TempDir()))

		cfg, err := loadServerConfig("")
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.Session.TTLMinutes)
	})
}

func restoreWorkingDir(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(cwd) })
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("city,sales\nparis,5\nlondon,3.5\noslo,NA\n"), 0644))

	t.Run("plain", func(t *testing.T) {
		require.NoError(t, runCommand(t, "inspect", csvPath))
	})

	t.Run("export parquet", func(t *testing.T) {
		outPath := filepath.Join(dir, "data.parquet")
		require.NoError(t, runCommand(t, "inspect", csvPath, "--export", outPath))

		raw, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.True(t, len(raw) > 4 && string(raw[:4]) == "PAR1")
	})

	t.Run("missing file", func(t *testing.T) {
		err := runCommand(t, "inspect", filepath.Join(dir, "nope.csv"))
		require.Error(t, err)
	})
}

func TestStatFormatting(t *testing.T) {
	assert.Equal(t, "5.33333", formatStat(5.333333333))
	assert.Equal(t, "3", formatStat(3))
	assert.Equal(t, []string{"sales", "3", "5.5"}, statRow("sales", 3, 5.5))
}
