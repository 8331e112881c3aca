package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	cfg := Default()

	assert.Equal(t, DriverBadger, cfg.Store.Driver)
	assert.Equal(t, "/tmp/test-xdg/neonmap/data", cfg.Store.Path)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout.Duration)
	assert.Equal(t, 2.0, cfg.Export.PixelRatio)
	assert.Equal(t, 95, cfg.Export.JPEGQuality)
	assert.True(t, cfg.Editor.Confirmations)
	assert.False(t, cfg.Editor.RejectCycles)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	assert.Equal(t, "/tmp/test-xdg/neonmap", Dir())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "neonmap"), Dir())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Store.Driver = DriverHTTP
	cfg.Store.Timeout = Duration{3 * time.Second}
	cfg.Editor.RejectCycles = true
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	require.NoError(t, Save(cfg, ""))

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverHTTP, loaded.Store.Driver)
	assert.Equal(t, 3*time.Second, loaded.Store.Timeout.Duration)
	assert.True(t, loaded.Editor.RejectCycles)
	assert.Equal(t, []string{"http://localhost:3000"}, loaded.Server.AllowedOrigins)
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "custom.toml")
	content := `
[export]
directory = "~/maps"
jpeg_quality = 80

[editor]
theme = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "maps"), cfg.Export.Directory)
	assert.Equal(t, 80, cfg.Export.JPEGQuality)
	assert.Equal(t, 2.0, cfg.Export.PixelRatio)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, DriverBadger, cfg.Store.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax":   "[store\ndriver=",
		"driver":   "[store]\ndriver = \"sqlite\"\n",
		"duration": "[store]\ntimeout = \"soon\"\n",
		"quality":  "[export]\njpeg_quality = 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestExportPath(t *testing.T) {
	c := ExportConfig{}
	p, err := c.ExportPath("mindmap-1.png")
	require.NoError(t, err)
	assert.Equal(t, "mindmap-1.png", p)

	c.Directory = filepath.Join(t.TempDir(), "out")
	p, err = c.ExportPath("mindmap-1.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Directory, "mindmap-1.png"), p)
	assert.DirExists(t, c.Directory)
}
